package service

import (
	"context"
	"errors"
	"strings"

	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/affidavits/transport"
	"serveportal_backend/internal/events"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const msgAffidavitNotReady = "affidavit has not been generated yet"

// List returns a job's affidavits, newest first. Portal clients only see
// affidavits of their own jobs.
func (s *Service) List(ctx context.Context, tenantID, jobID uuid.UUID, clientScope *uuid.UUID) ([]transport.AffidavitResponse, error) {
	if _, err := s.scopedJob(ctx, tenantID, jobID, clientScope); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAffidavits(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.AffidavitResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAffidavitResponse(a))
	}
	return out, nil
}

// Get returns one affidavit.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (transport.AffidavitResponse, error) {
	a, err := s.repo.GetAffidavit(ctx, tenantID, id)
	if err != nil {
		return transport.AffidavitResponse{}, err
	}
	return toAffidavitResponse(a), nil
}

// DownloadURL returns a presigned URL for a generated affidavit.
func (s *Service) DownloadURL(ctx context.Context, tenantID, id uuid.UUID, clientScope *uuid.UUID) (transport.DownloadURLResponse, error) {
	a, err := s.generated(ctx, tenantID, id)
	if err != nil {
		return transport.DownloadURLResponse{}, err
	}
	if _, err := s.scopedJob(ctx, tenantID, a.JobID, clientScope); err != nil {
		return transport.DownloadURLResponse{}, apperr.NotFound("affidavit not found")
	}
	presigned, err := s.storage.GenerateDownloadURL(ctx, s.opts.AffidavitBucket, a.ObjectKey)
	if err != nil {
		return transport.DownloadURLResponse{}, apperr.Unavailable(msgStorageUnavailable, err)
	}
	return transport.DownloadURLResponse{URL: presigned.URL, ExpiresAt: presigned.ExpiresAt}, nil
}

// Send emails a generated affidavit. Without an explicit address it goes to
// the contact of the job's client.
func (s *Service) Send(ctx context.Context, tenantID, id uuid.UUID, req transport.SendAffidavitRequest) (transport.AffidavitResponse, error) {
	if s.mailer == nil {
		return transport.AffidavitResponse{}, apperr.Unavailable("email delivery is not configured", nil)
	}
	a, err := s.generated(ctx, tenantID, id)
	if err != nil {
		return transport.AffidavitResponse{}, err
	}

	to, toName := strings.ToLower(strings.TrimSpace(req.To)), ""
	if to == "" {
		to, toName, err = s.clientContact(ctx, tenantID, a)
		if err != nil {
			return transport.AffidavitResponse{}, err
		}
	}

	body, err := s.readObject(ctx, s.opts.AffidavitBucket, a.ObjectKey, maxAttachmentBytes)
	if errors.Is(err, errObjectTooLarge) {
		return transport.AffidavitResponse{}, apperr.Validation("affidavit is too large to send by email; share the download link instead")
	}
	if err != nil {
		return transport.AffidavitResponse{}, apperr.Unavailable(msgStorageUnavailable, err)
	}

	companyName := a.Data.CompanyName
	if companyName == "" {
		if company, err := s.company.Company(ctx, tenantID); err == nil {
			companyName = company.Profile.Name
		}
	}

	if err := s.mailer.SendAffidavitEmail(ctx, AffidavitMail{
		ToEmail:       to,
		ToName:        toName,
		CompanyName:   companyName,
		CaseNumber:    a.Data.CaseNumber,
		RecipientName: a.Data.RecipientName,
		Title:         a.Title,
		Message:       sanitize.Text(req.Message),
		VerifyURL:     pdf.VerificationURL(s.opts.BaseURL, a.VerificationCode),
		FileName:      fileNameFor(a),
		PDF:           body,
	}); err != nil {
		return transport.AffidavitResponse{}, apperr.Unavailable("email delivery failed", err)
	}

	sentAt := s.now().UTC()
	if err := s.repo.MarkSent(ctx, tenantID, a.ID, to, sentAt); err != nil {
		return transport.AffidavitResponse{}, err
	}
	a.SentTo, a.SentAt = to, &sentAt

	s.log.Info("affidavit sent", "affidavitId", a.ID, "jobId", a.JobID)
	s.eventBus.Publish(ctx, events.AffidavitSent{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenantID,
		AffidavitID: a.ID,
		Recipient:   to,
		SentAt:      sentAt,
	})
	return toAffidavitResponse(a), nil
}

// Verify confirms a printed verification code. It is public and reveals only
// what is printed on the affidavit itself.
func (s *Service) Verify(ctx context.Context, code string) (transport.VerificationResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return transport.VerificationResponse{}, apperr.NotFound("affidavit not found")
	}
	a, err := s.repo.GetByVerificationCode(ctx, code)
	if err != nil {
		return transport.VerificationResponse{}, err
	}
	return transport.VerificationResponse{
		VerificationCode: a.VerificationCode,
		Title:            a.Title,
		CaseNumber:       a.Data.CaseNumber,
		CourtName:        a.Data.CourtName,
		RecipientName:    a.Data.RecipientName,
		ServerName:       a.Data.ServerName,
		ServiceStatus:    a.ServiceStatus,
		IssuedAt:         a.UpdatedAt,
	}, nil
}

// scopedJob loads a job, hiding it from portal clients that do not own it.
func (s *Service) scopedJob(ctx context.Context, tenantID, jobID uuid.UUID, clientScope *uuid.UUID) (jobdomain.Job, error) {
	job, _, err := s.jobs.Load(ctx, tenantID, jobID)
	if err != nil {
		return jobdomain.Job{}, err
	}
	if clientScope != nil && (job.ClientID == nil || *job.ClientID != *clientScope) {
		return jobdomain.Job{}, apperr.NotFound("job not found")
	}
	return job, nil
}

func (s *Service) generated(ctx context.Context, tenantID, id uuid.UUID) (repository.Affidavit, error) {
	a, err := s.repo.GetAffidavit(ctx, tenantID, id)
	if err != nil {
		return repository.Affidavit{}, err
	}
	if a.Status != repository.StatusGenerated || a.ObjectKey == "" {
		return repository.Affidavit{}, apperr.Conflict(msgAffidavitNotReady)
	}
	return a, nil
}

func (s *Service) clientContact(ctx context.Context, tenantID uuid.UUID, a repository.Affidavit) (string, string, error) {
	job, _, err := s.jobs.Load(ctx, tenantID, a.JobID)
	if err != nil {
		return "", "", err
	}
	if job.ClientID == nil || s.clients == nil {
		return "", "", apperr.Validation("job has no client; a recipient address is required")
	}
	email, name, err := s.clients.Contact(ctx, tenantID, *job.ClientID)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(email) == "" {
		return "", "", apperr.Validation("client has no email address; a recipient address is required")
	}
	return email, name, nil
}

// AutoSend delivers a freshly generated affidavit to the client contact.
func (s *Service) AutoSend(ctx context.Context, tenantID, id uuid.UUID) error {
	_, err := s.Send(ctx, tenantID, id, transport.SendAffidavitRequest{})
	return err
}
