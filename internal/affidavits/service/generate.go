package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/affidavits/transport"
	"serveportal_backend/internal/events"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	// maxEmbeddedImageBytes bounds photos, logos and signatures read into a PDF.
	maxEmbeddedImageBytes = 8 << 20
	// maxAttachmentBytes stays under the 25 MB limit of common mail providers.
	maxAttachmentBytes     = 24 << 20
	maxServedDocumentBytes = 32 << 20
)

var errObjectTooLarge = errors.New("object exceeds size limit")

// Generate validates the job's affidavit and queues it for rendering. When a
// request body is given it is saved as the draft first. Without a queue the
// PDF is rendered before returning.
func (s *Service) Generate(ctx context.Context, tenantID, jobID, userID uuid.UUID, user domain.CurrentUser, req *transport.SaveDraftRequest) (transport.AffidavitResponse, error) {
	if req != nil {
		if _, err := s.SaveDraft(ctx, tenantID, jobID, *req); err != nil {
			return transport.AffidavitResponse{}, err
		}
	}

	p, err := s.prepare(ctx, tenantID, jobID, user, prepareInput{})
	if err != nil {
		return transport.AffidavitResponse{}, err
	}
	if missing := domain.MissingFields(p.data); len(missing) > 0 {
		return transport.AffidavitResponse{}, apperr.FieldErrors(msgAffidavitIncomplete, missing)
	}
	if _, ok := domain.FindTemplate(p.candidates, p.data.SelectedTemplateID); !ok {
		return transport.AffidavitResponse{}, apperr.Validation(msgTemplateUnavailable)
	}

	code, err := pdf.NewVerificationCode()
	if err != nil {
		return transport.AffidavitResponse{}, fmt.Errorf("verification code: %w", err)
	}
	row, err := s.repo.CreateAffidavit(ctx, repository.Affidavit{
		JobID:            jobID,
		TenantID:         tenantID,
		TemplateID:       p.data.SelectedTemplateID,
		Title:            p.data.Title,
		ServiceStatus:    string(p.data.ServiceStatus),
		VerificationCode: code,
		Data:             p.data,
		RequestedBy:      userID,
	})
	if err != nil {
		return transport.AffidavitResponse{}, err
	}
	s.log.Info("affidavit requested", "jobId", jobID, "affidavitId", row.ID, "templateId", row.TemplateID)

	if s.queue != nil {
		err := s.queue.EnqueueAffidavitGeneration(ctx, tenantID, row.ID)
		if err == nil {
			return toAffidavitResponse(row), nil
		}
		s.log.CollaboratorDegraded("scheduler", jobID.String(), err)
	}

	rendered, err := s.RenderAffidavit(ctx, tenantID, row.ID)
	if err != nil {
		return transport.AffidavitResponse{}, err
	}
	return toAffidavitResponse(rendered), nil
}

// RenderAffidavit renders a pending affidavit, stores the PDF, attaches it to
// the job and publishes AffidavitGenerated. Rendering an already generated
// affidavit is a no-op, so task retries are safe.
func (s *Service) RenderAffidavit(ctx context.Context, tenantID, affidavitID uuid.UUID) (repository.Affidavit, error) {
	a, err := s.repo.GetAffidavit(ctx, tenantID, affidavitID)
	if err != nil {
		return repository.Affidavit{}, err
	}
	if a.Status == repository.StatusGenerated {
		return a, nil
	}

	out, err := s.render(ctx, a)
	if err != nil {
		if markErr := s.repo.MarkFailed(ctx, tenantID, a.ID, err.Error()); markErr != nil {
			s.log.Error("failed to mark affidavit failed", "affidavitId", a.ID, "error", markErr)
		}
		return repository.Affidavit{}, err
	}

	fileName := fileNameFor(a)
	key, err := s.storage.UploadFile(ctx, s.opts.AffidavitBucket, storage.AffidavitFolder(tenantID, a.JobID), fileName, "application/pdf", bytes.NewReader(out), int64(len(out)))
	if err != nil {
		if markErr := s.repo.MarkFailed(ctx, tenantID, a.ID, err.Error()); markErr != nil {
			s.log.Error("failed to mark affidavit failed", "affidavitId", a.ID, "error", markErr)
		}
		return repository.Affidavit{}, apperr.Unavailable(msgStorageUnavailable, err)
	}

	generated, err := s.repo.MarkGenerated(ctx, tenantID, a.ID, key, int64(len(out)))
	if err != nil {
		return repository.Affidavit{}, err
	}

	if _, err := s.jobs.AttachDocument(ctx, tenantID, jobdomain.Document{
		JobID:       a.JobID,
		Title:       strings.TrimSuffix(fileName, ".pdf"),
		Category:    jobdomain.DocumentAffidavit,
		ObjectKey:   key,
		ContentType: "application/pdf",
		SizeBytes:   int64(len(out)),
	}); err != nil {
		s.log.CollaboratorDegraded("job_documents", a.JobID.String(), err)
	}

	s.log.Info("affidavit generated", "jobId", a.JobID, "affidavitId", a.ID, "objectKey", key, "sizeBytes", len(out))
	s.eventBus.Publish(ctx, events.AffidavitGenerated{
		BaseEvent:   events.NewBaseEvent(),
		TenantID:    tenantID,
		JobID:       a.JobID,
		AffidavitID: a.ID,
		ObjectKey:   key,
		Served:      a.Data.ServiceStatus == jobdomain.OutcomeServed,
		RequestedBy: a.RequestedBy,
	})
	return generated, nil
}

func (s *Service) render(ctx context.Context, a repository.Affidavit) ([]byte, error) {
	tmpl, err := s.resolveTemplate(ctx, a.TenantID, a.TemplateID)
	if err != nil {
		return nil, err
	}

	assets, err := s.collectAssets(ctx, a)
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.Render(ctx, tmpl, a.Data, assets)
	if err != nil {
		return nil, fmt.Errorf("render affidavit: %w", err)
	}

	if a.Data.MergeServedDocs {
		out = s.mergeServedDocuments(ctx, a, out)
	}
	return out, nil
}

// resolveTemplate finds a template by id, including ones deactivated after
// the affidavit was requested.
func (s *Service) resolveTemplate(ctx context.Context, tenantID uuid.UUID, id string) (domain.Template, error) {
	if strings.HasPrefix(id, domain.StarterPrefix) {
		starters, err := domain.StarterTemplates()
		if err != nil {
			return domain.Template{}, err
		}
		if t, ok := domain.FindTemplate(starters, id); ok {
			return t, nil
		}
		return domain.Template{}, apperr.NotFound("template not found")
	}
	templateID, err := uuid.Parse(id)
	if err != nil {
		return domain.Template{}, apperr.NotFound("template not found")
	}
	return s.repo.GetTemplate(ctx, tenantID, templateID)
}

func (s *Service) collectAssets(ctx context.Context, a repository.Affidavit) (pdf.Assets, error) {
	url := pdf.VerificationURL(s.opts.BaseURL, a.VerificationCode)
	qr, err := pdf.VerificationQR(url, 256)
	if err != nil {
		return pdf.Assets{}, err
	}
	assets := pdf.Assets{VerificationCode: a.VerificationCode, VerificationURL: url, QRCode: qr}
	subject := a.JobID.String()

	if a.Data.IncludeCompanyInfo {
		if company, err := s.company.Company(ctx, a.TenantID); err != nil {
			s.log.CollaboratorDegraded("company_profile", subject, err)
		} else if company.LogoKey != "" {
			assets.Logo = s.fetchImage(ctx, s.opts.LogoBucket, company.LogoKey, subject)
		}
	}
	if sig := a.Data.PlacedSignature; sig != nil && sig.ImageKey != "" {
		assets.Signature = s.fetchImage(ctx, s.opts.AffidavitBucket, sig.ImageKey, subject)
	}
	for _, key := range a.Data.PhotoKeys {
		if img := s.fetchImage(ctx, s.opts.PhotoBucket, key, subject); len(img.Data) > 0 {
			assets.Photos = append(assets.Photos, img)
		}
	}
	return assets, nil
}

// fetchImage returns an empty image when the object cannot be read.
func (s *Service) fetchImage(ctx context.Context, bucket, key, subject string) pdf.Image {
	info, err := s.storage.StatObject(ctx, bucket, key)
	if err != nil {
		s.log.CollaboratorDegraded("storage", subject, err)
		return pdf.Image{}
	}
	if !storage.IsImageContentType(info.ContentType) {
		return pdf.Image{}
	}
	if info.Size > maxEmbeddedImageBytes {
		s.log.CollaboratorDegraded("storage", subject, fmt.Errorf("%s: %w", key, errObjectTooLarge))
		return pdf.Image{}
	}
	data, err := s.readObject(ctx, bucket, key, maxEmbeddedImageBytes)
	if err != nil {
		s.log.CollaboratorDegraded("storage", subject, err)
		return pdf.Image{}
	}
	return pdf.Image{Data: data, ContentType: info.ContentType}
}

// readObject reads a whole object. Objects larger than limit fail with
// errObjectTooLarge rather than being cut short.
func (s *Service) readObject(ctx context.Context, bucket, key string, limit int64) ([]byte, error) {
	body, err := s.storage.DownloadFile(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: %w", key, errObjectTooLarge)
	}
	return data, nil
}

// mergeServedDocuments appends the job's PDF documents to be served. Any
// failure keeps the affidavit on its own.
func (s *Service) mergeServedDocuments(ctx context.Context, a repository.Affidavit, affidavit []byte) []byte {
	subject := a.JobID.String()
	docs, err := s.jobs.Documents(ctx, a.TenantID, a.JobID)
	if err != nil {
		s.log.CollaboratorDegraded("documents", subject, err)
		return affidavit
	}

	parts := [][]byte{affidavit}
	for _, d := range docs {
		if d.Category != jobdomain.DocumentToBeServed || !storage.IsPDFContentType(d.ContentType) {
			continue
		}
		data, err := s.readObject(ctx, s.jobs.DocumentBucket(d), d.ObjectKey, maxServedDocumentBytes)
		if err != nil {
			s.log.CollaboratorDegraded("storage", subject, err)
			continue
		}
		parts = append(parts, data)
	}
	if len(parts) == 1 {
		return affidavit
	}

	merged, err := s.renderer.Merge(ctx, parts)
	if err != nil {
		s.log.CollaboratorDegraded("pdf_merge", subject, err)
		return affidavit
	}
	return merged
}

func fileNameFor(a repository.Affidavit) string {
	kind := "affidavit-of-service"
	if a.Data.ServiceStatus != jobdomain.OutcomeServed {
		kind = "affidavit-of-due-diligence"
	}
	if cn := storage.SafeName(a.Data.CaseNumber); cn != "" {
		return fmt.Sprintf("%s-%s.pdf", kind, cn)
	}
	return kind + ".pdf"
}
