package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/events"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/repository"
	"serveportal_backend/internal/jobs/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// attemptWrite mutates the attempts table for one locked job and returns the written attempt.
type attemptWrite func(tx repository.Repository, job domain.Job) (domain.Attempt, error)

// LogAttempt records a new attempt. The normalized row, the job's attempts
// cache and the reconciled status are written in one transaction.
func (s *Service) LogAttempt(ctx context.Context, tenantID, jobID uuid.UUID, req transport.AttemptRequest) (domain.Attempt, error) {
	attempt, err := s.buildAttempt(ctx, tenantID, jobID, req)
	if err != nil {
		return domain.Attempt{}, err
	}

	written, err := s.writeAttempt(ctx, tenantID, jobID, func(tx repository.Repository, job domain.Job) (domain.Attempt, error) {
		if job.Status == domain.StatusCancelled {
			return domain.Attempt{}, apperr.Conflict("cannot log attempts on a cancelled job")
		}
		if attempt.Address == "" {
			if primary, ok := job.PrimaryAddress(); ok {
				attempt.Address = primary.OneLine()
			}
		}
		return tx.InsertAttempt(ctx, tenantID, attempt)
	})
	if err != nil {
		return domain.Attempt{}, err
	}

	s.log.Info("attempt logged", "jobId", jobID, "attemptId", written.ID, "status", written.Status, "method", written.ServiceMethod)
	s.publishAttempt(ctx, tenantID, written, false)
	return written, nil
}

// EditAttempt replaces the editable fields of an existing attempt. Uploaded
// files are kept.
func (s *Service) EditAttempt(ctx context.Context, tenantID, jobID, attemptID uuid.UUID, req transport.AttemptRequest) (domain.Attempt, error) {
	edited, err := s.buildAttempt(ctx, tenantID, jobID, req)
	if err != nil {
		return domain.Attempt{}, err
	}

	written, err := s.writeAttempt(ctx, tenantID, jobID, func(tx repository.Repository, _ domain.Job) (domain.Attempt, error) {
		current, err := tx.GetAttempt(ctx, tenantID, jobID, attemptID)
		if err != nil {
			return domain.Attempt{}, err
		}
		edited.ID = current.ID
		edited.Files = current.Files
		if edited.Address == "" {
			edited.Address = current.Address
		}
		return tx.UpdateAttempt(ctx, tenantID, edited)
	})
	if err != nil {
		return domain.Attempt{}, err
	}

	s.log.Info("attempt edited", "jobId", jobID, "attemptId", written.ID, "status", written.Status)
	s.publishAttempt(ctx, tenantID, written, true)
	return written, nil
}

// writeAttempt runs write under a job row lock, then refreshes the attempts
// cache and reconciles the job status against the full attempt list.
func (s *Service) writeAttempt(ctx context.Context, tenantID, jobID uuid.UUID, write attemptWrite) (domain.Attempt, error) {
	var (
		written    domain.Attempt
		correction *statusCorrection
	)
	err := s.repo.InTx(ctx, func(tx repository.Repository) error {
		job, err := tx.LockJob(ctx, tenantID, jobID)
		if err != nil {
			return err
		}
		written, err = write(tx, job)
		if err != nil {
			return err
		}

		attempts, err := tx.ListAttempts(ctx, tenantID, jobID)
		if err != nil {
			return err
		}
		if err := tx.RefreshAttemptsCache(ctx, tenantID, jobID, attempts); err != nil {
			return err
		}

		job, correction, err = s.correctStatus(ctx, tx, job, attempts)
		if err != nil {
			return err
		}
		if startsWork(job, attempts) {
			return tx.UpdateStatus(ctx, tenantID, jobID, repository.StatusUpdate{Status: domain.StatusInProgress})
		}
		return nil
	})
	if err != nil {
		return domain.Attempt{}, err
	}
	s.announceCorrection(ctx, correction)
	return written, nil
}

// startsWork reports whether an open job with attempts should move to in progress.
func startsWork(job domain.Job, attempts []domain.Attempt) bool {
	if len(attempts) == 0 {
		return false
	}
	return job.Status == domain.StatusPending || job.Status == domain.StatusAssigned
}

func (s *Service) buildAttempt(ctx context.Context, tenantID, jobID uuid.UUID, req transport.AttemptRequest) (domain.Attempt, error) {
	attempt := domain.Attempt{
		JobID:             jobID,
		Status:            domain.AttemptStatus(req.Status),
		AttemptDate:       req.AttemptDate.UTC(),
		ServiceTypeDetail: sanitize.Text(req.ServiceTypeDetail),
		ServiceMethod:     domain.ServiceMethod(req.ServiceMethod),
		PersonServed: domain.PersonServed{
			Name:         sanitize.Name(req.PersonServed.Name),
			Relationship: sanitize.Text(req.PersonServed.Relationship),
			Sex:          sanitize.Text(req.PersonServed.Sex),
			Age:          sanitize.Text(req.PersonServed.Age),
			Height:       sanitize.Text(req.PersonServed.Height),
			Weight:       sanitize.Text(req.PersonServed.Weight),
			Hair:         sanitize.Text(req.PersonServed.Hair),
			Description:  sanitize.Text(req.PersonServed.Description),
		},
		ServerID:   req.ServerID,
		ServerName: sanitize.Name(req.ServerName),
		Address:    sanitize.Text(req.Address),
		Notes:      sanitize.Text(req.Notes),
	}
	if req.GPS != nil {
		attempt.GPS = &domain.GPS{Latitude: req.GPS.Latitude, Longitude: req.GPS.Longitude, Accuracy: req.GPS.Accuracy}
	}
	if attempt.ServiceMethod == "" {
		attempt.ServiceMethod = domain.InferMethod(attempt)
	}

	if attempt.ServerName == "" && attempt.ServerID != nil && s.servers != nil {
		name, err := s.servers.ServerName(ctx, tenantID, *attempt.ServerID)
		if err != nil {
			s.log.CollaboratorDegraded("servers", jobID.String(), err)
		} else {
			attempt.ServerName = name
		}
	}
	if attempt.Address == "" && attempt.GPS != nil {
		attempt.Address = s.resolveAddress(ctx, jobID, *attempt.GPS)
	}
	return attempt, nil
}

// resolveAddress reverse geocodes gps; failures leave the address empty.
func (s *Service) resolveAddress(ctx context.Context, jobID uuid.UUID, gps domain.GPS) string {
	if s.resolver == nil {
		return ""
	}
	address, err := s.resolver.ReverseGeocode(ctx, gps.Latitude, gps.Longitude)
	if err != nil {
		s.log.CollaboratorDegraded("geocoder", jobID.String(), err)
		return ""
	}
	return strings.TrimSpace(address)
}

func (s *Service) publishAttempt(ctx context.Context, tenantID uuid.UUID, a domain.Attempt, edited bool) {
	s.eventBus.Publish(ctx, events.AttemptLogged{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  tenantID,
		JobID:     a.JobID,
		AttemptID: a.ID,
		Status:    string(a.Status),
		Edited:    edited,
	})
}
