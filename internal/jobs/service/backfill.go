package service

import (
	"context"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/repository"

	"github.com/google/uuid"
)

// BackfillResult counts attempts tagged by one backfill batch.
type BackfillResult struct {
	Tagged   int
	ByMethod map[domain.ServiceMethod]int
}

// BackfillAttemptMethods tags up to limit legacy attempts that have no service
// method, classifying them from their free-text detail, and refreshes the
// attempts cache of every job touched. With dryRun nothing is written.
func (s *Service) BackfillAttemptMethods(ctx context.Context, limit int, dryRun bool) (BackfillResult, error) {
	result := BackfillResult{ByMethod: make(map[domain.ServiceMethod]int)}

	untagged, err := s.repo.ListUntaggedAttempts(ctx, limit)
	if err != nil {
		return result, err
	}

	type jobKey struct{ tenantID, jobID uuid.UUID }
	touched := make(map[jobKey]struct{})

	for _, item := range untagged {
		method := domain.InferMethod(item.Attempt)
		result.ByMethod[method]++
		result.Tagged++
		if dryRun {
			continue
		}
		if err := s.repo.SetAttemptMethod(ctx, item.TenantID, item.Attempt.ID, method); err != nil {
			return result, err
		}
		touched[jobKey{item.TenantID, item.Attempt.JobID}] = struct{}{}
	}

	for key := range touched {
		err := s.repo.InTx(ctx, func(tx repository.Repository) error {
			if _, err := tx.LockJob(ctx, key.tenantID, key.jobID); err != nil {
				return err
			}
			attempts, err := tx.ListAttempts(ctx, key.tenantID, key.jobID)
			if err != nil {
				return err
			}
			return tx.RefreshAttemptsCache(ctx, key.tenantID, key.jobID, attempts)
		})
		if err != nil {
			return result, err
		}
	}

	s.log.Info("attempt method backfill batch", "tagged", result.Tagged, "jobs", len(touched), "dryRun", dryRun)
	return result, nil
}
