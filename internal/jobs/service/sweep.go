package service

import (
	"context"

	"serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

const sweepPageSize = 200

// SweepResult counts the work done by one reconciliation sweep.
type SweepResult struct {
	Checked   int
	Corrected int
}

// ReconcileTenant reconciles the jobs of a tenant against their attempts.
// Jobs closed without service are skipped; reads still reconcile them. Jobs
// are read one at a time so each correction is persisted independently.
func (s *Service) ReconcileTenant(ctx context.Context, tenantID uuid.UUID) (SweepResult, error) {
	var (
		result SweepResult
		after  uuid.UUID
	)
	for {
		ids, err := s.repo.ListJobIDs(ctx, tenantID, after, sweepPageSize)
		if err != nil {
			return result, err
		}
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			checked, corrected, err := s.reconcileOne(ctx, tenantID, id)
			if err != nil {
				return result, err
			}
			if !checked {
				continue
			}
			result.Checked++
			if corrected {
				result.Corrected++
			}
		}
		if len(ids) < sweepPageSize {
			break
		}
		after = ids[len(ids)-1]
	}

	s.log.Info("reconciliation sweep finished", "tenantId", tenantID, "checked", result.Checked, "corrected", result.Corrected)
	return result, nil
}

// ReconcileAll sweeps every tenant that has jobs.
func (s *Service) ReconcileAll(ctx context.Context) (SweepResult, error) {
	tenants, err := s.repo.ListTenantIDs(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	var total SweepResult
	for _, tenantID := range tenants {
		r, err := s.ReconcileTenant(ctx, tenantID)
		total.Checked += r.Checked
		total.Corrected += r.Corrected
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Service) reconcileOne(ctx context.Context, tenantID, id uuid.UUID) (checked, corrected bool, err error) {
	job, err := s.repo.GetJob(ctx, tenantID, id)
	if err != nil {
		return false, false, err
	}
	if job.Status.IsClosed() {
		return false, false, nil
	}
	attempts, err := s.repo.ListAttempts(ctx, tenantID, id)
	if err != nil {
		return true, false, err
	}
	if !domain.Reconcile(job, attempts).NeedsPersist {
		return true, false, nil
	}
	if _, err := s.reconcile(ctx, job, attempts); err != nil {
		return true, false, err
	}
	return true, true, nil
}
