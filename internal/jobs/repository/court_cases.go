package repository

import (
	"context"
	"errors"
	"fmt"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repo) CreateCourtCase(ctx context.Context, cc domain.CourtCase) (domain.CourtCase, error) {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	created, err := scanCourtCase(r.q.QueryRow(ctx, insertCourtCaseQuery,
		cc.ID, cc.TenantID, cc.CaseNumber, cc.CourtName, cc.CourtCounty, cc.CourtState, cc.Plaintiff, cc.Defendant,
	))
	if err != nil {
		return domain.CourtCase{}, fmt.Errorf("insert court case: %w", err)
	}
	return created, nil
}

func (r *Repo) GetCourtCase(ctx context.Context, tenantID, id uuid.UUID) (domain.CourtCase, error) {
	cc, err := scanCourtCase(r.q.QueryRow(ctx, getCourtCaseQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CourtCase{}, apperr.NotFound(courtCaseNotFoundMessage)
		}
		return domain.CourtCase{}, fmt.Errorf("get court case: %w", err)
	}
	return cc, nil
}

func (r *Repo) UpdateCourtCase(ctx context.Context, cc domain.CourtCase) (domain.CourtCase, error) {
	updated, err := scanCourtCase(r.q.QueryRow(ctx, updateCourtCaseQuery,
		cc.ID, cc.TenantID, cc.CaseNumber, cc.CourtName, cc.CourtCounty, cc.CourtState, cc.Plaintiff, cc.Defendant,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CourtCase{}, apperr.NotFound(courtCaseNotFoundMessage)
		}
		return domain.CourtCase{}, fmt.Errorf("update court case: %w", err)
	}
	return updated, nil
}

func scanCourtCase(row pgx.Row) (domain.CourtCase, error) {
	var cc domain.CourtCase
	err := row.Scan(&cc.ID, &cc.TenantID, &cc.CaseNumber, &cc.CourtName, &cc.CourtCounty, &cc.CourtState,
		&cc.Plaintiff, &cc.Defendant, &cc.CreatedAt, &cc.UpdatedAt)
	return cc, err
}
