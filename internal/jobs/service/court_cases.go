package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/transport"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// CreateCourtCase creates a court case.
func (s *Service) CreateCourtCase(ctx context.Context, tenantID uuid.UUID, req transport.CourtCaseRequest) (transport.CourtCaseResponse, error) {
	cc, err := s.repo.CreateCourtCase(ctx, courtCaseFromRequest(tenantID, uuid.Nil, req))
	if err != nil {
		return transport.CourtCaseResponse{}, err
	}
	s.log.Info("court case created", "courtCaseId", cc.ID, "caseNumber", cc.CaseNumber)
	return toCourtCaseResponse(cc), nil
}

// GetCourtCase returns a court case.
func (s *Service) GetCourtCase(ctx context.Context, tenantID, id uuid.UUID) (transport.CourtCaseResponse, error) {
	cc, err := s.repo.GetCourtCase(ctx, tenantID, id)
	if err != nil {
		return transport.CourtCaseResponse{}, err
	}
	return toCourtCaseResponse(cc), nil
}

// CourtCase returns the court case record for affidavit assembly.
func (s *Service) CourtCase(ctx context.Context, tenantID, id uuid.UUID) (domain.CourtCase, error) {
	return s.repo.GetCourtCase(ctx, tenantID, id)
}

// UpdateCourtCase replaces a court case.
func (s *Service) UpdateCourtCase(ctx context.Context, tenantID, id uuid.UUID, req transport.CourtCaseRequest) (transport.CourtCaseResponse, error) {
	cc, err := s.repo.UpdateCourtCase(ctx, courtCaseFromRequest(tenantID, id, req))
	if err != nil {
		return transport.CourtCaseResponse{}, err
	}
	return toCourtCaseResponse(cc), nil
}

func courtCaseFromRequest(tenantID, id uuid.UUID, req transport.CourtCaseRequest) domain.CourtCase {
	return domain.CourtCase{
		ID:          id,
		TenantID:    tenantID,
		CaseNumber:  strings.TrimSpace(req.CaseNumber),
		CourtName:   sanitize.Text(req.CourtName),
		CourtCounty: sanitize.Text(req.CourtCounty),
		CourtState:  strings.ToUpper(strings.TrimSpace(req.CourtState)),
		Plaintiff:   sanitize.Text(req.Plaintiff),
		Defendant:   sanitize.Text(req.Defendant),
	}
}
