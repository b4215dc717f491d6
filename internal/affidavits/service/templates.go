package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/transport"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Candidates returns the merged templates usable for a job, filtered by the
// job's client. Templates restricted to other clients are never offered.
func (s *Service) Candidates(ctx context.Context, tenantID, jobID uuid.UUID, clientScope *uuid.UUID) ([]transport.TemplateResponse, error) {
	job, err := s.scopedJob(ctx, tenantID, jobID, clientScope)
	if err != nil {
		return nil, err
	}

	starter, err := domain.StarterTemplates()
	if err != nil {
		return nil, err
	}
	system, err := s.repo.ListSystemTemplates(ctx)
	if err != nil {
		return nil, err
	}
	own, err := s.repo.ListCompanyTemplates(ctx, tenantID, false)
	if err != nil {
		return nil, err
	}

	merged := domain.MergeCandidates(starter, system, own, job.ClientID, jobdomain.OutcomeFor(job.Status))
	return toTemplateResponses(merged, false), nil
}

// Library lists templates grouped by origin for template management.
func (s *Service) Library(ctx context.Context, tenantID uuid.UUID, includeInactive bool) (transport.TemplateLibraryResponse, error) {
	starter, err := domain.StarterTemplates()
	if err != nil {
		return transport.TemplateLibraryResponse{}, err
	}
	system, err := s.repo.ListSystemTemplates(ctx)
	if err != nil {
		return transport.TemplateLibraryResponse{}, err
	}
	own, err := s.repo.ListCompanyTemplates(ctx, tenantID, includeInactive)
	if err != nil {
		return transport.TemplateLibraryResponse{}, err
	}
	return transport.TemplateLibraryResponse{
		Company: toTemplateResponses(own, true),
		System:  toTemplateResponses(system, true),
		Starter: toTemplateResponses(starter, true),
	}, nil
}

// CreateTemplate adds a company template. A company template whose name
// matches a system or starter template replaces it for this company.
func (s *Service) CreateTemplate(ctx context.Context, tenantID uuid.UUID, req transport.TemplateRequest) (transport.TemplateResponse, error) {
	t, err := templateFromRequest(req)
	if err != nil {
		return transport.TemplateResponse{}, err
	}
	created, err := s.repo.CreateTemplate(ctx, tenantID, t)
	if err != nil {
		return transport.TemplateResponse{}, err
	}
	s.log.Info("affidavit template created", "templateId", created.ID, "mode", created.Mode)
	return toTemplateResponse(created, true), nil
}

// UpdateTemplate replaces a company template.
func (s *Service) UpdateTemplate(ctx context.Context, tenantID, id uuid.UUID, req transport.TemplateRequest) (transport.TemplateResponse, error) {
	t, err := templateFromRequest(req)
	if err != nil {
		return transport.TemplateResponse{}, err
	}
	updated, err := s.repo.UpdateTemplate(ctx, tenantID, id, t)
	if err != nil {
		return transport.TemplateResponse{}, err
	}
	return toTemplateResponse(updated, true), nil
}

// DeleteTemplate deactivates a company template. Affidavits already
// generated with it keep rendering.
func (s *Service) DeleteTemplate(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.DeactivateTemplate(ctx, tenantID, id); err != nil {
		return err
	}
	s.log.Info("affidavit template deactivated", "templateId", id)
	return nil
}

func templateFromRequest(req transport.TemplateRequest) (domain.Template, error) {
	t := domain.Template{
		Name:             sanitize.Name(req.Name),
		Description:      sanitize.Text(req.Description),
		Mode:             domain.RenderingMode(req.Mode),
		Jurisdiction:     strings.TrimSpace(req.Jurisdiction),
		County:           sanitize.Name(req.County),
		CourtType:        sanitize.Name(req.CourtType),
		ServiceStatus:    domain.Applicability(req.ServiceStatus),
		VisibleToClients: req.VisibleToClients,
		Active:           true,
		Origin:           domain.OriginCompany,
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if t.Jurisdiction != "" && !strings.EqualFold(t.Jurisdiction, domain.GeneralJurisdiction) {
		t.Jurisdiction = strings.ToUpper(t.Jurisdiction)
	}
	if t.Name == "" {
		return domain.Template{}, apperr.FieldErrors("validation failed", map[string]string{"name": "required"})
	}
	if t.Mode == domain.ModeMarkup {
		t.Body = sanitize.Markup(req.Body)
		if _, err := pdf.ParseMarkup(t.Body); err != nil {
			return domain.Template{}, apperr.FieldErrors("validation failed", map[string]string{"body": err.Error()})
		}
	}
	return t, nil
}
