package repository

import (
	"context"
	"errors"
	"fmt"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const templateNotFoundMessage = "template not found"

const templateColumns = `id, company_id, name, description, mode, jurisdiction, county, court_type, service_status,
	is_active, visible_to_clients, body`

const listSystemTemplatesQuery = `SELECT ` + templateColumns + `
	FROM affidavit_templates
	WHERE company_id IS NULL AND is_active
	ORDER BY name, id`

const listCompanyTemplatesQuery = `SELECT ` + templateColumns + `
	FROM affidavit_templates
	WHERE company_id = $1 AND ($2 OR is_active)
	ORDER BY name, id`

const getTemplateQuery = `SELECT ` + templateColumns + `
	FROM affidavit_templates
	WHERE id = $1 AND (company_id = $2 OR company_id IS NULL)`

const createTemplateQuery = `
	INSERT INTO affidavit_templates (id, company_id, name, description, mode, jurisdiction, county, court_type,
		service_status, visible_to_clients, body)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + templateColumns

const updateTemplateQuery = `
	UPDATE affidavit_templates SET
		name = $3, description = $4, mode = $5, jurisdiction = $6, county = $7, court_type = $8,
		service_status = $9, visible_to_clients = $10, body = $11, is_active = $12, updated_at = now()
	WHERE id = $1 AND company_id = $2
	RETURNING ` + templateColumns

const deactivateTemplateQuery = `
	UPDATE affidavit_templates SET is_active = false, updated_at = now()
	WHERE id = $1 AND company_id = $2 AND is_active`

// ListSystemTemplates returns the active templates shared by every company.
func (r *Repository) ListSystemTemplates(ctx context.Context) ([]domain.Template, error) {
	return r.queryTemplates(ctx, "list system templates", listSystemTemplatesQuery)
}

// ListCompanyTemplates returns the company's own templates.
func (r *Repository) ListCompanyTemplates(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]domain.Template, error) {
	return r.queryTemplates(ctx, "list company templates", listCompanyTemplatesQuery, tenantID, includeInactive)
}

// GetTemplate returns a company template or a system template.
func (r *Repository) GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (domain.Template, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, getTemplateQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Template{}, apperr.NotFound(templateNotFoundMessage)
		}
		return domain.Template{}, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

// CreateTemplate inserts a company template.
func (r *Repository) CreateTemplate(ctx context.Context, tenantID uuid.UUID, t domain.Template) (domain.Template, error) {
	id := uuid.New()
	created, err := scanTemplate(r.pool.QueryRow(ctx, createTemplateQuery, templateArgs(id, tenantID, t)...))
	if err != nil {
		return domain.Template{}, fmt.Errorf("create template: %w", err)
	}
	return created, nil
}

// UpdateTemplate replaces a company template. System templates are not reachable here.
func (r *Repository) UpdateTemplate(ctx context.Context, tenantID, id uuid.UUID, t domain.Template) (domain.Template, error) {
	args := append(templateArgs(id, tenantID, t), t.Active)
	updated, err := scanTemplate(r.pool.QueryRow(ctx, updateTemplateQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Template{}, apperr.NotFound(templateNotFoundMessage)
		}
		return domain.Template{}, fmt.Errorf("update template: %w", err)
	}
	return updated, nil
}

// DeactivateTemplate soft-deletes a company template.
func (r *Repository) DeactivateTemplate(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deactivateTemplateQuery, id, tenantID)
	if err != nil {
		return fmt.Errorf("deactivate template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(templateNotFoundMessage)
	}
	return nil
}

func (r *Repository) queryTemplates(ctx context.Context, op, query string, args ...any) ([]domain.Template, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]domain.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func templateArgs(id, tenantID uuid.UUID, t domain.Template) []any {
	visible := t.VisibleToClients
	if visible == nil {
		visible = []uuid.UUID{}
	}
	status := t.ServiceStatus
	if status == "" {
		status = domain.ApplicableBoth
	}
	jurisdiction := t.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = domain.GeneralJurisdiction
	}
	return []any{id, tenantID, t.Name, t.Description, string(t.Mode), jurisdiction, t.County, t.CourtType,
		string(status), visible, t.Body}
}

func scanTemplate(row pgx.Row) (domain.Template, error) {
	var (
		t         domain.Template
		id        uuid.UUID
		companyID *uuid.UUID
		mode      string
		status    string
	)
	err := row.Scan(&id, &companyID, &t.Name, &t.Description, &mode, &t.Jurisdiction, &t.County, &t.CourtType,
		&status, &t.Active, &t.VisibleToClients, &t.Body)
	if err != nil {
		return domain.Template{}, err
	}
	t.ID = id.String()
	t.Mode = domain.RenderingMode(mode)
	t.ServiceStatus = domain.Applicability(status)
	t.Origin = domain.OriginCompany
	if companyID == nil {
		t.Origin = domain.OriginSystem
	}
	return t, nil
}
