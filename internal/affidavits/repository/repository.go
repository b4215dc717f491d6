package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const affidavitNotFoundMessage = "affidavit not found"

// Status is the lifecycle of a generated affidavit.
type Status string

const (
	StatusPending   Status = "pending"
	StatusGenerated Status = "generated"
	StatusFailed    Status = "failed"
)

// Affidavit is one generation request and, once rendered, its PDF.
type Affidavit struct {
	ID               uuid.UUID
	JobID            uuid.UUID
	TenantID         uuid.UUID
	TemplateID       string
	Title            string
	ServiceStatus    string
	Status           Status
	ObjectKey        string
	SizeBytes        int64
	VerificationCode string
	Data             domain.AffidavitData
	ErrorMessage     string
	RequestedBy      uuid.UUID
	SentTo           string
	SentAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repository handles affidavit and template persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new affidavits repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const affidavitColumns = `id, job_id, company_id, template_id, title, service_status, status, object_key, size_bytes,
	verification_code, data, error_message, requested_by, sent_to, sent_at, created_at, updated_at`

const createAffidavitQuery = `
	INSERT INTO affidavits (id, job_id, company_id, template_id, title, service_status, status, verification_code, data, requested_by)
	VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $8, $9)
	RETURNING ` + affidavitColumns

const getAffidavitQuery = `SELECT ` + affidavitColumns + ` FROM affidavits WHERE id = $1 AND company_id = $2`

const getAffidavitByCodeQuery = `SELECT ` + affidavitColumns + ` FROM affidavits WHERE verification_code = $1 AND status = 'generated'`

const listAffidavitsQuery = `SELECT ` + affidavitColumns + `
	FROM affidavits
	WHERE company_id = $1 AND job_id = $2
	ORDER BY created_at DESC, id`

const markGeneratedQuery = `
	UPDATE affidavits SET status = 'generated', object_key = $3, size_bytes = $4, error_message = '', updated_at = now()
	WHERE id = $1 AND company_id = $2
	RETURNING ` + affidavitColumns

const markFailedQuery = `
	UPDATE affidavits SET status = 'failed', error_message = $3, updated_at = now()
	WHERE id = $1 AND company_id = $2 AND status <> 'generated'`

const markSentQuery = `
	UPDATE affidavits SET sent_to = $3, sent_at = $4, updated_at = now()
	WHERE id = $1 AND company_id = $2`

// CreateAffidavit records a pending generation.
func (r *Repository) CreateAffidavit(ctx context.Context, a Affidavit) (Affidavit, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	data, err := json.Marshal(a.Data)
	if err != nil {
		return Affidavit{}, fmt.Errorf("encode affidavit data: %w", err)
	}
	created, err := scanAffidavit(r.pool.QueryRow(ctx, createAffidavitQuery,
		a.ID, a.JobID, a.TenantID, a.TemplateID, a.Title, a.ServiceStatus, a.VerificationCode, data, a.RequestedBy))
	if err != nil {
		return Affidavit{}, fmt.Errorf("create affidavit: %w", err)
	}
	return created, nil
}

// GetAffidavit returns one affidavit of the tenant.
func (r *Repository) GetAffidavit(ctx context.Context, tenantID, id uuid.UUID) (Affidavit, error) {
	a, err := scanAffidavit(r.pool.QueryRow(ctx, getAffidavitQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Affidavit{}, apperr.NotFound(affidavitNotFoundMessage)
		}
		return Affidavit{}, fmt.Errorf("get affidavit: %w", err)
	}
	return a, nil
}

// GetByVerificationCode finds a generated affidavit across tenants.
func (r *Repository) GetByVerificationCode(ctx context.Context, code string) (Affidavit, error) {
	a, err := scanAffidavit(r.pool.QueryRow(ctx, getAffidavitByCodeQuery, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Affidavit{}, apperr.NotFound(affidavitNotFoundMessage)
		}
		return Affidavit{}, fmt.Errorf("get affidavit by code: %w", err)
	}
	return a, nil
}

// ListAffidavits returns a job's affidavits, newest first.
func (r *Repository) ListAffidavits(ctx context.Context, tenantID, jobID uuid.UUID) ([]Affidavit, error) {
	rows, err := r.pool.Query(ctx, listAffidavitsQuery, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("list affidavits: %w", err)
	}
	defer rows.Close()

	out := make([]Affidavit, 0)
	for rows.Next() {
		a, err := scanAffidavit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan affidavit: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// MarkGenerated stores the rendered object.
func (r *Repository) MarkGenerated(ctx context.Context, tenantID, id uuid.UUID, objectKey string, size int64) (Affidavit, error) {
	a, err := scanAffidavit(r.pool.QueryRow(ctx, markGeneratedQuery, id, tenantID, objectKey, size))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Affidavit{}, apperr.NotFound(affidavitNotFoundMessage)
		}
		return Affidavit{}, fmt.Errorf("mark affidavit generated: %w", err)
	}
	return a, nil
}

// MarkFailed records a rendering failure. A generated affidavit is never downgraded.
func (r *Repository) MarkFailed(ctx context.Context, tenantID, id uuid.UUID, message string) error {
	if _, err := r.pool.Exec(ctx, markFailedQuery, id, tenantID, message); err != nil {
		return fmt.Errorf("mark affidavit failed: %w", err)
	}
	return nil
}

// MarkSent records delivery by email.
func (r *Repository) MarkSent(ctx context.Context, tenantID, id uuid.UUID, to string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, markSentQuery, id, tenantID, to, at)
	if err != nil {
		return fmt.Errorf("mark affidavit sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(affidavitNotFoundMessage)
	}
	return nil
}

func scanAffidavit(row pgx.Row) (Affidavit, error) {
	var (
		a      Affidavit
		status string
		data   []byte
	)
	err := row.Scan(&a.ID, &a.JobID, &a.TenantID, &a.TemplateID, &a.Title, &a.ServiceStatus, &status,
		&a.ObjectKey, &a.SizeBytes, &a.VerificationCode, &data, &a.ErrorMessage, &a.RequestedBy,
		&a.SentTo, &a.SentAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return Affidavit{}, err
	}
	a.Status = Status(status)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &a.Data); err != nil {
			return Affidavit{}, fmt.Errorf("decode affidavit data: %w", err)
		}
	}
	return a, nil
}

const listStalePendingQuery = `SELECT ` + affidavitColumns + `
	FROM affidavits
	WHERE status = 'pending' AND created_at < $1
	ORDER BY created_at
	LIMIT $2`

// ListStalePending returns pending affidavits of every tenant requested
// before the cutoff, oldest first.
func (r *Repository) ListStalePending(ctx context.Context, before time.Time, limit int) ([]Affidavit, error) {
	rows, err := r.pool.Query(ctx, listStalePendingQuery, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale affidavits: %w", err)
	}
	defer rows.Close()

	out := make([]Affidavit, 0)
	for rows.Next() {
		a, err := scanAffidavit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan affidavit: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
