package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	jobNotFoundMessage       = "job not found"
	attemptNotFoundMessage   = "attempt not found"
	documentNotFoundMessage  = "document not found"
	courtCaseNotFoundMessage = "court case not found"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	q    querier
}

// New creates a new jobs repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, q: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// InTx runs fn inside a transaction. Calling InTx on a transactional
// repository reuses the open transaction.
func (r *Repo) InTx(ctx context.Context, fn func(tx Repository) error) error {
	if _, inTx := r.q.(pgx.Tx); inTx {
		return fn(r)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&Repo{pool: r.pool, q: tx})
	})
}

// =============================================================================
// Jobs
// =============================================================================

func (r *Repo) GetJob(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, error) {
	job, err := scanJob(r.q.QueryRow(ctx, getJobQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, apperr.NotFound(jobNotFoundMessage)
		}
		return domain.Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (r *Repo) LockJob(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, error) {
	job, err := scanJob(r.q.QueryRow(ctx, lockJobQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, apperr.NotFound(jobNotFoundMessage)
		}
		return domain.Job{}, fmt.Errorf("lock job: %w", err)
	}
	return job, nil
}

func (r *Repo) ListJobs(ctx context.Context, params ListParams) ([]domain.Job, int, error) {
	var statusParam, searchParam any
	if params.Status != "" {
		statusParam = params.Status
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		searchParam = "%" + s + "%"
	}
	args := []any{params.TenantID, statusParam, params.ServerID, params.ClientID, searchParam}

	var total int
	if err := r.q.QueryRow(ctx, countJobsQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := r.q.Query(ctx, listJobsQuery, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *Repo) ListJobIDs(ctx context.Context, tenantID, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	rows, err := r.q.Query(ctx, listJobIDsQuery, tenantID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("list job ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *Repo) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.q.Query(ctx, listTenantIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("list tenant ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func (r *Repo) CreateJob(ctx context.Context, job domain.Job) (domain.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	addresses, err := json.Marshal(job.Addresses)
	if err != nil {
		return domain.Job{}, fmt.Errorf("encode addresses: %w", err)
	}

	created, err := scanJob(r.q.QueryRow(ctx, insertJobQuery,
		job.ID, job.TenantID, job.ClientID, job.JobNumber, string(job.Status), job.Priority,
		job.Recipient.Name, job.Recipient.Type, addresses, job.AssignedServerID, job.CourtCaseID,
		job.CaseNumber, job.CourtName, job.CourtCounty, job.CourtState, job.Plaintiff, job.Defendant,
		job.DueDate,
	))
	if err != nil {
		return domain.Job{}, fmt.Errorf("insert job: %w", err)
	}
	return created, nil
}

func (r *Repo) UpdateAssignment(ctx context.Context, tenantID, id uuid.UUID, serverID *uuid.UUID, status domain.JobStatus) error {
	tag, err := r.q.Exec(ctx, updateAssignmentQuery, id, tenantID, serverID, string(status))
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMessage)
	}
	return nil
}

func (r *Repo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, update StatusUpdate) error {
	tag, err := r.q.Exec(ctx, updateStatusQuery, id, tenantID, string(update.Status), update.ServiceDate, string(update.ServiceMethod))
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMessage)
	}
	return nil
}

func (r *Repo) RefreshAttemptsCache(ctx context.Context, tenantID, jobID uuid.UUID, attempts []domain.Attempt) error {
	if attempts == nil {
		attempts = []domain.Attempt{}
	}
	payload, err := json.Marshal(attempts)
	if err != nil {
		return fmt.Errorf("encode attempts cache: %w", err)
	}
	if _, err := r.q.Exec(ctx, refreshAttemptsCacheQuery, jobID, tenantID, payload); err != nil {
		return fmt.Errorf("refresh attempts cache: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var (
		job                      domain.Job
		status, method           string
		addresses, attemptsCache []byte
		serviceDate, dueDate     *time.Time
	)
	err := row.Scan(
		&job.ID, &job.TenantID, &job.ClientID, &job.JobNumber, &status, &job.Priority,
		&job.Recipient.Name, &job.Recipient.Type, &addresses, &job.AssignedServerID, &job.CourtCaseID,
		&job.CaseNumber, &job.CourtName, &job.CourtCounty, &job.CourtState, &job.Plaintiff, &job.Defendant,
		&serviceDate, &method, &attemptsCache, &dueDate, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return domain.Job{}, err
	}
	job.Status = domain.JobStatus(status)
	job.ServiceMethod = domain.ServiceMethod(method)
	job.ServiceDate = serviceDate
	job.DueDate = dueDate
	if len(addresses) > 0 {
		if err := json.Unmarshal(addresses, &job.Addresses); err != nil {
			return domain.Job{}, fmt.Errorf("decode addresses: %w", err)
		}
	}
	if len(attemptsCache) > 0 {
		if err := json.Unmarshal(attemptsCache, &job.AttemptsCache); err != nil {
			return domain.Job{}, fmt.Errorf("decode attempts cache: %w", err)
		}
	}
	return job, nil
}
