package repository

import (
	"context"
	"time"

	"serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

// ListParams filters the job list of one tenant.
type ListParams struct {
	TenantID uuid.UUID
	Status   string
	ServerID *uuid.UUID
	ClientID *uuid.UUID
	Search   string
	Offset   int
	Limit    int
}

// StatusUpdate carries the reconciled or manually set status fields.
type StatusUpdate struct {
	Status        domain.JobStatus
	ServiceDate   *time.Time
	ServiceMethod domain.ServiceMethod
}

// UntaggedAttempt is a legacy attempt without a service method tag.
type UntaggedAttempt struct {
	TenantID uuid.UUID
	Attempt  domain.Attempt
}

// JobReader provides read operations for jobs.
type JobReader interface {
	GetJob(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, error)
	ListJobs(ctx context.Context, params ListParams) ([]domain.Job, int, error)
	// ListJobIDs pages through a tenant's job ids in id order, starting after the given id.
	ListJobIDs(ctx context.Context, tenantID, after uuid.UUID, limit int) ([]uuid.UUID, error)
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// JobWriter provides write operations for jobs.
type JobWriter interface {
	CreateJob(ctx context.Context, job domain.Job) (domain.Job, error)
	// LockJob reads a job with a row lock; only meaningful inside InTx.
	LockJob(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, error)
	UpdateAssignment(ctx context.Context, tenantID, id uuid.UUID, serverID *uuid.UUID, status domain.JobStatus) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, update StatusUpdate) error
	RefreshAttemptsCache(ctx context.Context, tenantID, jobID uuid.UUID, attempts []domain.Attempt) error
}

// AttemptStore manages the normalized attempts table.
type AttemptStore interface {
	ListAttempts(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Attempt, error)
	GetAttempt(ctx context.Context, tenantID, jobID, attemptID uuid.UUID) (domain.Attempt, error)
	InsertAttempt(ctx context.Context, tenantID uuid.UUID, attempt domain.Attempt) (domain.Attempt, error)
	UpdateAttempt(ctx context.Context, tenantID uuid.UUID, attempt domain.Attempt) (domain.Attempt, error)
	ListUntaggedAttempts(ctx context.Context, limit int) ([]UntaggedAttempt, error)
	SetAttemptMethod(ctx context.Context, tenantID, attemptID uuid.UUID, method domain.ServiceMethod) error
}

// DocumentStore manages files attached to jobs.
type DocumentStore interface {
	InsertDocument(ctx context.Context, tenantID uuid.UUID, doc domain.Document) (domain.Document, error)
	ListDocuments(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Document, error)
	GetDocument(ctx context.Context, tenantID, jobID, documentID uuid.UUID) (domain.Document, error)
}

// CourtCaseStore manages court cases.
type CourtCaseStore interface {
	CreateCourtCase(ctx context.Context, cc domain.CourtCase) (domain.CourtCase, error)
	GetCourtCase(ctx context.Context, tenantID, id uuid.UUID) (domain.CourtCase, error)
	UpdateCourtCase(ctx context.Context, cc domain.CourtCase) (domain.CourtCase, error)
}

// Repository combines all job persistence operations.
type Repository interface {
	JobReader
	JobWriter
	AttemptStore
	DocumentStore
	CourtCaseStore

	// InTx runs fn against a repository bound to one transaction.
	InTx(ctx context.Context, fn func(tx Repository) error) error
}
