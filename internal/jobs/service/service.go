// Package service implements the jobs use cases: job intake, assignment,
// attempt logging and the read-path status reconciliation.
package service

import (
	"context"
	"math"
	"strings"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/events"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/repository"
	"serveportal_backend/internal/jobs/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 25
	defaultPriority = "routine"

	msgJobNotFound = "job not found"
)

// AddressResolver turns a GPS fix into a one-line street address.
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// ServerDirectory resolves a server id to a display name.
type ServerDirectory interface {
	ServerName(ctx context.Context, tenantID, serverID uuid.UUID) (string, error)
}

// Buckets names the object storage buckets the jobs module reads and writes.
// Affidavits holds generated PDFs that are attached to a job as documents.
type Buckets struct {
	Photos     string
	Documents  string
	Affidavits string
}

// Service provides business logic for jobs.
type Service struct {
	repo     repository.Repository
	storage  storage.StorageService
	buckets  Buckets
	eventBus events.Bus
	log      *logger.Logger
	resolver AddressResolver
	servers  ServerDirectory
}

// New creates a new jobs service.
func New(repo repository.Repository, store storage.StorageService, buckets Buckets, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		storage:  store,
		buckets:  buckets,
		eventBus: eventBus,
		log:      log,
	}
}

// SetAddressResolver enables reverse geocoding of attempt GPS fixes.
func (s *Service) SetAddressResolver(resolver AddressResolver) {
	s.resolver = resolver
}

// SetServerDirectory enables server name lookup for attempts logged by id only.
func (s *Service) SetServerDirectory(servers ServerDirectory) {
	s.servers = servers
}

// Create creates a new job.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, clientScope *uuid.UUID, req transport.CreateJobRequest) (transport.JobResponse, error) {
	addresses := make([]domain.Address, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		addresses = append(addresses, domain.Address{
			Label:   sanitize.Text(a.Label),
			Street:  sanitize.Text(a.Street),
			Street2: sanitize.Text(a.Street2),
			City:    sanitize.Text(a.City),
			State:   strings.ToUpper(strings.TrimSpace(a.State)),
			ZIP:     strings.TrimSpace(a.ZIP),
			Primary: a.Primary,
		})
	}
	if err := domain.ValidateAddresses(addresses); err != nil {
		return transport.JobResponse{}, apperr.Validation(err.Error())
	}

	clientID := req.ClientID
	if clientScope != nil {
		clientID = clientScope
	}

	job := domain.Job{
		TenantID:         tenantID,
		ClientID:         clientID,
		JobNumber:        strings.TrimSpace(req.JobNumber),
		Status:           domain.StatusPending,
		Priority:         req.Priority,
		Recipient:        domain.Recipient{Name: sanitize.Name(req.RecipientName), Type: req.RecipientType},
		Addresses:        addresses,
		AssignedServerID: req.AssignedServerID,
		CourtCaseID:      req.CourtCaseID,
		CaseNumber:       strings.TrimSpace(req.CaseNumber),
		CourtName:        sanitize.Text(req.CourtName),
		CourtCounty:      sanitize.Text(req.CourtCounty),
		CourtState:       strings.ToUpper(strings.TrimSpace(req.CourtState)),
		Plaintiff:        sanitize.Text(req.Plaintiff),
		Defendant:        sanitize.Text(req.Defendant),
		DueDate:          req.DueDate,
	}
	if job.Priority == "" {
		job.Priority = defaultPriority
	}
	if job.Recipient.Type == "" {
		job.Recipient.Type = "individual"
	}
	if job.JobNumber == "" {
		job.JobNumber = newJobNumber()
	}
	if job.HasAssignedServer() {
		job.Status = domain.StatusAssigned
	}
	if job.CourtCaseID != nil {
		if _, err := s.repo.GetCourtCase(ctx, tenantID, *job.CourtCaseID); err != nil {
			return transport.JobResponse{}, err
		}
	}

	created, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return transport.JobResponse{}, err
	}

	s.log.Info("job created", "jobId", created.ID, "tenantId", tenantID, "status", created.Status)
	if created.AssignedServerID != nil {
		s.eventBus.Publish(ctx, events.JobAssigned{
			BaseEvent: events.NewBaseEvent(),
			TenantID:  tenantID,
			JobID:     created.ID,
			ServerID:  created.AssignedServerID,
		})
	}
	return toJobResponse(created, nil), nil
}

// Get returns a job with its attempts, correcting an inconsistent status first.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID, clientScope *uuid.UUID) (transport.JobResponse, error) {
	job, err := s.repo.GetJob(ctx, tenantID, id)
	if err != nil {
		return transport.JobResponse{}, err
	}
	if !visibleToClient(job, clientScope) {
		return transport.JobResponse{}, apperr.NotFound(msgJobNotFound)
	}
	job, attempts, err := s.loadAttempts(ctx, job)
	if err != nil {
		return transport.JobResponse{}, err
	}
	return toJobResponse(job, attempts), nil
}

// Load reads a job and its attempts and persists any status correction.
func (s *Service) Load(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, []domain.Attempt, error) {
	job, err := s.repo.GetJob(ctx, tenantID, id)
	if err != nil {
		return domain.Job{}, nil, err
	}
	return s.loadAttempts(ctx, job)
}

func (s *Service) loadAttempts(ctx context.Context, job domain.Job) (domain.Job, []domain.Attempt, error) {
	attempts, err := s.repo.ListAttempts(ctx, job.TenantID, job.ID)
	if err != nil {
		return domain.Job{}, nil, err
	}
	job, err = s.reconcile(ctx, job, attempts)
	if err != nil {
		return domain.Job{}, nil, err
	}
	return job, attempts, nil
}

// List returns a page of jobs. Listed jobs are reconciled against their attempts cache.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, clientScope *uuid.UUID, req transport.ListJobsRequest) (transport.JobListResponse, error) {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	jobs, total, err := s.repo.ListJobs(ctx, repository.ListParams{
		TenantID: tenantID,
		Status:   req.Status,
		ServerID: req.ServerID,
		ClientID: clientScope,
		Search:   req.Search,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	})
	if err != nil {
		return transport.JobListResponse{}, err
	}

	items := make([]transport.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		reconciled, err := s.reconcile(ctx, job, job.AttemptsCache)
		if err != nil {
			return transport.JobListResponse{}, err
		}
		items = append(items, toJobResponse(reconciled, reconciled.AttemptsCache))
	}

	return transport.JobListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Assign sets or clears the assigned server. Only pending and assigned jobs
// move between those two statuses; later statuses keep their value.
func (s *Service) Assign(ctx context.Context, tenantID, id, actorID uuid.UUID, req transport.AssignJobRequest) (transport.JobResponse, error) {
	var updated domain.Job
	err := s.repo.InTx(ctx, func(tx repository.Repository) error {
		job, err := tx.LockJob(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if job.Status.IsTerminal() {
			return apperr.Conflict("cannot reassign a " + string(job.Status) + " job")
		}

		status := job.Status
		switch {
		case req.ServerID != nil && status == domain.StatusPending:
			status = domain.StatusAssigned
		case req.ServerID == nil && status == domain.StatusAssigned:
			status = domain.StatusPending
		}
		if err := tx.UpdateAssignment(ctx, tenantID, id, req.ServerID, status); err != nil {
			return err
		}
		job.AssignedServerID = req.ServerID
		job.Status = status
		updated = job
		return nil
	})
	if err != nil {
		return transport.JobResponse{}, err
	}

	s.log.Info("job assignment changed", "jobId", id, "serverId", req.ServerID, "status", updated.Status)
	s.eventBus.Publish(ctx, events.JobAssigned{
		BaseEvent:  events.NewBaseEvent(),
		TenantID:   tenantID,
		JobID:      id,
		ServerID:   req.ServerID,
		AssignedBy: actorID,
	})
	return toJobResponse(updated, updated.AttemptsCache), nil
}

// UpdateStatus applies a manual status change. Served is derived from attempts
// and cannot be set by hand.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, req transport.UpdateJobStatusRequest) (transport.JobResponse, error) {
	status := domain.JobStatus(req.Status)
	if status == domain.StatusServed {
		return transport.JobResponse{}, apperr.Validation("log a served attempt to mark a job served")
	}

	var updated domain.Job
	err := s.repo.InTx(ctx, func(tx repository.Repository) error {
		job, err := tx.LockJob(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if job.Status == domain.StatusServed {
			return apperr.Conflict("job is served; edit the served attempt instead")
		}
		if err := tx.UpdateStatus(ctx, tenantID, id, repository.StatusUpdate{Status: status}); err != nil {
			return err
		}
		job.Status = status
		job.ServiceDate = nil
		job.ServiceMethod = ""
		updated = job
		return nil
	})
	if err != nil {
		return transport.JobResponse{}, err
	}

	s.log.Info("job status updated", "jobId", id, "status", status)
	return toJobResponse(updated, updated.AttemptsCache), nil
}

// statusCorrection describes a persisted status correction that has not been
// announced yet.
type statusCorrection struct {
	tenantID uuid.UUID
	jobID    uuid.UUID
	from     domain.JobStatus
	to       domain.JobStatus
	reason   string
}

// reconcile persists any status correction for job outside a transaction and
// announces it.
func (s *Service) reconcile(ctx context.Context, job domain.Job, attempts []domain.Attempt) (domain.Job, error) {
	job, correction, err := s.correctStatus(ctx, s.repo, job, attempts)
	if err != nil {
		return domain.Job{}, err
	}
	s.announceCorrection(ctx, correction)
	return job, nil
}

// correctStatus writes the reconciled status through r. Inside a transaction
// the caller announces the returned correction only after commit.
func (s *Service) correctStatus(ctx context.Context, r repository.Repository, job domain.Job, attempts []domain.Attempt) (domain.Job, *statusCorrection, error) {
	rec := domain.Reconcile(job, attempts)
	if !rec.NeedsPersist {
		return job, nil, nil
	}

	from := job.Status
	err := r.UpdateStatus(ctx, job.TenantID, job.ID, repository.StatusUpdate{
		Status:        rec.Status,
		ServiceDate:   rec.ServiceDate,
		ServiceMethod: rec.ServiceMethod,
	})
	if err != nil {
		return domain.Job{}, nil, err
	}
	rec.Apply(&job)
	return job, &statusCorrection{tenantID: job.TenantID, jobID: job.ID, from: from, to: rec.Status, reason: rec.Reason}, nil
}

func (s *Service) announceCorrection(ctx context.Context, c *statusCorrection) {
	if c == nil {
		return
	}
	s.log.StatusCorrected(c.jobID.String(), string(c.from), string(c.to), c.reason)
	s.eventBus.Publish(ctx, events.JobStatusReconciled{
		BaseEvent:  events.NewBaseEvent(),
		TenantID:   c.tenantID,
		JobID:      c.jobID,
		FromStatus: string(c.from),
		ToStatus:   string(c.to),
	})
}

func visibleToClient(job domain.Job, clientScope *uuid.UUID) bool {
	if clientScope == nil {
		return true
	}
	return job.ClientID != nil && *job.ClientID == *clientScope
}

func newJobNumber() string {
	return "J-" + strings.ToUpper(uuid.New().String()[:8])
}
