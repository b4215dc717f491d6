package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/repository"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/events"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]domain.Job
	attempts   map[uuid.UUID][]domain.Attempt
	documents  map[uuid.UUID][]domain.Document
	courtCases map[uuid.UUID]domain.CourtCase
	statusSets int
	clock      time.Time
	// commitErr fails every transaction after its body ran.
	commitErr error
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		jobs:       make(map[uuid.UUID]domain.Job),
		attempts:   make(map[uuid.UUID][]domain.Attempt),
		documents:  make(map[uuid.UUID][]domain.Document),
		courtCases: make(map[uuid.UUID]domain.CourtCase),
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

// InTx restores jobs and attempts when fn or the commit fails.
func (r *fakeRepo) InTx(_ context.Context, fn func(tx repository.Repository) error) error {
	jobs, attempts := r.snapshot()
	err := fn(r)
	if err == nil {
		err = r.commitErr
	}
	if err != nil {
		r.mu.Lock()
		r.jobs, r.attempts = jobs, attempts
		r.mu.Unlock()
	}
	return err
}

func (r *fakeRepo) snapshot() (map[uuid.UUID]domain.Job, map[uuid.UUID][]domain.Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs := make(map[uuid.UUID]domain.Job, len(r.jobs))
	for id, job := range r.jobs {
		jobs[id] = job
	}
	attempts := make(map[uuid.UUID][]domain.Attempt, len(r.attempts))
	for id, list := range r.attempts {
		attempts[id] = append([]domain.Attempt(nil), list...)
	}
	return jobs, attempts
}

func (r *fakeRepo) GetJob(_ context.Context, tenantID, id uuid.UUID) (domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.TenantID != tenantID {
		return domain.Job{}, apperr.NotFound("job not found")
	}
	return job, nil
}

func (r *fakeRepo) LockJob(ctx context.Context, tenantID, id uuid.UUID) (domain.Job, error) {
	return r.GetJob(ctx, tenantID, id)
}

func (r *fakeRepo) ListJobs(_ context.Context, params repository.ListParams) ([]domain.Job, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Job
	for _, job := range r.jobs {
		if job.TenantID != params.TenantID {
			continue
		}
		if params.Status != "" && string(job.Status) != params.Status {
			continue
		}
		if params.ClientID != nil && (job.ClientID == nil || *job.ClientID != *params.ClientID) {
			continue
		}
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, len(out), nil
}

func (r *fakeRepo) ListJobIDs(_ context.Context, tenantID, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id, job := range r.jobs {
		if job.TenantID == tenantID && id.String() > after.String() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *fakeRepo) ListTenantIDs(context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, job := range r.jobs {
		if !seen[job.TenantID] {
			seen[job.TenantID] = true
			out = append(out, job.TenantID)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateJob(_ context.Context, job domain.Job) (domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = r.tick()
	job.UpdatedAt = job.CreatedAt
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeRepo) UpdateAssignment(_ context.Context, tenantID, id uuid.UUID, serverID *uuid.UUID, status domain.JobStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.TenantID != tenantID {
		return apperr.NotFound("job not found")
	}
	job.AssignedServerID = serverID
	job.Status = status
	r.jobs[id] = job
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, update repository.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok || job.TenantID != tenantID {
		return apperr.NotFound("job not found")
	}
	job.Status = update.Status
	job.ServiceDate = update.ServiceDate
	job.ServiceMethod = update.ServiceMethod
	r.jobs[id] = job
	r.statusSets++
	return nil
}

func (r *fakeRepo) RefreshAttemptsCache(_ context.Context, tenantID, jobID uuid.UUID, attempts []domain.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job := r.jobs[jobID]
	job.AttemptsCache = append([]domain.Attempt(nil), attempts...)
	r.jobs[jobID] = job
	return nil
}

func (r *fakeRepo) ListAttempts(_ context.Context, _, jobID uuid.UUID) ([]domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Attempt{}, r.attempts[jobID]...), nil
}

func (r *fakeRepo) GetAttempt(_ context.Context, _, jobID, attemptID uuid.UUID) (domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts[jobID] {
		if a.ID == attemptID {
			return a, nil
		}
	}
	return domain.Attempt{}, apperr.NotFound("attempt not found")
}

func (r *fakeRepo) InsertAttempt(_ context.Context, _ uuid.UUID, a domain.Attempt) (domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = r.tick()
	r.attempts[a.JobID] = append(r.attempts[a.JobID], a)
	return a, nil
}

func (r *fakeRepo) UpdateAttempt(_ context.Context, _ uuid.UUID, a domain.Attempt) (domain.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.attempts[a.JobID]
	for i := range list {
		if list[i].ID == a.ID {
			a.CreatedAt = list[i].CreatedAt
			list[i] = a
			return a, nil
		}
	}
	return domain.Attempt{}, apperr.NotFound("attempt not found")
}

func (r *fakeRepo) ListUntaggedAttempts(_ context.Context, limit int) ([]repository.UntaggedAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.UntaggedAttempt
	for jobID, list := range r.attempts {
		for _, a := range list {
			if a.ServiceMethod == "" && len(out) < limit {
				out = append(out, repository.UntaggedAttempt{TenantID: r.jobs[jobID].TenantID, Attempt: a})
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) SetAttemptMethod(_ context.Context, _, attemptID uuid.UUID, method domain.ServiceMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for jobID, list := range r.attempts {
		for i := range list {
			if list[i].ID == attemptID {
				list[i].ServiceMethod = method
				r.attempts[jobID] = list
				return nil
			}
		}
	}
	return apperr.NotFound("attempt not found")
}

func (r *fakeRepo) InsertDocument(_ context.Context, _ uuid.UUID, doc domain.Document) (domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = r.tick()
	r.documents[doc.JobID] = append(r.documents[doc.JobID], doc)
	return doc, nil
}

func (r *fakeRepo) ListDocuments(_ context.Context, _, jobID uuid.UUID) ([]domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Document{}, r.documents[jobID]...), nil
}

func (r *fakeRepo) GetDocument(_ context.Context, _, jobID, documentID uuid.UUID) (domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.documents[jobID] {
		if d.ID == documentID {
			return d, nil
		}
	}
	return domain.Document{}, apperr.NotFound("document not found")
}

func (r *fakeRepo) CreateCourtCase(_ context.Context, cc domain.CourtCase) (domain.CourtCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	r.courtCases[cc.ID] = cc
	return cc, nil
}

func (r *fakeRepo) GetCourtCase(_ context.Context, tenantID, id uuid.UUID) (domain.CourtCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cc, ok := r.courtCases[id]
	if !ok || cc.TenantID != tenantID {
		return domain.CourtCase{}, apperr.NotFound("court case not found")
	}
	return cc, nil
}

func (r *fakeRepo) UpdateCourtCase(_ context.Context, cc domain.CourtCase) (domain.CourtCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courtCases[cc.ID]; !ok {
		return domain.CourtCase{}, apperr.NotFound("court case not found")
	}
	r.courtCases[cc.ID] = cc
	return cc, nil
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventName())
	}
	return out
}
