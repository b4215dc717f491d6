package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/events"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeRepo struct {
	mu         sync.Mutex
	templates  map[uuid.UUID]domain.Template
	owners     map[uuid.UUID]*uuid.UUID
	affidavits map[uuid.UUID]repository.Affidavit
	systemErr  error
	markErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		templates:  make(map[uuid.UUID]domain.Template),
		owners:     make(map[uuid.UUID]*uuid.UUID),
		affidavits: make(map[uuid.UUID]repository.Affidavit),
	}
}

func (r *fakeRepo) list(owner *uuid.UUID, includeInactive bool) []domain.Template {
	out := make([]domain.Template, 0)
	for id, t := range r.templates {
		o := r.owners[id]
		if (o == nil) != (owner == nil) || (o != nil && *o != *owner) {
			continue
		}
		if !t.Active && !includeInactive {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeRepo) ListSystemTemplates(context.Context) ([]domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.systemErr != nil {
		return nil, r.systemErr
	}
	return r.list(nil, false), nil
}

func (r *fakeRepo) ListCompanyTemplates(_ context.Context, tenantID uuid.UUID, includeInactive bool) ([]domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(&tenantID, includeInactive), nil
}

func (r *fakeRepo) GetTemplate(_ context.Context, tenantID, id uuid.UUID) (domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if o := r.owners[id]; !ok || (o != nil && *o != tenantID) {
		return domain.Template{}, apperr.NotFound("template not found")
	}
	return t, nil
}

func (r *fakeRepo) CreateTemplate(_ context.Context, tenantID uuid.UUID, t domain.Template) (domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	t.ID = id.String()
	t.Origin = domain.OriginCompany
	r.templates[id] = t
	owner := tenantID
	r.owners[id] = &owner
	return t, nil
}

func (r *fakeRepo) addSystem(t domain.Template) domain.Template {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	t.ID = id.String()
	t.Origin = domain.OriginSystem
	t.Active = true
	r.templates[id] = t
	r.owners[id] = nil
	return t
}

func (r *fakeRepo) UpdateTemplate(_ context.Context, tenantID, id uuid.UUID, t domain.Template) (domain.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o := r.owners[id]; o == nil || *o != tenantID {
		return domain.Template{}, apperr.NotFound("template not found")
	}
	t.ID = id.String()
	t.Origin = domain.OriginCompany
	r.templates[id] = t
	return t, nil
}

func (r *fakeRepo) DeactivateTemplate(_ context.Context, tenantID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.templates[id]
	if o := r.owners[id]; !ok || o == nil || *o != tenantID {
		return apperr.NotFound("template not found")
	}
	t.Active = false
	r.templates[id] = t
	return nil
}

func (r *fakeRepo) CreateAffidavit(_ context.Context, a repository.Affidavit) (repository.Affidavit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	a.Status = repository.StatusPending
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.affidavits[a.ID] = a
	return a, nil
}

func (r *fakeRepo) GetAffidavit(_ context.Context, tenantID, id uuid.UUID) (repository.Affidavit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.affidavits[id]
	if !ok || a.TenantID != tenantID {
		return repository.Affidavit{}, apperr.NotFound("affidavit not found")
	}
	return a, nil
}

func (r *fakeRepo) GetByVerificationCode(_ context.Context, code string) (repository.Affidavit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.affidavits {
		if a.VerificationCode == code && a.Status == repository.StatusGenerated {
			return a, nil
		}
	}
	return repository.Affidavit{}, apperr.NotFound("affidavit not found")
}

func (r *fakeRepo) ListAffidavits(_ context.Context, tenantID, jobID uuid.UUID) ([]repository.Affidavit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repository.Affidavit, 0)
	for _, a := range r.affidavits {
		if a.TenantID == tenantID && a.JobID == jobID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) MarkGenerated(_ context.Context, tenantID, id uuid.UUID, objectKey string, size int64) (repository.Affidavit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.affidavits[id]
	if !ok || a.TenantID != tenantID {
		return repository.Affidavit{}, apperr.NotFound("affidavit not found")
	}
	a.Status, a.ObjectKey, a.SizeBytes, a.ErrorMessage = repository.StatusGenerated, objectKey, size, ""
	r.affidavits[id] = a
	return a, nil
}

func (r *fakeRepo) MarkFailed(_ context.Context, tenantID, id uuid.UUID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return r.markErr
	}
	a, ok := r.affidavits[id]
	if !ok || a.TenantID != tenantID || a.Status == repository.StatusGenerated {
		return nil
	}
	a.Status, a.ErrorMessage = repository.StatusFailed, message
	r.affidavits[id] = a
	return nil
}

func (r *fakeRepo) MarkSent(_ context.Context, tenantID, id uuid.UUID, to string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.affidavits[id]
	if !ok || a.TenantID != tenantID {
		return apperr.NotFound("affidavit not found")
	}
	a.SentTo, a.SentAt = to, &at
	r.affidavits[id] = a
	return nil
}

type fakeJobs struct {
	mu        sync.Mutex
	jobs      map[uuid.UUID]jobdomain.Job
	attempts  map[uuid.UUID][]jobdomain.Attempt
	cases     map[uuid.UUID]jobdomain.CourtCase
	documents map[uuid.UUID][]jobdomain.Document
	attached  []jobdomain.Document
	docsErr   error
	loadErr   error
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{
		jobs:      make(map[uuid.UUID]jobdomain.Job),
		attempts:  make(map[uuid.UUID][]jobdomain.Attempt),
		cases:     make(map[uuid.UUID]jobdomain.CourtCase),
		documents: make(map[uuid.UUID][]jobdomain.Document),
	}
}

func (j *fakeJobs) Load(_ context.Context, tenantID, id uuid.UUID) (jobdomain.Job, []jobdomain.Attempt, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.loadErr != nil {
		return jobdomain.Job{}, nil, j.loadErr
	}
	job, ok := j.jobs[id]
	if !ok || job.TenantID != tenantID {
		return jobdomain.Job{}, nil, apperr.NotFound("job not found")
	}
	return job, j.attempts[id], nil
}

func (j *fakeJobs) CourtCase(_ context.Context, _, id uuid.UUID) (jobdomain.CourtCase, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	cc, ok := j.cases[id]
	if !ok {
		return jobdomain.CourtCase{}, apperr.NotFound("court case not found")
	}
	return cc, nil
}

func (j *fakeJobs) Documents(_ context.Context, _, jobID uuid.UUID) ([]jobdomain.Document, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.docsErr != nil {
		return nil, j.docsErr
	}
	return j.documents[jobID], nil
}

func (j *fakeJobs) AttachDocument(_ context.Context, _ uuid.UUID, doc jobdomain.Document) (jobdomain.Document, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	doc.ID = uuid.New()
	j.attached = append(j.attached, doc)
	return doc, nil
}

func (j *fakeJobs) DocumentBucket(doc jobdomain.Document) string {
	if doc.Category == jobdomain.DocumentAffidavit {
		return affidavitBucket
	}
	return documentBucket
}

// failingUploads rejects every upload and serves everything else from memory.
type failingUploads struct {
	*storage.MemoryStorage
}

func (failingUploads) UploadFile(context.Context, string, string, string, string, io.Reader, int64) (string, error) {
	return "", errBoom
}

type fakeStaff struct {
	employees []domain.Employee
	err       error
}

func (f fakeStaff) Employees(context.Context, uuid.UUID) ([]domain.Employee, error) {
	return f.employees, f.err
}

type fakeCompany struct {
	company Company
	err     error
}

func (f fakeCompany) Company(context.Context, uuid.UUID) (Company, error) {
	return f.company, f.err
}

type fakeClients struct {
	email, name string
}

func (f fakeClients) Contact(context.Context, uuid.UUID, uuid.UUID) (string, string, error) {
	return f.email, f.name, nil
}

type fakeRenderer struct {
	mu       sync.Mutex
	calls    int
	err      error
	lastData domain.AffidavitData
	assets   pdf.Assets
	merged   int
}

func (r *fakeRenderer) Render(_ context.Context, _ domain.Template, data domain.AffidavitData, assets pdf.Assets) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastData, r.assets = data, assets
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7 affidavit"), nil
}

func (r *fakeRenderer) Merge(_ context.Context, parts [][]byte) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merged = len(parts)
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

type fakeQueue struct {
	err      error
	enqueued []uuid.UUID
}

func (q *fakeQueue) EnqueueAffidavitGeneration(_ context.Context, _, affidavitID uuid.UUID) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, affidavitID)
	return nil
}

type fakeMailer struct {
	sent []AffidavitMail
}

func (m *fakeMailer) SendAffidavitEmail(_ context.Context, msg AffidavitMail) error {
	m.sent = append(m.sent, msg)
	return nil
}

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
