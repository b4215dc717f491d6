// Package service implements the affidavit use cases: preparing the
// assembled record from a job's sources, keeping draft edits, generating the
// PDF and delivering it.
package service

import (
	"context"
	"time"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/drafts"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/events"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/pdf"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	msgAffidavitIncomplete = "affidavit is missing required fields"
	msgTemplateUnavailable = "selected template is not available for this job"
	msgStorageUnavailable  = "object storage unavailable"
)

// Repository is the persistence the service needs.
type Repository interface {
	ListSystemTemplates(ctx context.Context) ([]domain.Template, error)
	ListCompanyTemplates(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]domain.Template, error)
	GetTemplate(ctx context.Context, tenantID, id uuid.UUID) (domain.Template, error)
	CreateTemplate(ctx context.Context, tenantID uuid.UUID, t domain.Template) (domain.Template, error)
	UpdateTemplate(ctx context.Context, tenantID, id uuid.UUID, t domain.Template) (domain.Template, error)
	DeactivateTemplate(ctx context.Context, tenantID, id uuid.UUID) error

	CreateAffidavit(ctx context.Context, a repository.Affidavit) (repository.Affidavit, error)
	GetAffidavit(ctx context.Context, tenantID, id uuid.UUID) (repository.Affidavit, error)
	GetByVerificationCode(ctx context.Context, code string) (repository.Affidavit, error)
	ListAffidavits(ctx context.Context, tenantID, jobID uuid.UUID) ([]repository.Affidavit, error)
	MarkGenerated(ctx context.Context, tenantID, id uuid.UUID, objectKey string, size int64) (repository.Affidavit, error)
	MarkFailed(ctx context.Context, tenantID, id uuid.UUID, message string) error
	MarkSent(ctx context.Context, tenantID, id uuid.UUID, to string, at time.Time) error
}

// JobSource reads a job and its records. Load returns the reconciled job.
type JobSource interface {
	Load(ctx context.Context, tenantID, id uuid.UUID) (jobdomain.Job, []jobdomain.Attempt, error)
	CourtCase(ctx context.Context, tenantID, id uuid.UUID) (jobdomain.CourtCase, error)
	Documents(ctx context.Context, tenantID, jobID uuid.UUID) ([]jobdomain.Document, error)
	AttachDocument(ctx context.Context, tenantID uuid.UUID, doc jobdomain.Document) (jobdomain.Document, error)
	DocumentBucket(doc jobdomain.Document) string
}

// StaffDirectory lists the servers of a company, including inactive ones
// because old attempts may reference them.
type StaffDirectory interface {
	Employees(ctx context.Context, tenantID uuid.UUID) ([]domain.Employee, error)
}

// Company is the serving company as affidavits see it.
type Company struct {
	Profile  domain.CompanyProfile
	LogoKey  string
	Timezone string
}

// CompanyDirectory reads the company profile.
type CompanyDirectory interface {
	Company(ctx context.Context, tenantID uuid.UUID) (Company, error)
}

// ClientDirectory resolves the contact of a client company.
type ClientDirectory interface {
	Contact(ctx context.Context, tenantID, clientID uuid.UUID) (email, name string, err error)
}

// Renderer produces PDFs.
type Renderer interface {
	Render(ctx context.Context, tmpl domain.Template, data domain.AffidavitData, assets pdf.Assets) ([]byte, error)
	Merge(ctx context.Context, parts [][]byte) ([]byte, error)
}

// GenerationQueue hands rendering to a background worker.
type GenerationQueue interface {
	EnqueueAffidavitGeneration(ctx context.Context, tenantID, affidavitID uuid.UUID) error
}

// Mailer delivers affidavits.
type Mailer interface {
	SendAffidavitEmail(ctx context.Context, msg AffidavitMail) error
}

// AffidavitMail is one affidavit delivery.
type AffidavitMail struct {
	ToEmail       string
	ToName        string
	CompanyName   string
	CaseNumber    string
	RecipientName string
	Title         string
	Message       string
	VerifyURL     string
	FileName      string
	PDF           []byte
}

// Options carries deployment settings.
type Options struct {
	// BaseURL is the public app URL printed in verification QR codes.
	BaseURL          string
	PlaceholderAgent string
	AffidavitBucket  string
	PhotoBucket      string
	LogoBucket       string
}

// Dependencies bundles the collaborators of the service.
type Dependencies struct {
	Repo     Repository
	Drafts   drafts.Store
	Jobs     JobSource
	Staff    StaffDirectory
	Company  CompanyDirectory
	Clients  ClientDirectory
	Renderer Renderer
	Storage  storage.StorageService
	EventBus events.Bus
	Log      *logger.Logger
}

// Service provides business logic for affidavits.
type Service struct {
	repo     Repository
	drafts   drafts.Store
	jobs     JobSource
	staff    StaffDirectory
	company  CompanyDirectory
	clients  ClientDirectory
	renderer Renderer
	storage  storage.StorageService
	eventBus events.Bus
	log      *logger.Logger
	opts     Options

	queue  GenerationQueue
	mailer Mailer
	now    func() time.Time
}

// New creates a new affidavits service.
func New(deps Dependencies, opts Options) *Service {
	return &Service{
		repo:     deps.Repo,
		drafts:   deps.Drafts,
		jobs:     deps.Jobs,
		staff:    deps.Staff,
		company:  deps.Company,
		clients:  deps.Clients,
		renderer: deps.Renderer,
		storage:  deps.Storage,
		eventBus: deps.EventBus,
		log:      deps.Log,
		opts:     opts,
		now:      time.Now,
	}
}

// SetGenerationQueue moves rendering to the background. Without a queue
// generation runs inside the request.
func (s *Service) SetGenerationQueue(queue GenerationQueue) {
	s.queue = queue
}

// SetMailer enables email delivery.
func (s *Service) SetMailer(mailer Mailer) {
	s.mailer = mailer
}
