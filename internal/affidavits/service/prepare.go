package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/drafts"
	"serveportal_backend/internal/affidavits/transport"
	jobdomain "serveportal_backend/internal/jobs/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// sources are the records an affidavit is assembled from. Every source but the
// job itself may be missing; its fields then stay empty.
type sources struct {
	job       jobdomain.Job
	attempts  []jobdomain.Attempt
	courtCase *jobdomain.CourtCase
	documents []jobdomain.Document
	employees []domain.Employee
	company   Company
	system    []domain.Template
	own       []domain.Template
	draft     *drafts.Draft

	mu       sync.Mutex
	degraded []string
}

func (src *sources) degrade(name string) {
	src.mu.Lock()
	src.degraded = append(src.degraded, name)
	src.mu.Unlock()
}

// prepared is one computation of a job's affidavit.
type prepared struct {
	data       domain.AffidavitData
	candidates []domain.Template
	job        jobdomain.Job
	attempts   []jobdomain.Attempt
	company    Company
	degraded   []string
}

// prepareInput overrides what the saved draft says.
type prepareInput struct {
	templateID string
	selections *domain.Selections
	edits      *domain.Edits
}

// Prepare recomputes the job's affidavit, stores the result as the draft and
// returns it together with the template candidates.
func (s *Service) Prepare(ctx context.Context, tenantID, jobID uuid.UUID, user domain.CurrentUser, req transport.PrepareRequest) (transport.PrepareResponse, error) {
	in := prepareInput{templateID: strings.TrimSpace(req.TemplateID)}
	if req.Selections != nil {
		sel := selectionsFromRequest(*req.Selections)
		in.selections = &sel
	}

	p, err := s.prepare(ctx, tenantID, jobID, user, in)
	if err != nil {
		return transport.PrepareResponse{}, err
	}
	s.saveDraft(ctx, tenantID, jobID, drafts.FromData(p.data))

	return transport.PrepareResponse{
		Data:               p.data,
		Candidates:         toTemplateResponses(p.candidates, false),
		SelectedTemplateID: p.data.SelectedTemplateID,
		MissingFields:      domain.MissingFields(p.data),
		Degraded:           p.degraded,
	}, nil
}

func (s *Service) prepare(ctx context.Context, tenantID, jobID uuid.UUID, user domain.CurrentUser, in prepareInput) (prepared, error) {
	src, err := s.fetchSources(ctx, tenantID, jobID)
	if err != nil {
		return prepared{}, err
	}

	starter, err := domain.StarterTemplates()
	if err != nil {
		s.log.CollaboratorDegraded("starter_templates", jobID.String(), err)
		src.degrade("starter_templates")
	}

	outcome := jobdomain.OutcomeFor(src.job.Status)
	candidates := domain.MergeCandidates(starter, src.system, src.own, src.job.ClientID, outcome)

	selections := domain.Selections{IncludeCompanyInfo: true}
	var previous *domain.Edits
	if src.draft != nil {
		selections = src.draft.Selections
		edits := src.draft.Edits()
		previous = &edits
	}
	if in.selections != nil {
		selections = *in.selections
	}
	if in.edits != nil {
		previous = in.edits
	}

	templateID, err := chooseTemplate(candidates, src, selections, in.templateID, previous)
	if err != nil {
		return prepared{}, err
	}
	selections.TemplateID = templateID

	data := domain.Assemble(domain.AssembleInput{
		Job:              src.job,
		CourtCase:        src.courtCase,
		Attempts:         src.attempts,
		Documents:        src.documents,
		Employees:        src.employees,
		Company:          src.company.Profile,
		User:             user,
		Selections:       selections,
		Previous:         previous,
		PlaceholderAgent: s.opts.PlaceholderAgent,
		Location:         location(src.company.Timezone),
	})

	sort.Strings(src.degraded)
	return prepared{
		data:       data,
		candidates: candidates,
		job:        src.job,
		attempts:   src.attempts,
		company:    src.company,
		degraded:   append([]string{}, src.degraded...),
	}, nil
}

// chooseTemplate applies, in order: an explicit request, the previously
// selected template while it is still a candidate, and venue matching. When
// nothing matches the selection stays empty.
func chooseTemplate(candidates []domain.Template, src *sources, selections domain.Selections, requested string, previous *domain.Edits) (string, error) {
	if requested != "" {
		if _, ok := domain.FindTemplate(candidates, requested); !ok {
			return "", apperr.Validation(msgTemplateUnavailable)
		}
		return requested, nil
	}

	current := selections.TemplateID
	if current == "" && previous != nil {
		current = previous.TemplateID
	}
	if current != "" {
		if _, ok := domain.FindTemplate(candidates, current); ok {
			return current, nil
		}
	}

	if id, ok := domain.SelectTemplate(candidates, src.courtCase, src.job); ok {
		return id, nil
	}
	return "", nil
}

// fetchSources loads every source concurrently. Only a failure to read the
// job aborts; other failures are logged and leave the source empty.
func (s *Service) fetchSources(ctx context.Context, tenantID, jobID uuid.UUID) (*sources, error) {
	src := &sources{}
	g, gctx := errgroup.WithContext(ctx)
	subject := jobID.String()

	degradable := func(name string, fetch func(context.Context) error) {
		g.Go(func() error {
			if err := fetch(gctx); err != nil {
				if gctx.Err() != nil {
					return nil
				}
				s.log.CollaboratorDegraded(name, subject, err)
				src.degrade(name)
			}
			return nil
		})
	}

	g.Go(func() error {
		job, attempts, err := s.jobs.Load(gctx, tenantID, jobID)
		if err != nil {
			return err
		}
		src.job, src.attempts = job, attempts
		if job.CourtCaseID == nil {
			return nil
		}
		cc, err := s.jobs.CourtCase(gctx, tenantID, *job.CourtCaseID)
		if err != nil {
			s.log.CollaboratorDegraded("court_case", subject, err)
			src.degrade("court_case")
			return nil
		}
		src.courtCase = &cc
		return nil
	})

	degradable("documents", func(ctx context.Context) (err error) {
		src.documents, err = s.jobs.Documents(ctx, tenantID, jobID)
		return err
	})
	degradable("employees", func(ctx context.Context) (err error) {
		src.employees, err = s.staff.Employees(ctx, tenantID)
		return err
	})
	degradable("company_profile", func(ctx context.Context) (err error) {
		src.company, err = s.company.Company(ctx, tenantID)
		return err
	})
	degradable("system_templates", func(ctx context.Context) (err error) {
		src.system, err = s.repo.ListSystemTemplates(ctx)
		return err
	})
	degradable("company_templates", func(ctx context.Context) (err error) {
		src.own, err = s.repo.ListCompanyTemplates(ctx, tenantID, false)
		return err
	})
	degradable("drafts", func(ctx context.Context) (err error) {
		src.draft, err = s.drafts.Get(ctx, tenantID, jobID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *Service) saveDraft(ctx context.Context, tenantID, jobID uuid.UUID, d drafts.Draft) {
	if err := s.drafts.Save(ctx, tenantID, jobID, d); err != nil {
		s.log.CollaboratorDegraded("drafts", jobID.String(), err)
	}
}

func location(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
