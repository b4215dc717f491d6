package domain

import (
	"testing"

	jobdomain "serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

func tpl(id, name, jurisdiction string) Template {
	return Template{ID: id, Name: name, Jurisdiction: jurisdiction, Active: true, ServiceStatus: ApplicableBoth}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"AO 440 Federal":   "ao440federal",
		"ao-440 (federal)": "ao440federal",
		"  ":               "",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMergeCandidatesDeduplicatesByNormalizedName(t *testing.T) {
	starter := []Template{tpl("starter:ao440federal", "AO 440 Federal", "General")}
	starter[0].Body = "starter body"
	company := []Template{tpl("company-1", "ao 440 federal", "General")}
	company[0].Body = "company body"

	merged := MergeCandidates(starter, nil, company, nil, jobdomain.OutcomeServed)
	if len(merged) != 1 {
		t.Fatalf("expected exactly one merged template, got %d", len(merged))
	}
	if merged[0].ID != "company-1" || merged[0].Body != "company body" {
		t.Fatalf("expected company version to win, got %+v", merged[0])
	}
}

func TestMergeCandidatesCompanyOverridesSystem(t *testing.T) {
	system := []Template{tpl("system-1", "Texas Return of Service", "TX")}
	company := []Template{tpl("company-1", "Texas Return of Service", "TX")}

	merged := MergeCandidates(nil, system, company, nil, jobdomain.OutcomeServed)
	if len(merged) != 1 || merged[0].ID != "company-1" {
		t.Fatalf("expected company template to override system template, got %+v", merged)
	}

	merged = MergeCandidates([]Template{tpl("starter:x", "Texas Return of Service", "TX")}, system, nil, nil, jobdomain.OutcomeServed)
	if len(merged) != 1 || merged[0].ID != "system-1" {
		t.Fatalf("expected system template to override starter, got %+v", merged)
	}
}

func TestMergeCandidatesFilters(t *testing.T) {
	client := uuid.New()
	other := uuid.New()

	inactive := tpl("inactive", "Inactive", "IL")
	inactive.Active = false
	hidden := tpl("hidden", "Hidden", "IL")
	hidden.VisibleToClients = []uuid.UUID{other}
	mine := tpl("mine", "Mine", "IL")
	mine.VisibleToClients = []uuid.UUID{client}
	servedOnly := tpl("served-only", "Served Only", "IL")
	servedOnly.ServiceStatus = ApplicableServed
	public := tpl("public", "Public", "IL")

	merged := MergeCandidates(nil, nil, []Template{inactive, hidden, mine, servedOnly, public}, &client, jobdomain.OutcomeNotServed)
	got := make([]string, 0, len(merged))
	for _, m := range merged {
		got = append(got, m.ID)
	}
	if len(got) != 2 || got[0] != "mine" || got[1] != "public" {
		t.Fatalf("expected [mine public], got %v", got)
	}

	// a job without a client only gets unrestricted templates
	unowned := MergeCandidates(nil, nil, []Template{hidden, public}, nil, jobdomain.OutcomeServed)
	if len(unowned) != 1 || unowned[0].ID != "public" {
		t.Fatalf("expected only public template for job without client, got %v", unowned)
	}
}

func TestStarterTemplatesLoad(t *testing.T) {
	starters, err := StarterTemplates()
	if err != nil {
		t.Fatalf("load starters: %v", err)
	}
	if len(starters) == 0 {
		t.Fatal("expected starter templates")
	}
	for _, s := range starters {
		if s.Origin != OriginStarter || !s.Active || s.ID != StarterPrefix+NormalizeName(s.Name) {
			t.Fatalf("starter not normalized: %+v", s)
		}
		if s.Mode == ModeMarkup && s.Body == "" {
			t.Fatalf("markup starter %q has no body", s.Name)
		}
	}

	if _, err := parseStarterTemplates([]byte("templates:\n  - name: A\n  - name: a\n")); err == nil {
		t.Fatal("expected duplicate normalized names to be rejected")
	}
}
