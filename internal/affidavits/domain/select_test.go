package domain

import (
	"testing"

	jobdomain "serveportal_backend/internal/jobs/domain"
)

func TestSelectTemplatePrefersCountyMatch(t *testing.T) {
	general := tpl("il-general", "Illinois Affidavit", "IL")
	cook := tpl("il-cook", "Cook Affidavit", "IL")
	cook.County = "Cook"
	court := &jobdomain.CourtCase{CourtState: "IL", CourtCounty: "Cook"}

	got, ok := SelectTemplate([]Template{general, cook}, court, jobdomain.Job{})
	if !ok || got != "il-cook" {
		t.Fatalf("expected Cook template, got %q", got)
	}

	got, ok = SelectTemplate([]Template{general}, court, jobdomain.Job{})
	if !ok || got != "il-general" {
		t.Fatalf("expected IL general template, got %q", got)
	}
}

func TestSelectTemplateTiers(t *testing.T) {
	courtType := tpl("ca-superior", "CA Superior", "CA")
	courtType.CourtType = "superior court"
	narrowedCounty := tpl("ca-alameda", "CA Alameda", "CA")
	narrowedCounty.County = "Alameda"
	stateGeneral := tpl("ca-general", "CA Affidavit", "CA")
	universal := tpl("universal", "Universal Affidavit", "General")
	namedGeneral := tpl("named", "Our general affidavit", "")

	cases := []struct {
		name       string
		candidates []Template
		job        jobdomain.Job
		want       string
		wantOK     bool
	}{
		{
			name:       "court type in court name",
			candidates: []Template{stateGeneral, courtType},
			job:        jobdomain.Job{CourtState: "ca", CourtName: "Superior Court of California, County of Marin"},
			want:       "ca-superior",
			wantOK:     true,
		},
		{
			name:       "general state template beats narrowed template",
			candidates: []Template{narrowedCounty, stateGeneral},
			job:        jobdomain.Job{CourtState: "CA", CourtCounty: "Marin"},
			want:       "ca-general",
			wantOK:     true,
		},
		{
			name:       "any state match",
			candidates: []Template{universal, narrowedCounty},
			job:        jobdomain.Job{CourtState: "CA", CourtCounty: "Marin"},
			want:       "ca-alameda",
			wantOK:     true,
		},
		{
			name:       "universal fallback",
			candidates: []Template{tpl("tx", "TX", "TX"), universal},
			job:        jobdomain.Job{CourtState: "CA"},
			want:       "universal",
			wantOK:     true,
		},
		{
			name:       "name contains general",
			candidates: []Template{namedGeneral},
			job:        jobdomain.Job{CourtState: "NV"},
			want:       "named",
			wantOK:     true,
		},
		{
			name:       "no state means no selection",
			candidates: []Template{universal, stateGeneral},
			job:        jobdomain.Job{},
			wantOK:     false,
		},
		{
			name:       "no match",
			candidates: []Template{tpl("tx", "TX", "TX")},
			job:        jobdomain.Job{CourtState: "CA"},
			wantOK:     false,
		},
	}

	for _, tc := range cases {
		got, ok := SelectTemplate(tc.candidates, nil, tc.job)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("%s: expected (%q, %v), got (%q, %v)", tc.name, tc.want, tc.wantOK, got, ok)
		}
	}
}

func TestResolveVenuePrefersJobFields(t *testing.T) {
	job := jobdomain.Job{CourtName: "Job Court", Plaintiff: ""}
	cc := &jobdomain.CourtCase{CourtName: "Case Court", Plaintiff: "Acme Corp", CourtState: "IL"}

	v := ResolveVenue(job, cc)
	if v.CourtName != "Job Court" || v.Plaintiff != "Acme Corp" || v.State != "IL" {
		t.Fatalf("unexpected venue %+v", v)
	}
}
