package domain

import (
	"strings"

	jobdomain "serveportal_backend/internal/jobs/domain"
)

// Venue is the resolved court of a job.
type Venue struct {
	CaseNumber string
	CourtName  string
	County     string
	State      string
	Plaintiff  string
	Defendant  string
}

// ResolveVenue applies the job-first precedence to each case field.
func ResolveVenue(job jobdomain.Job, courtCase *jobdomain.CourtCase) Venue {
	var cc jobdomain.CourtCase
	if courtCase != nil {
		cc = *courtCase
	}
	return Venue{
		CaseNumber: firstNonEmpty(job.CaseNumber, cc.CaseNumber),
		CourtName:  firstNonEmpty(job.CourtName, cc.CourtName),
		County:     firstNonEmpty(job.CourtCounty, cc.CourtCounty),
		State:      firstNonEmpty(job.CourtState, cc.CourtState),
		Plaintiff:  firstNonEmpty(job.Plaintiff, cc.Plaintiff),
		Defendant:  firstNonEmpty(job.Defendant, cc.Defendant),
	}
}

type templateMatcher func(t Template, v Venue) bool

// selectionTiers are tried in order; the first template matching a tier wins.
var selectionTiers = []templateMatcher{
	// state and county
	func(t Template, v Venue) bool {
		return sameState(t, v) && t.County != "" && strings.EqualFold(strings.TrimSpace(t.County), v.County)
	},
	// state and court type found in the court name
	func(t Template, v Venue) bool {
		courtType := strings.ToLower(strings.TrimSpace(t.CourtType))
		return sameState(t, v) && courtType != "" && strings.Contains(strings.ToLower(v.CourtName), courtType)
	},
	// general state template
	func(t Template, v Venue) bool {
		return sameState(t, v) && strings.TrimSpace(t.County) == "" && strings.TrimSpace(t.CourtType) == ""
	},
	// any state match
	sameState,
	// universal fallback
	func(t Template, _ Venue) bool {
		if strings.EqualFold(strings.TrimSpace(t.Jurisdiction), GeneralJurisdiction) {
			return true
		}
		name := strings.ToLower(t.Name)
		return strings.Contains(name, "universal") || strings.Contains(name, "general")
	},
}

func sameState(t Template, v Venue) bool {
	return strings.EqualFold(strings.TrimSpace(t.Jurisdiction), v.State)
}

// SelectTemplate picks the best candidate for the job's court. It returns
// false when the court state is unknown or nothing matches, in which case the
// caller keeps its current selection.
func SelectTemplate(candidates []Template, courtCase *jobdomain.CourtCase, job jobdomain.Job) (string, bool) {
	return SelectForVenue(candidates, ResolveVenue(job, courtCase))
}

// SelectForVenue is SelectTemplate over an already resolved venue.
func SelectForVenue(candidates []Template, venue Venue) (string, bool) {
	venue.State = strings.TrimSpace(venue.State)
	venue.County = strings.TrimSpace(venue.County)
	if venue.State == "" {
		return "", false
	}
	for _, match := range selectionTiers {
		for _, t := range candidates {
			if match(t, venue) {
				return t.ID, true
			}
		}
	}
	return "", false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
