// Package domain provides the affidavit rules: template candidate merging,
// jurisdiction-based template selection and field assembly from a job's
// records. Inputs are plain values so callers decide how they are fetched.
package domain

import (
	"strings"
	"unicode"

	jobdomain "serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

// RenderingMode selects the PDF pipeline for a template.
type RenderingMode string

const (
	ModeStructured RenderingMode = "structured"
	ModeMarkup     RenderingMode = "markup"
)

// Applicability restricts a template to an outcome.
type Applicability string

const (
	ApplicableServed    Applicability = "served"
	ApplicableNotServed Applicability = "not_served"
	ApplicableBoth      Applicability = "both"
)

// Origin tells where a template came from.
type Origin string

const (
	OriginStarter Origin = "starter"
	OriginSystem  Origin = "system"
	OriginCompany Origin = "company"
)

// GeneralJurisdiction marks a template usable in any state.
const GeneralJurisdiction = "General"

// Template describes how an affidavit is rendered.
type Template struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty" yaml:"description"`
	Mode         RenderingMode `json:"mode" yaml:"mode"`
	Jurisdiction string        `json:"jurisdiction" yaml:"jurisdiction"`
	County       string        `json:"county,omitempty" yaml:"county"`
	CourtType    string        `json:"courtType,omitempty" yaml:"court_type"`
	// ServiceStatus is the outcome the template applies to.
	ServiceStatus    Applicability `json:"serviceStatus" yaml:"service_status"`
	Active           bool          `json:"active"`
	VisibleToClients []uuid.UUID   `json:"visibleToClients,omitempty"`
	Body             string        `json:"body,omitempty" yaml:"body"`
	Origin           Origin        `json:"origin"`
}

// NormalizeName lowercases a name and drops everything but letters and digits.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VisibleTo reports whether the template may be used for a job belonging to
// clientID. An empty list means visible to everyone. A restricted template is
// never visible for a job without a client.
func (t Template) VisibleTo(clientID *uuid.UUID) bool {
	if len(t.VisibleToClients) == 0 {
		return true
	}
	if clientID == nil {
		return false
	}
	for _, id := range t.VisibleToClients {
		if id == *clientID {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the template covers the outcome.
func (t Template) AppliesTo(outcome jobdomain.Outcome) bool {
	switch t.ServiceStatus {
	case "", ApplicableBoth:
		return true
	case ApplicableServed:
		return outcome == jobdomain.OutcomeServed
	case ApplicableNotServed:
		return outcome == jobdomain.OutcomeNotServed
	}
	return false
}

// MergeCandidates builds the de-duplicated candidate list. For names that
// normalize to the same key, company templates override system templates and
// both override starters. The result keeps only active templates visible to
// the client that apply to the outcome, in company, system, starter order.
func MergeCandidates(starter, system, company []Template, clientID *uuid.UUID, outcome jobdomain.Outcome) []Template {
	seen := make(map[string]struct{}, len(starter)+len(system)+len(company))
	merged := make([]Template, 0, len(starter)+len(system)+len(company))

	for _, source := range [][]Template{company, system, starter} {
		for _, t := range source {
			key := NormalizeName(t.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, t)
		}
	}

	out := merged[:0]
	for _, t := range merged {
		if !t.Active || !t.VisibleTo(clientID) || !t.AppliesTo(outcome) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FindTemplate returns the candidate with the given id.
func FindTemplate(candidates []Template, id string) (Template, bool) {
	for _, t := range candidates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
