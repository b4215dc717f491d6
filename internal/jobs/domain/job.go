// Package domain provides core business rules for the jobs bounded context:
// job and attempt records, status reconciliation, attempt selection and
// service method classification. Everything here is pure and I/O free.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a process-serving job.
type JobStatus string

const (
	StatusPending       JobStatus = "pending"
	StatusAssigned      JobStatus = "assigned"
	StatusInProgress    JobStatus = "in_progress"
	StatusServed        JobStatus = "served"
	StatusUnableToServe JobStatus = "unable_to_serve"
	StatusCancelled     JobStatus = "cancelled"
)

var knownJobStatuses = map[JobStatus]struct{}{
	StatusPending:       {},
	StatusAssigned:      {},
	StatusInProgress:    {},
	StatusServed:        {},
	StatusUnableToServe: {},
	StatusCancelled:     {},
}

// JobStatusValues lists every status in lifecycle order.
func JobStatusValues() []string {
	return []string{
		string(StatusPending), string(StatusAssigned), string(StatusInProgress),
		string(StatusServed), string(StatusUnableToServe), string(StatusCancelled),
	}
}

// IsKnownJobStatus reports whether status is one of the lifecycle statuses.
func IsKnownJobStatus(status JobStatus) bool {
	_, ok := knownJobStatuses[status]
	return ok
}

// IsTerminal reports whether no further attempts are expected.
func (s JobStatus) IsTerminal() bool {
	return s == StatusServed || s == StatusUnableToServe || s == StatusCancelled
}

// IsClosed reports whether the job was closed without service. Closed jobs
// are not reopened by the background sweep.
func (s JobStatus) IsClosed() bool {
	return s == StatusUnableToServe || s == StatusCancelled
}

// Outcome is the two-valued service result that affidavits and templates key on.
type Outcome string

const (
	OutcomeServed    Outcome = "served"
	OutcomeNotServed Outcome = "not_served"
)

// OutcomeFor maps a job status onto the affidavit outcome.
func OutcomeFor(status JobStatus) Outcome {
	if status == StatusServed {
		return OutcomeServed
	}
	return OutcomeNotServed
}

// Recipient is the party to be served.
type Recipient struct {
	Name string `json:"name"`
	// Type is individual, business or government.
	Type string `json:"type"`
}

// Address is a service address. Exactly one address on a job is primary.
type Address struct {
	Label   string `json:"label,omitempty"`
	Street  string `json:"street"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZIP     string `json:"zip"`
	Primary bool   `json:"primary"`
}

// OneLine renders the address the way it is printed on an affidavit.
func (a Address) OneLine() string {
	parts := make([]string, 0, 4)
	street := strings.TrimSpace(strings.Join([]string{strings.TrimSpace(a.Street), strings.TrimSpace(a.Street2)}, " "))
	if street != "" {
		parts = append(parts, street)
	}
	if city := strings.TrimSpace(a.City); city != "" {
		parts = append(parts, city)
	}
	stateZIP := strings.TrimSpace(strings.TrimSpace(a.State) + " " + strings.TrimSpace(a.ZIP))
	if stateZIP != "" {
		parts = append(parts, stateZIP)
	}
	return strings.Join(parts, ", ")
}

var (
	ErrNoAddress        = errors.New("at least one address is required")
	ErrNoPrimaryAddress = errors.New("exactly one address must be primary")
)

// ValidateAddresses enforces the single-primary rule.
func ValidateAddresses(addresses []Address) error {
	if len(addresses) == 0 {
		return ErrNoAddress
	}
	primaries := 0
	for _, a := range addresses {
		if a.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		return ErrNoPrimaryAddress
	}
	return nil
}

// Job is one process-serving engagement.
type Job struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	ClientID         *uuid.UUID
	JobNumber        string
	Status           JobStatus
	Priority         string
	Recipient        Recipient
	Addresses        []Address
	AssignedServerID *uuid.UUID
	CourtCaseID      *uuid.UUID

	// Free-text case fields used when no court case is linked.
	CaseNumber  string
	CourtName   string
	CourtCounty string
	CourtState  string
	Plaintiff   string
	Defendant   string

	ServiceDate   *time.Time
	ServiceMethod ServiceMethod

	// AttemptsCache is a read-optimised copy of the attempts table. It is
	// rewritten in the same transaction as every attempt write.
	AttemptsCache []Attempt

	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryAddress returns the primary address, or the first one when none is flagged.
func (j Job) PrimaryAddress() (Address, bool) {
	for _, a := range j.Addresses {
		if a.Primary {
			return a, true
		}
	}
	if len(j.Addresses) > 0 {
		return j.Addresses[0], true
	}
	return Address{}, false
}

// HasAssignedServer reports whether a server is set on the job.
func (j Job) HasAssignedServer() bool {
	return j.AssignedServerID != nil && *j.AssignedServerID != uuid.Nil
}

// CourtCase holds the caption and venue of a court action.
type CourtCase struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	CaseNumber  string
	CourtName   string
	CourtCounty string
	CourtState  string
	Plaintiff   string
	Defendant   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentCategory groups job documents.
type DocumentCategory string

const (
	DocumentToBeServed DocumentCategory = "to_be_served"
	DocumentAffidavit  DocumentCategory = "affidavit"
	DocumentOther      DocumentCategory = "other"
)

// Document is a file attached to a job.
type Document struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Title       string
	Category    DocumentCategory
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	PageCount   int
	CreatedAt   time.Time
}

// ServedTitles returns the display titles of documents to be served, in input order.
func ServedTitles(documents []Document) []string {
	titles := make([]string, 0, len(documents))
	for _, d := range documents {
		if d.Category != DocumentToBeServed {
			continue
		}
		if title := strings.TrimSpace(d.Title); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
