// Package events defines the job and affidavit domain events. The bus itself
// lives in platform/events.
package events

import (
	"time"

	"serveportal_backend/platform/events"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates the process-local bus the api and worker share
// between their modules.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Job Domain Events
// =============================================================================

// JobAssigned is published when a server is assigned to (or removed from) a job.
type JobAssigned struct {
	BaseEvent
	TenantID   uuid.UUID  `json:"tenantId"`
	JobID      uuid.UUID  `json:"jobId"`
	ServerID   *uuid.UUID `json:"serverId,omitempty"`
	AssignedBy uuid.UUID  `json:"assignedBy"`
}

func (e JobAssigned) EventName() string { return "jobs.job.assigned" }

// JobStatusReconciled is published when the read path corrected a job whose
// stored status disagreed with its attempt history.
type JobStatusReconciled struct {
	BaseEvent
	TenantID   uuid.UUID `json:"tenantId"`
	JobID      uuid.UUID `json:"jobId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
}

func (e JobStatusReconciled) EventName() string { return "jobs.status.reconciled" }

// AttemptLogged is published after an attempt was written or edited.
type AttemptLogged struct {
	BaseEvent
	TenantID  uuid.UUID `json:"tenantId"`
	JobID     uuid.UUID `json:"jobId"`
	AttemptID uuid.UUID `json:"attemptId"`
	Status    string    `json:"status"`
	Edited    bool      `json:"edited"`
}

func (e AttemptLogged) EventName() string { return "jobs.attempt.logged" }

// =============================================================================
// Affidavit Domain Events
// =============================================================================

// AffidavitGenerated is published once a rendered affidavit is stored.
type AffidavitGenerated struct {
	BaseEvent
	TenantID    uuid.UUID `json:"tenantId"`
	JobID       uuid.UUID `json:"jobId"`
	AffidavitID uuid.UUID `json:"affidavitId"`
	ObjectKey   string    `json:"objectKey"`
	Served      bool      `json:"served"`
	RequestedBy uuid.UUID `json:"requestedBy"`
}

func (e AffidavitGenerated) EventName() string { return "affidavits.affidavit.generated" }

// AffidavitSent is published after an affidavit was emailed to a client contact.
type AffidavitSent struct {
	BaseEvent
	TenantID    uuid.UUID `json:"tenantId"`
	AffidavitID uuid.UUID `json:"affidavitId"`
	Recipient   string    `json:"recipient"`
	SentAt      time.Time `json:"sentAt"`
}

func (e AffidavitSent) EventName() string { return "affidavits.affidavit.sent" }
