package domain

import "time"

// Reconciliation is the status a job should have given its attempts.
type Reconciliation struct {
	Status        JobStatus
	ServiceDate   *time.Time
	ServiceMethod ServiceMethod
	NeedsPersist  bool
	// Reason is a short machine-readable label for logs; empty when nothing changed.
	Reason string
}

const (
	ReasonServedWithoutAttempt = "served_without_served_attempt"
	ReasonMissedServedAttempt  = "served_attempt_not_reflected"
)

// Reconcile enforces that a job is served exactly when a served attempt exists.
// Writing the result back is the caller's job.
func Reconcile(job Job, attempts []Attempt) Reconciliation {
	served, hasServed := LatestServed(attempts)

	switch {
	case job.Status == StatusServed && !hasServed:
		corrected := StatusPending
		switch {
		case len(attempts) > 0:
			corrected = StatusInProgress
		case job.HasAssignedServer():
			corrected = StatusAssigned
		}
		return Reconciliation{
			Status:       corrected,
			NeedsPersist: true,
			Reason:       ReasonServedWithoutAttempt,
		}

	case job.Status != StatusServed && hasServed:
		date := served.AttemptDate
		return Reconciliation{
			Status:        StatusServed,
			ServiceDate:   &date,
			ServiceMethod: MethodFor(&served, OutcomeServed),
			NeedsPersist:  true,
			Reason:        ReasonMissedServedAttempt,
		}
	}

	return Reconciliation{
		Status:        job.Status,
		ServiceDate:   job.ServiceDate,
		ServiceMethod: job.ServiceMethod,
	}
}

// Apply copies the reconciled fields onto the job.
func (r Reconciliation) Apply(job *Job) {
	job.Status = r.Status
	job.ServiceDate = r.ServiceDate
	job.ServiceMethod = r.ServiceMethod
}
