package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func attempt(status AttemptStatus, date string) Attempt {
	return Attempt{ID: uuid.New(), Status: status, AttemptDate: day(date)}
}

func TestReconcileFalseServed(t *testing.T) {
	serviceDate := day("2024-01-02")
	job := Job{Status: StatusServed, ServiceDate: &serviceDate, ServiceMethod: MethodPersonal}

	got := Reconcile(job, nil)
	if got.Status != StatusPending || !got.NeedsPersist {
		t.Fatalf("expected pending + persist, got %+v", got)
	}
	if got.ServiceDate != nil || got.ServiceMethod != "" {
		t.Fatalf("expected service date and method to be cleared, got %+v", got)
	}

	serverID := uuid.New()
	job.AssignedServerID = &serverID
	if got := Reconcile(job, nil); got.Status != StatusAssigned || !got.NeedsPersist {
		t.Fatalf("expected assigned + persist, got %+v", got)
	}

	if got := Reconcile(job, []Attempt{attempt(AttemptNoAnswer, "2024-01-01")}); got.Status != StatusInProgress {
		t.Fatalf("expected in_progress when attempts exist, got %s", got.Status)
	}
}

func TestReconcileMissedServed(t *testing.T) {
	job := Job{Status: StatusAssigned}
	attempts := []Attempt{
		attempt(AttemptServed, "2024-01-05"),
		attempt(AttemptAttempted, "2024-01-01"),
	}

	got := Reconcile(job, attempts)
	if got.Status != StatusServed || !got.NeedsPersist {
		t.Fatalf("expected served + persist, got %+v", got)
	}
	if got.ServiceDate == nil || !got.ServiceDate.Equal(day("2024-01-05")) {
		t.Fatalf("expected service date 2024-01-05, got %v", got.ServiceDate)
	}
	if got.Reason != ReasonMissedServedAttempt {
		t.Fatalf("unexpected reason %q", got.Reason)
	}
}

func TestReconcileConsistentStateIsUnchanged(t *testing.T) {
	serviceDate := day("2024-02-01")
	cases := []struct {
		name     string
		job      Job
		attempts []Attempt
	}{
		{"pending without attempts", Job{Status: StatusPending}, nil},
		{"in progress with failed attempt", Job{Status: StatusInProgress}, []Attempt{attempt(AttemptNoAnswer, "2024-01-01")}},
		{"served with served attempt", Job{Status: StatusServed, ServiceDate: &serviceDate, ServiceMethod: MethodResidence}, []Attempt{attempt(AttemptServed, "2024-02-01")}},
		{"cancelled without attempts", Job{Status: StatusCancelled}, nil},
	}

	for _, tc := range cases {
		got := Reconcile(tc.job, tc.attempts)
		if got.NeedsPersist {
			t.Fatalf("%s: expected no persist, got %+v", tc.name, got)
		}
		if got.Status != tc.job.Status || got.ServiceDate != tc.job.ServiceDate || got.ServiceMethod != tc.job.ServiceMethod {
			t.Fatalf("%s: expected unchanged fields, got %+v", tc.name, got)
		}
	}
}

func TestReconcileUsesTaggedMethodOfLatestServedAttempt(t *testing.T) {
	older := attempt(AttemptServed, "2024-03-01")
	older.ServiceMethod = MethodPersonal
	newer := attempt(AttemptServed, "2024-03-04")
	newer.ServiceTypeDetail = "Substitute service on co-resident"

	got := Reconcile(Job{Status: StatusInProgress}, []Attempt{newer, older})
	if got.ServiceMethod != MethodResidence {
		t.Fatalf("expected residence from newest served attempt, got %s", got.ServiceMethod)
	}

	var job Job
	got.Apply(&job)
	if job.Status != StatusServed || job.ServiceDate == nil {
		t.Fatalf("expected Apply to copy reconciled fields, got %+v", job)
	}
}
