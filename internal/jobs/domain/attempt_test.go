package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSelectPrimaryPrefersServedOverRecency(t *testing.T) {
	served := attempt(AttemptServed, "2024-01-01")
	later := attempt(AttemptAttempted, "2024-01-09")

	got := SelectPrimary([]Attempt{later, served})
	if got == nil || got.ID != served.ID {
		t.Fatalf("expected served attempt, got %+v", got)
	}
}

func TestSelectPrimaryFallsBackToLatestAttempt(t *testing.T) {
	first := attempt(AttemptNoAnswer, "2024-01-01")
	last := attempt(AttemptBadAddress, "2024-01-03")
	middle := attempt(AttemptRefused, "2024-01-02")

	got := SelectPrimary([]Attempt{first, last, middle})
	if got == nil || got.ID != last.ID {
		t.Fatalf("expected latest attempt, got %+v", got)
	}
	if SelectPrimary(nil) != nil {
		t.Fatal("expected nil for no attempts")
	}
}

func TestSelectPrimaryTieBreaksOnInsertionOrder(t *testing.T) {
	created := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	a := attempt(AttemptServed, "2024-01-05")
	a.CreatedAt = created
	b := attempt(AttemptServed, "2024-01-05")
	b.CreatedAt = created.Add(time.Minute)

	for _, input := range [][]Attempt{{a, b}, {b, a}} {
		got := SelectPrimary(input)
		if got == nil || got.ID != b.ID {
			t.Fatalf("expected later inserted attempt regardless of input order, got %+v", got)
		}
	}

	// identical timestamps fall through to the id comparison
	c := Attempt{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Status: AttemptServed, AttemptDate: day("2024-01-05"), CreatedAt: created}
	d := Attempt{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Status: AttemptServed, AttemptDate: day("2024-01-05"), CreatedAt: created}
	if got := SelectPrimary([]Attempt{d, c}); got.ID != d.ID {
		t.Fatalf("expected higher id to win full tie, got %s", got.ID)
	}
}
