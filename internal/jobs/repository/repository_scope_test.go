package repository

import (
	"strings"
	"testing"
)

func TestTenantScopedQueries(t *testing.T) {
	queries := map[string]string{
		"getJob":          getJobQuery,
		"lockJob":         lockJobQuery,
		"listJobs":        listJobsQuery,
		"countJobs":       countJobsQuery,
		"listJobIDs":      listJobIDsQuery,
		"updateStatus":    updateStatusQuery,
		"refreshCache":    refreshAttemptsCacheQuery,
		"listAttempts":    listAttemptsQuery,
		"getAttempt":      getAttemptQuery,
		"updateAttempt":   updateAttemptQuery,
		"setMethod":       setAttemptMethodQuery,
		"listDocuments":   listDocumentsQuery,
		"getDocument":     getDocumentQuery,
		"getCourtCase":    getCourtCaseQuery,
		"updateCourtCase": updateCourtCaseQuery,
	}
	for name, query := range queries {
		if !strings.Contains(strings.ToLower(query), "company_id = $") {
			t.Fatalf("expected %s query to be scoped by company_id", name)
		}
	}
}

func TestLockJobQueryTakesRowLock(t *testing.T) {
	if !strings.HasSuffix(strings.TrimSpace(strings.ToLower(lockJobQuery)), "for update") {
		t.Fatal("lock job query must end with FOR UPDATE")
	}
}

func TestListAttemptsOrderMatchesSelectorTieBreak(t *testing.T) {
	if !strings.Contains(listAttemptsQuery, "ORDER BY attempt_date, created_at, id") {
		t.Fatal("attempts must be listed in attempt date, insertion, id order")
	}
}

func TestUntaggedAttemptsOnlySelectsEmptyMethod(t *testing.T) {
	if !strings.Contains(listUntaggedAttemptsQuery, "WHERE service_method = ''") {
		t.Fatal("backfill query must only select untagged attempts")
	}
}
