package repository

import (
	"strings"
	"testing"
)

func TestEmployeeQueriesAreTenantScoped(t *testing.T) {
	for name, query := range map[string]string{
		"get":        getEmployeeQuery,
		"list":       listEmployeesQuery,
		"update":     updateEmployeeQuery,
		"deactivate": deactivateEmployeeQuery,
	} {
		if !strings.Contains(strings.ToLower(query), "company_id = $") {
			t.Fatalf("expected %s query to be scoped by company_id", name)
		}
	}
}
