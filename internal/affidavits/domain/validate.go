package domain

import (
	"strings"

	jobdomain "serveportal_backend/internal/jobs/domain"
)

// MissingFields lists the fields an affidavit needs before it can be rendered,
// keyed by JSON field name. Assembly itself never checks these.
func MissingFields(d AffidavitData) map[string]string {
	missing := make(map[string]string)
	require := func(field, value, reason string) {
		if strings.TrimSpace(value) == "" {
			missing[field] = reason
		}
	}

	require("caseNumber", d.CaseNumber, "case number is required")
	require("serverName", d.ServerName, "server name is required")
	if strings.TrimSpace(d.SelectedTemplateID) == "" {
		missing["selectedTemplateId"] = "a template must be selected"
	}

	if d.ServiceStatus == jobdomain.OutcomeNotServed {
		if len(d.AttemptHistory) == 0 {
			missing["attemptHistory"] = "at least one attempt is required for a due diligence affidavit"
		}
		return missing
	}

	require("serviceDate", d.ServiceDate, "service date is required")
	require("serviceAddress", d.ServiceAddress, "service address is required")

	switch d.ServiceMethod {
	case jobdomain.MethodPersonal:
		require("personServed.name", d.PersonServed.Name, "name of the person served is required for personal service")
	case jobdomain.MethodResidence:
		require("personServed.name", d.PersonServed.Name, "name of the person served is required for substitute service")
		require("personServed.relationship", d.PersonServed.Relationship, "relationship to the recipient is required for substitute service")
		require("personServed.age", d.PersonServed.Age, "approximate age is required for substitute service")
	case jobdomain.MethodOrganization:
		require("personServed.name", d.PersonServed.Name, "name of the person served is required for service on an organization")
		require("personServed.relationship", d.PersonServed.Relationship, "title or authority of the person served is required for service on an organization")
	case jobdomain.MethodOther:
		require("serviceTypeDetail", d.ServiceTypeDetail, "describe how service was made")
	}
	return missing
}
