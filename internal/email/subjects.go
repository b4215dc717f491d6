package email

import "fmt"

const (
	subjectJobAssignedFmt = "New job assigned: %s"
	subjectAffidavitFmt   = "%s: %s"
)

func jobAssignedSubject(data JobAssignedEmail) string {
	ref := data.JobNumber
	if ref == "" {
		ref = data.RecipientName
	}
	return fmt.Sprintf(subjectJobAssignedFmt, ref)
}

func affidavitSubject(data AffidavitEmail) string {
	title := data.Title
	if title == "" {
		title = "Affidavit"
	}
	if data.CaseNumber == "" {
		return title
	}
	return fmt.Sprintf(subjectAffidavitFmt, title, data.CaseNumber)
}
