package domain

import (
	"fmt"
	"strings"
	"time"

	jobdomain "serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

const (
	TitleServed    = "AFFIDAVIT OF SERVICE"
	TitleNotServed = "AFFIDAVIT OF NON-SERVICE / DUE DILIGENCE"

	// DefaultPlaceholderAgent is the name mobile clients write when the
	// server was not identified. It never counts as a resolved server name.
	DefaultPlaceholderAgent = "ServeMax Agent"
)

// Employee is the subset of a server record the affidavit needs.
type Employee struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	LicenseNumber string
	Address       string
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

// CompanyProfile is the serving company's letterhead data.
type CompanyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	License string `json:"license"`
	Website string `json:"website"`
}

// CurrentUser is the person preparing the affidavit.
type CurrentUser struct {
	Name  string
	Email string
}

// Selections are the options chosen in the affidavit form.
type Selections struct {
	IncludeNotary      bool     `json:"includeNotary"`
	IncludeCompanyInfo bool     `json:"includeCompanyInfo"`
	TemplateID         string   `json:"templateId,omitempty"`
	PhotoKeys          []string `json:"photoKeys,omitempty"`
	MergeServedDocs    bool     `json:"mergeServedDocuments"`
}

// SignaturePlacement positions a signature image on a rendered page.
type SignaturePlacement struct {
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ImageKey string  `json:"imageKey"`
}

// Edits are user changes made on top of an assembled affidavit.
type Edits struct {
	TemplateID      string              `json:"templateId,omitempty"`
	PlacedSignature *SignaturePlacement `json:"placedSignature,omitempty"`
	EditedMarkup    string              `json:"editedMarkup,omitempty"`
}

// AttemptLine summarizes one attempt for due diligence narratives.
type AttemptLine struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

// AffidavitData is the flat record handed to rendering. Missing inputs
// degrade to empty strings; assembly never fails.
type AffidavitData struct {
	JobID         uuid.UUID         `json:"jobId"`
	Title         string            `json:"title"`
	ServiceStatus jobdomain.Outcome `json:"serviceStatus"`

	CaseNumber  string `json:"caseNumber"`
	CourtName   string `json:"courtName"`
	CourtCounty string `json:"courtCounty"`
	CourtState  string `json:"courtState"`
	Plaintiff   string `json:"plaintiff"`
	Defendant   string `json:"defendant"`
	CaseCaption string `json:"caseCaption"`

	RecipientName string `json:"recipientName"`
	RecipientType string `json:"recipientType"`

	ServerID      *uuid.UUID `json:"serverId,omitempty"`
	ServerName    string     `json:"serverName"`
	ServerLicense string     `json:"serverLicense"`
	ServerAddress string     `json:"serverAddress"`

	AttemptID         *uuid.UUID              `json:"attemptId,omitempty"`
	ServiceAddress    string                  `json:"serviceAddress"`
	ServiceDate       string                  `json:"serviceDate"`
	ServiceTime       string                  `json:"serviceTime"`
	ServiceMethod     jobdomain.ServiceMethod `json:"serviceMethod"`
	ServiceTypeDetail string                  `json:"serviceTypeDetail"`
	PersonServed      jobdomain.PersonServed  `json:"personServed"`
	GPS               *jobdomain.GPS          `json:"gps,omitempty"`
	AttemptHistory    []AttemptLine           `json:"attemptHistory"`

	DocumentsServed []string `json:"documentsServed"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyEmail   string `json:"companyEmail"`

	IncludeNotary      bool     `json:"includeNotary"`
	IncludeCompanyInfo bool     `json:"includeCompanyInfo"`
	PhotoKeys          []string `json:"photoKeys"`
	MergeServedDocs    bool     `json:"mergeServedDocuments"`

	SelectedTemplateID string              `json:"selectedTemplateId"`
	PlacedSignature    *SignaturePlacement `json:"placedSignature,omitempty"`
	EditedMarkup       string              `json:"editedMarkup,omitempty"`
}

// AssembleInput carries every record assembly reads. Company profile and
// current user are passed explicitly.
type AssembleInput struct {
	Job        jobdomain.Job
	CourtCase  *jobdomain.CourtCase
	Attempts   []jobdomain.Attempt
	Documents  []jobdomain.Document
	Employees  []Employee
	Company    CompanyProfile
	User       CurrentUser
	Selections Selections
	// Previous holds edits from the prior computation, if any.
	Previous *Edits
	// PlaceholderAgent overrides DefaultPlaceholderAgent when set.
	PlaceholderAgent string
	// Location formats attempt times; nil means UTC.
	Location *time.Location
}

// Assemble merges job, court case, attempts, staff and company records into
// one affidavit record using first-non-empty precedence per field.
func Assemble(in AssembleInput) AffidavitData {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	outcome := jobdomain.OutcomeFor(in.Job.Status)
	venue := ResolveVenue(in.Job, in.CourtCase)
	primary := jobdomain.SelectPrimary(in.Attempts)

	data := AffidavitData{
		JobID:              in.Job.ID,
		Title:              titleFor(outcome),
		ServiceStatus:      outcome,
		CaseNumber:         venue.CaseNumber,
		CourtName:          venue.CourtName,
		CourtCounty:        venue.County,
		CourtState:         venue.State,
		Plaintiff:          venue.Plaintiff,
		Defendant:          venue.Defendant,
		CaseCaption:        fmt.Sprintf("%s v. %s", venue.Plaintiff, venue.Defendant),
		RecipientName:      strings.TrimSpace(in.Job.Recipient.Name),
		RecipientType:      strings.TrimSpace(in.Job.Recipient.Type),
		ServiceMethod:      jobdomain.MethodFor(primary, outcome),
		AttemptHistory:     attemptHistory(in.Attempts, loc),
		DocumentsServed:    jobdomain.ServedTitles(in.Documents),
		IncludeNotary:      in.Selections.IncludeNotary,
		IncludeCompanyInfo: in.Selections.IncludeCompanyInfo,
		PhotoKeys:          append([]string{}, in.Selections.PhotoKeys...),
		MergeServedDocs:    in.Selections.MergeServedDocs,
		SelectedTemplateID: in.Selections.TemplateID,
	}

	if primary != nil {
		id := primary.ID
		data.AttemptID = &id
		data.ServiceAddress = strings.TrimSpace(primary.Address)
		if !primary.AttemptDate.IsZero() {
			local := primary.AttemptDate.In(loc)
			data.ServiceDate = local.Format("2006-01-02")
			data.ServiceTime = local.Format("3:04 PM")
		}
		data.ServiceTypeDetail = strings.TrimSpace(primary.ServiceTypeDetail)
		data.PersonServed = primary.PersonServed
		data.GPS = primary.GPS
	}

	employee := findEmployee(in.Employees, primary)
	data.ServerName = resolveServerName(primary, employee, in.User, placeholderName(in.PlaceholderAgent))
	if employee != nil {
		id := employee.ID
		data.ServerID = &id
		data.ServerLicense = firstNonEmpty(employee.LicenseNumber, in.Company.License)
		data.ServerAddress = firstNonEmpty(employee.Address, in.Company.Address)
	} else {
		data.ServerLicense = firstNonEmpty(in.Company.License)
		data.ServerAddress = firstNonEmpty(in.Company.Address)
	}

	if in.Selections.IncludeCompanyInfo {
		data.CompanyName = strings.TrimSpace(in.Company.Name)
		data.CompanyAddress = strings.TrimSpace(in.Company.Address)
		data.CompanyPhone = strings.TrimSpace(in.Company.Phone)
		data.CompanyEmail = strings.TrimSpace(in.Company.Email)
	}

	data.applyEdits(in.Previous)
	return data
}

// applyEdits keeps the signature placement and edited markup only while the
// template stays the same; a different template may not fit the old edits.
func (d *AffidavitData) applyEdits(prev *Edits) {
	if prev == nil || prev.TemplateID != d.SelectedTemplateID {
		d.PlacedSignature = nil
		d.EditedMarkup = ""
		return
	}
	d.PlacedSignature = prev.PlacedSignature
	d.EditedMarkup = prev.EditedMarkup
}

// Edits extracts the user-editable part of an assembled record.
func (d AffidavitData) Edits() Edits {
	return Edits{
		TemplateID:      d.SelectedTemplateID,
		PlacedSignature: d.PlacedSignature,
		EditedMarkup:    d.EditedMarkup,
	}
}

func titleFor(outcome jobdomain.Outcome) string {
	if outcome == jobdomain.OutcomeServed {
		return TitleServed
	}
	return TitleNotServed
}

func placeholderName(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return strings.TrimSpace(configured)
	}
	return DefaultPlaceholderAgent
}

func findEmployee(employees []Employee, attempt *jobdomain.Attempt) *Employee {
	if attempt == nil || attempt.ServerID == nil {
		return nil
	}
	for i := range employees {
		if employees[i].ID == *attempt.ServerID {
			return &employees[i]
		}
	}
	return nil
}

func resolveServerName(attempt *jobdomain.Attempt, employee *Employee, user CurrentUser, placeholder string) string {
	var name string
	if employee != nil {
		name = employee.FullName()
	}
	if name == "" && attempt != nil {
		name = strings.TrimSpace(attempt.ServerName)
	}
	if name == "" || strings.EqualFold(name, placeholder) {
		name = firstNonEmpty(user.Name, user.Email)
	}
	return name
}

func attemptHistory(attempts []jobdomain.Attempt, loc *time.Location) []AttemptLine {
	ordered := jobdomain.Chronological(attempts)
	lines := make([]AttemptLine, 0, len(ordered))
	for _, a := range ordered {
		line := AttemptLine{
			Status:  string(a.Status),
			Address: strings.TrimSpace(a.Address),
			Notes:   strings.TrimSpace(a.Notes),
		}
		if !a.AttemptDate.IsZero() {
			local := a.AttemptDate.In(loc)
			line.Date = local.Format("2006-01-02")
			line.Time = local.Format("3:04 PM")
		}
		lines = append(lines, line)
	}
	return lines
}
