package transport

import (
	"time"

	"serveportal_backend/internal/affidavits/domain"

	"github.com/google/uuid"
)

// SelectionsRequest carries the options chosen in the affidavit form.
type SelectionsRequest struct {
	IncludeNotary      bool     `json:"includeNotary"`
	IncludeCompanyInfo bool     `json:"includeCompanyInfo"`
	TemplateID         string   `json:"templateId" validate:"max=100"`
	PhotoKeys          []string `json:"photoKeys" validate:"max=12,dive,required,max=500"`
	MergeServedDocs    bool     `json:"mergeServedDocuments"`
}

// PrepareRequest recomputes an affidavit. Selections replace the saved ones when given.
type PrepareRequest struct {
	TemplateID string             `json:"templateId" validate:"max=100"`
	Selections *SelectionsRequest `json:"selections" validate:"omitempty"`
}

// SignaturePlacementRequest positions a signature image, in points from the page's top left corner.
type SignaturePlacementRequest struct {
	Page     int     `json:"page" validate:"required,min=1,max=50"`
	X        float64 `json:"x" validate:"gte=0,lte=612"`
	Y        float64 `json:"y" validate:"gte=0,lte=792"`
	Width    float64 `json:"width" validate:"gt=0,lte=612"`
	Height   float64 `json:"height" validate:"gt=0,lte=792"`
	ImageKey string  `json:"imageKey" validate:"required,max=500"`
}

// SaveDraftRequest stores the user's edits for the job's affidavit.
type SaveDraftRequest struct {
	TemplateID      string                     `json:"templateId" validate:"max=100"`
	PlacedSignature *SignaturePlacementRequest `json:"placedSignature" validate:"omitempty"`
	EditedMarkup    string                     `json:"editedMarkup" validate:"max=200000"`
	Selections      SelectionsRequest          `json:"selections"`
}

// SignatureUploadRequest asks for a presigned upload target for a signature image.
type SignatureUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// TemplateRequest creates or replaces a company template.
type TemplateRequest struct {
	Name             string      `json:"name" validate:"required,min=1,max=200"`
	Description      string      `json:"description" validate:"max=1000"`
	Mode             string      `json:"mode" validate:"required,oneof=structured markup"`
	Jurisdiction     string      `json:"jurisdiction" validate:"omitempty,usstate"`
	County           string      `json:"county" validate:"max=100"`
	CourtType        string      `json:"courtType" validate:"max=100"`
	ServiceStatus    string      `json:"serviceStatus" validate:"omitempty,oneof=served not_served both"`
	VisibleToClients []uuid.UUID `json:"visibleToClients" validate:"max=100"`
	Body             string      `json:"body" validate:"required_if=Mode markup,max=200000"`
	Active           *bool       `json:"active"`
}

// ListTemplatesRequest filters the template list. With a job id the merged
// candidates for that job are returned.
type ListTemplatesRequest struct {
	JobID           string `form:"jobId" validate:"omitempty,uuid"`
	IncludeInactive bool   `form:"includeInactive"`
}

// SendAffidavitRequest emails an affidavit. An empty address uses the client contact.
type SendAffidavitRequest struct {
	To      string `json:"to" validate:"omitempty,email,max=254"`
	Message string `json:"message" validate:"max=2000"`
}

// TemplateResponse describes one template.
type TemplateResponse struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	Mode             string      `json:"mode"`
	Jurisdiction     string      `json:"jurisdiction"`
	County           string      `json:"county,omitempty"`
	CourtType        string      `json:"courtType,omitempty"`
	ServiceStatus    string      `json:"serviceStatus"`
	Origin           string      `json:"origin"`
	Active           bool        `json:"active"`
	VisibleToClients []uuid.UUID `json:"visibleToClients,omitempty"`
	Body             string      `json:"body,omitempty"`
}

// TemplateLibraryResponse groups templates by where they come from.
type TemplateLibraryResponse struct {
	Company []TemplateResponse `json:"company"`
	System  []TemplateResponse `json:"system"`
	Starter []TemplateResponse `json:"starter"`
}

// PrepareResponse is the assembled affidavit with its template choices.
type PrepareResponse struct {
	Data               domain.AffidavitData `json:"data"`
	Candidates         []TemplateResponse   `json:"candidates"`
	SelectedTemplateID string               `json:"selectedTemplateId"`
	MissingFields      map[string]string    `json:"missingFields"`
	// Degraded lists sources that could not be read; their fields are empty.
	Degraded []string `json:"degraded"`
}

// DraftResponse echoes the stored draft.
type DraftResponse struct {
	TemplateID      string                     `json:"templateId,omitempty"`
	PlacedSignature *domain.SignaturePlacement `json:"placedSignature,omitempty"`
	EditedMarkup    string                     `json:"editedMarkup,omitempty"`
	Selections      domain.Selections          `json:"selections"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// AffidavitResponse describes a generated (or pending) affidavit.
type AffidavitResponse struct {
	ID               uuid.UUID  `json:"id"`
	JobID            uuid.UUID  `json:"jobId"`
	TemplateID       string     `json:"templateId"`
	Title            string     `json:"title"`
	ServiceStatus    string     `json:"serviceStatus"`
	Status           string     `json:"status"`
	VerificationCode string     `json:"verificationCode"`
	SizeBytes        int64      `json:"sizeBytes"`
	ErrorMessage     string     `json:"errorMessage,omitempty"`
	SentTo           string     `json:"sentTo,omitempty"`
	SentAt           *time.Time `json:"sentAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// DownloadURLResponse is a presigned download target.
type DownloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadURLResponse is a presigned upload target.
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerificationResponse is the public confirmation that an affidavit was issued.
type VerificationResponse struct {
	VerificationCode string    `json:"verificationCode"`
	Title            string    `json:"title"`
	CaseNumber       string    `json:"caseNumber"`
	CourtName        string    `json:"courtName"`
	RecipientName    string    `json:"recipientName"`
	ServerName       string    `json:"serverName"`
	ServiceStatus    string    `json:"serviceStatus"`
	IssuedAt         time.Time `json:"issuedAt"`
}
