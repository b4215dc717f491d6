package transport

import (
	"time"

	"serveportal_backend/internal/jobs/domain"

	"github.com/google/uuid"
)

// AddressRequest is one service address on a job.
type AddressRequest struct {
	Label   string `json:"label,omitempty" validate:"max=100"`
	Street  string `json:"street" validate:"required,max=200"`
	Street2 string `json:"street2,omitempty" validate:"max=200"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,usstate"`
	ZIP     string `json:"zip" validate:"required,max=10"`
	Primary bool   `json:"primary"`
}

// CreateJobRequest is the request body for creating a job.
type CreateJobRequest struct {
	ClientID         *uuid.UUID       `json:"clientId,omitempty"`
	JobNumber        string           `json:"jobNumber,omitempty" validate:"max=50"`
	Priority         string           `json:"priority,omitempty" validate:"omitempty,oneof=routine rush same_day"`
	RecipientName    string           `json:"recipientName" validate:"required,max=200"`
	RecipientType    string           `json:"recipientType,omitempty" validate:"omitempty,oneof=individual organization"`
	Addresses        []AddressRequest `json:"addresses" validate:"required,min=1,dive"`
	AssignedServerID *uuid.UUID       `json:"assignedServerId,omitempty"`
	CourtCaseID      *uuid.UUID       `json:"courtCaseId,omitempty"`
	CaseNumber       string           `json:"caseNumber,omitempty" validate:"max=100"`
	CourtName        string           `json:"courtName,omitempty" validate:"max=200"`
	CourtCounty      string           `json:"courtCounty,omitempty" validate:"max=100"`
	CourtState       string           `json:"courtState,omitempty" validate:"omitempty,usstate"`
	Plaintiff        string           `json:"plaintiff,omitempty" validate:"max=300"`
	Defendant        string           `json:"defendant,omitempty" validate:"max=300"`
	DueDate          *time.Time       `json:"dueDate,omitempty"`
}

// ListJobsRequest is the query parameters for listing jobs.
type ListJobsRequest struct {
	Status   string     `form:"status" validate:"omitempty,jobstatus"`
	ServerID *uuid.UUID `form:"serverId"`
	Search   string     `form:"search" validate:"max=100"`
	Page     int        `form:"page" validate:"omitempty,min=1"`
	PageSize int        `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// AssignJobRequest assigns or unassigns (null) a server.
type AssignJobRequest struct {
	ServerID *uuid.UUID `json:"serverId"`
}

// UpdateJobStatusRequest is a manual status change.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,jobstatus"`
}

// PersonServedRequest carries the descriptive fields of the person served.
type PersonServedRequest struct {
	Name         string `json:"name,omitempty" validate:"max=200"`
	Relationship string `json:"relationship,omitempty" validate:"max=100"`
	Sex          string `json:"sex,omitempty" validate:"max=20"`
	Age          string `json:"age,omitempty" validate:"max=20"`
	Height       string `json:"height,omitempty" validate:"max=20"`
	Weight       string `json:"weight,omitempty" validate:"max=20"`
	Hair         string `json:"hair,omitempty" validate:"max=50"`
	Description  string `json:"description,omitempty" validate:"max=1000"`
}

// GPSRequest is a device location fix.
type GPSRequest struct {
	Latitude  float64 `json:"lat" validate:"min=-90,max=90"`
	Longitude float64 `json:"lon" validate:"min=-180,max=180"`
	Accuracy  float64 `json:"accuracy,omitempty" validate:"min=0"`
}

// AttemptRequest logs or edits an attempt.
type AttemptRequest struct {
	Status            string              `json:"status" validate:"required,attemptstatus"`
	AttemptDate       time.Time           `json:"attemptDate" validate:"required"`
	ServiceTypeDetail string              `json:"serviceTypeDetail,omitempty" validate:"max=200"`
	ServiceMethod     string              `json:"serviceMethod,omitempty" validate:"omitempty,servicemethod"`
	PersonServed      PersonServedRequest `json:"personServed"`
	GPS               *GPSRequest         `json:"gps,omitempty"`
	ServerID          *uuid.UUID          `json:"serverId,omitempty"`
	ServerName        string              `json:"serverName,omitempty" validate:"max=200"`
	Address           string              `json:"address,omitempty" validate:"max=500"`
	Notes             string              `json:"notes,omitempty" validate:"max=4000"`
}

// PhotoUploadRequest asks for a presigned upload URL for an attempt photo.
type PhotoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// PhotoCompleteRequest confirms an uploaded attempt photo.
type PhotoCompleteRequest struct {
	FileKey string `json:"fileKey" validate:"required,max=500"`
}

// DocumentUploadRequest asks for a presigned upload URL for a job document.
type DocumentUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// CreateDocumentRequest records an uploaded job document.
type CreateDocumentRequest struct {
	Title     string `json:"title" validate:"required,max=300"`
	Category  string `json:"category" validate:"required,oneof=to_be_served affidavit other"`
	FileKey   string `json:"fileKey" validate:"required,max=500"`
	PageCount int    `json:"pageCount,omitempty" validate:"min=0"`
}

// CourtCaseRequest creates or replaces a court case.
type CourtCaseRequest struct {
	CaseNumber  string `json:"caseNumber" validate:"required,max=100"`
	CourtName   string `json:"courtName,omitempty" validate:"max=200"`
	CourtCounty string `json:"courtCounty,omitempty" validate:"max=100"`
	CourtState  string `json:"courtState,omitempty" validate:"omitempty,usstate"`
	Plaintiff   string `json:"plaintiff,omitempty" validate:"max=300"`
	Defendant   string `json:"defendant,omitempty" validate:"max=300"`
}

// JobResponse is the response body for a job.
type JobResponse struct {
	ID               uuid.UUID            `json:"id"`
	ClientID         *uuid.UUID           `json:"clientId,omitempty"`
	JobNumber        string               `json:"jobNumber"`
	Status           domain.JobStatus     `json:"status"`
	Priority         string               `json:"priority"`
	Recipient        domain.Recipient     `json:"recipient"`
	Addresses        []domain.Address     `json:"addresses"`
	AssignedServerID *uuid.UUID           `json:"assignedServerId,omitempty"`
	CourtCaseID      *uuid.UUID           `json:"courtCaseId,omitempty"`
	CaseNumber       string               `json:"caseNumber,omitempty"`
	CourtName        string               `json:"courtName,omitempty"`
	CourtCounty      string               `json:"courtCounty,omitempty"`
	CourtState       string               `json:"courtState,omitempty"`
	Plaintiff        string               `json:"plaintiff,omitempty"`
	Defendant        string               `json:"defendant,omitempty"`
	ServiceDate      *time.Time           `json:"serviceDate,omitempty"`
	ServiceMethod    domain.ServiceMethod `json:"serviceMethod,omitempty"`
	Attempts         []domain.Attempt     `json:"attempts"`
	DueDate          *time.Time           `json:"dueDate,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// JobListResponse is the paginated response for listing jobs.
type JobListResponse struct {
	Items      []JobResponse `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// UploadURLResponse is a presigned upload target.
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DocumentResponse is a job document.
type DocumentResponse struct {
	ID          uuid.UUID               `json:"id"`
	JobID       uuid.UUID               `json:"jobId"`
	Title       string                  `json:"title"`
	Category    domain.DocumentCategory `json:"category"`
	FileKey     string                  `json:"fileKey"`
	ContentType string                  `json:"contentType"`
	SizeBytes   int64                   `json:"sizeBytes"`
	PageCount   int                     `json:"pageCount"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// CourtCaseResponse is a court case.
type CourtCaseResponse struct {
	ID          uuid.UUID `json:"id"`
	CaseNumber  string    `json:"caseNumber"`
	CourtName   string    `json:"courtName"`
	CourtCounty string    `json:"courtCounty"`
	CourtState  string    `json:"courtState"`
	Plaintiff   string    `json:"plaintiff"`
	Defendant   string    `json:"defendant"`
	Caption     string    `json:"caption"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
