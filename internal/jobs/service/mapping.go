package service

import (
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/transport"
)

func toJobResponse(job domain.Job, attempts []domain.Attempt) transport.JobResponse {
	return transport.JobResponse{
		ID:               job.ID,
		ClientID:         job.ClientID,
		JobNumber:        job.JobNumber,
		Status:           job.Status,
		Priority:         job.Priority,
		Recipient:        job.Recipient,
		Addresses:        job.Addresses,
		AssignedServerID: job.AssignedServerID,
		CourtCaseID:      job.CourtCaseID,
		CaseNumber:       job.CaseNumber,
		CourtName:        job.CourtName,
		CourtCounty:      job.CourtCounty,
		CourtState:       job.CourtState,
		Plaintiff:        job.Plaintiff,
		Defendant:        job.Defendant,
		ServiceDate:      job.ServiceDate,
		ServiceMethod:    job.ServiceMethod,
		Attempts:         domain.Chronological(attempts),
		DueDate:          job.DueDate,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

func toDocumentResponse(d domain.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:          d.ID,
		JobID:       d.JobID,
		Title:       d.Title,
		Category:    d.Category,
		FileKey:     d.ObjectKey,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		PageCount:   d.PageCount,
		CreatedAt:   d.CreatedAt,
	}
}

func toCourtCaseResponse(cc domain.CourtCase) transport.CourtCaseResponse {
	caption := ""
	if cc.Plaintiff != "" || cc.Defendant != "" {
		caption = cc.Plaintiff + " v. " + cc.Defendant
	}
	return transport.CourtCaseResponse{
		ID:          cc.ID,
		CaseNumber:  cc.CaseNumber,
		CourtName:   cc.CourtName,
		CourtCounty: cc.CourtCounty,
		CourtState:  cc.CourtState,
		Plaintiff:   cc.Plaintiff,
		Defendant:   cc.Defendant,
		Caption:     caption,
		CreatedAt:   cc.CreatedAt,
		UpdatedAt:   cc.UpdatedAt,
	}
}
