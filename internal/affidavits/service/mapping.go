package service

import (
	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/drafts"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/affidavits/transport"
)

func toTemplateResponse(t domain.Template, withBody bool) transport.TemplateResponse {
	resp := transport.TemplateResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		Mode:             string(t.Mode),
		Jurisdiction:     t.Jurisdiction,
		County:           t.County,
		CourtType:        t.CourtType,
		ServiceStatus:    string(t.ServiceStatus),
		Origin:           string(t.Origin),
		Active:           t.Active,
		VisibleToClients: t.VisibleToClients,
	}
	if withBody {
		resp.Body = t.Body
	}
	return resp
}

func toTemplateResponses(templates []domain.Template, withBody bool) []transport.TemplateResponse {
	out := make([]transport.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t, withBody))
	}
	return out
}

func toAffidavitResponse(a repository.Affidavit) transport.AffidavitResponse {
	return transport.AffidavitResponse{
		ID:               a.ID,
		JobID:            a.JobID,
		TemplateID:       a.TemplateID,
		Title:            a.Title,
		ServiceStatus:    a.ServiceStatus,
		Status:           string(a.Status),
		VerificationCode: a.VerificationCode,
		SizeBytes:        a.SizeBytes,
		ErrorMessage:     a.ErrorMessage,
		SentTo:           a.SentTo,
		SentAt:           a.SentAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toDraftResponse(d drafts.Draft) transport.DraftResponse {
	return transport.DraftResponse{
		TemplateID:      d.TemplateID,
		PlacedSignature: d.PlacedSignature,
		EditedMarkup:    d.EditedMarkup,
		Selections:      d.Selections,
		UpdatedAt:       d.UpdatedAt,
	}
}
