// Package drafts keeps in-progress affidavit edits between recomputations.
// Drafts live in a Redis hash per company and job and expire after a TTL;
// without Redis an in-process map is used.
package drafts

import (
	"context"
	"time"

	"serveportal_backend/internal/affidavits/domain"

	"github.com/google/uuid"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Draft is what the user changed on top of the assembled affidavit.
type Draft struct {
	TemplateID      string                     `json:"templateId,omitempty"`
	PlacedSignature *domain.SignaturePlacement `json:"placedSignature,omitempty"`
	EditedMarkup    string                     `json:"editedMarkup,omitempty"`
	Selections      domain.Selections          `json:"selections"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

// Edits returns the part of the draft that survives recomputation.
func (d Draft) Edits() domain.Edits {
	return domain.Edits{
		TemplateID:      d.TemplateID,
		PlacedSignature: d.PlacedSignature,
		EditedMarkup:    d.EditedMarkup,
	}
}

// FromData captures a draft from an assembled affidavit.
func FromData(data domain.AffidavitData) Draft {
	return Draft{
		TemplateID:      data.SelectedTemplateID,
		PlacedSignature: data.PlacedSignature,
		EditedMarkup:    data.EditedMarkup,
		Selections: domain.Selections{
			IncludeNotary:      data.IncludeNotary,
			IncludeCompanyInfo: data.IncludeCompanyInfo,
			TemplateID:         data.SelectedTemplateID,
			PhotoKeys:          append([]string(nil), data.PhotoKeys...),
			MergeServedDocs:    data.MergeServedDocs,
		},
	}
}

// Store persists drafts. Get returns nil and no error when no draft exists.
type Store interface {
	Get(ctx context.Context, tenantID, jobID uuid.UUID) (*Draft, error)
	Save(ctx context.Context, tenantID, jobID uuid.UUID, draft Draft) error
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
