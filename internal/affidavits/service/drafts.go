package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/drafts"
	"serveportal_backend/internal/affidavits/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// SaveDraft stores the user's edits. The next preparation starts from them.
func (s *Service) SaveDraft(ctx context.Context, tenantID, jobID uuid.UUID, req transport.SaveDraftRequest) (transport.DraftResponse, error) {
	d, err := draftFromRequest(tenantID, jobID, req)
	if err != nil {
		return transport.DraftResponse{}, err
	}
	if _, _, err := s.jobs.Load(ctx, tenantID, jobID); err != nil {
		return transport.DraftResponse{}, err
	}
	if err := s.drafts.Save(ctx, tenantID, jobID, d); err != nil {
		return transport.DraftResponse{}, apperr.Unavailable("draft store unavailable", err)
	}

	saved, err := s.drafts.Get(ctx, tenantID, jobID)
	if err != nil || saved == nil {
		saved = &d
	}
	return toDraftResponse(*saved), nil
}

// GetDraft returns the stored draft. A job without a draft is not found.
func (s *Service) GetDraft(ctx context.Context, tenantID, jobID uuid.UUID) (transport.DraftResponse, error) {
	d, err := s.drafts.Get(ctx, tenantID, jobID)
	if err != nil {
		return transport.DraftResponse{}, apperr.Unavailable("draft store unavailable", err)
	}
	if d == nil {
		return transport.DraftResponse{}, apperr.NotFound("draft not found")
	}
	return toDraftResponse(*d), nil
}

// SignatureUploadURL returns a presigned upload target for a signature image.
func (s *Service) SignatureUploadURL(ctx context.Context, tenantID, jobID uuid.UUID, req transport.SignatureUploadRequest) (transport.UploadURLResponse, error) {
	if !storage.IsImageContentType(req.ContentType) {
		return transport.UploadURLResponse{}, apperr.Validation("signatures must be images")
	}
	if err := s.storage.ValidateFileSize(req.SizeBytes); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}
	presigned, err := s.storage.GenerateUploadURL(ctx, s.opts.AffidavitBucket, storage.SignatureFolder(tenantID, jobID), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.UploadURLResponse{}, apperr.Unavailable(msgStorageUnavailable, err)
	}
	return transport.UploadURLResponse{UploadURL: presigned.URL, FileKey: presigned.FileKey, ExpiresAt: presigned.ExpiresAt}, nil
}

// draftFromRequest checks that every referenced file belongs to the job.
func draftFromRequest(tenantID, jobID uuid.UUID, req transport.SaveDraftRequest) (drafts.Draft, error) {
	selections := selectionsFromRequest(req.Selections)
	templateID := strings.TrimSpace(req.TemplateID)
	if templateID == "" {
		templateID = selections.TemplateID
	}
	selections.TemplateID = templateID

	fields := make(map[string]string)
	jobFolder := storage.JobFolder(tenantID, jobID)
	for _, key := range selections.PhotoKeys {
		if !storage.BelongsTo(key, jobFolder) {
			fields["selections.photoKeys"] = "photos must belong to this job"
			break
		}
	}

	d := drafts.Draft{
		TemplateID:   templateID,
		EditedMarkup: sanitize.Markup(req.EditedMarkup),
		Selections:   selections,
	}
	if p := req.PlacedSignature; p != nil {
		if !storage.BelongsTo(p.ImageKey, storage.SignatureFolder(tenantID, jobID)) {
			fields["placedSignature.imageKey"] = "signature image must be uploaded for this job"
		}
		d.PlacedSignature = &domain.SignaturePlacement{
			Page: p.Page, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height, ImageKey: p.ImageKey,
		}
	}
	if len(fields) > 0 {
		return drafts.Draft{}, apperr.FieldErrors("draft references files outside this job", fields)
	}
	return d, nil
}

func selectionsFromRequest(req transport.SelectionsRequest) domain.Selections {
	keys := make([]string, 0, len(req.PhotoKeys))
	seen := make(map[string]struct{}, len(req.PhotoKeys))
	for _, k := range req.PhotoKeys {
		k = strings.TrimSpace(k)
		if _, dup := seen[k]; dup || k == "" {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return domain.Selections{
		IncludeNotary:      req.IncludeNotary,
		IncludeCompanyInfo: req.IncludeCompanyInfo,
		TemplateID:         strings.TrimSpace(req.TemplateID),
		PhotoKeys:          keys,
		MergeServedDocs:    req.MergeServedDocs,
	}
}
