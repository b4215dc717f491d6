package service

import (
	"context"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// DocumentUploadURL returns a presigned upload target for a job document.
func (s *Service) DocumentUploadURL(ctx context.Context, tenantID, jobID uuid.UUID, req transport.DocumentUploadRequest) (transport.UploadURLResponse, error) {
	if _, err := s.repo.GetJob(ctx, tenantID, jobID); err != nil {
		return transport.UploadURLResponse{}, err
	}
	return s.uploadURL(ctx, s.buckets.Documents, storage.JobDocumentFolder(tenantID, jobID), req.FileName, req.ContentType, req.SizeBytes)
}

// CreateDocument records an uploaded file as a job document.
func (s *Service) CreateDocument(ctx context.Context, tenantID, jobID uuid.UUID, req transport.CreateDocumentRequest) (transport.DocumentResponse, error) {
	if !storage.BelongsTo(req.FileKey, storage.JobDocumentFolder(tenantID, jobID)) {
		return transport.DocumentResponse{}, apperr.BadRequest("file key does not belong to this job")
	}
	if _, err := s.repo.GetJob(ctx, tenantID, jobID); err != nil {
		return transport.DocumentResponse{}, err
	}
	info, err := s.statUpload(ctx, s.buckets.Documents, req.FileKey)
	if err != nil {
		return transport.DocumentResponse{}, err
	}

	doc, err := s.repo.InsertDocument(ctx, tenantID, domain.Document{
		JobID:       jobID,
		Title:       sanitize.Text(req.Title),
		Category:    domain.DocumentCategory(req.Category),
		ObjectKey:   req.FileKey,
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		PageCount:   req.PageCount,
	})
	if err != nil {
		return transport.DocumentResponse{}, err
	}

	s.log.Info("job document added", "jobId", jobID, "documentId", doc.ID, "category", doc.Category)
	return toDocumentResponse(doc), nil
}

// AttachDocument records a file that was stored server side, such as a generated affidavit.
func (s *Service) AttachDocument(ctx context.Context, tenantID uuid.UUID, doc domain.Document) (domain.Document, error) {
	return s.repo.InsertDocument(ctx, tenantID, doc)
}

// ListDocuments returns the documents of a job.
func (s *Service) ListDocuments(ctx context.Context, tenantID, jobID uuid.UUID) ([]transport.DocumentResponse, error) {
	docs, err := s.repo.ListDocuments(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return out, nil
}

// Documents returns the raw documents of a job.
func (s *Service) Documents(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Document, error) {
	return s.repo.ListDocuments(ctx, tenantID, jobID)
}

// DocumentDownloadURL returns a presigned download URL for a job document.
func (s *Service) DocumentDownloadURL(ctx context.Context, tenantID, jobID, documentID uuid.UUID) (transport.UploadURLResponse, error) {
	doc, err := s.repo.GetDocument(ctx, tenantID, jobID, documentID)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}
	return s.downloadURL(ctx, s.DocumentBucket(doc), doc.ObjectKey)
}

// DocumentBucket returns the bucket holding a document's object.
func (s *Service) DocumentBucket(doc domain.Document) string {
	if doc.Category == domain.DocumentAffidavit && s.buckets.Affidavits != "" {
		return s.buckets.Affidavits
	}
	return s.buckets.Documents
}
