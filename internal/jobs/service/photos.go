package service

import (
	"context"
	"errors"
	"io"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/repository"
	"serveportal_backend/internal/jobs/transport"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	msgUploadedFileNotFound = "uploaded file not found"
	msgFileKeyOutsideFolder = "file key does not belong to this attempt"

	// maxExifScanBytes bounds how much of a photo is read looking for EXIF.
	maxExifScanBytes = 1 << 20
)

// PhotoUploadURL returns a presigned upload target for an attempt photo.
func (s *Service) PhotoUploadURL(ctx context.Context, tenantID, jobID, attemptID uuid.UUID, req transport.PhotoUploadRequest) (transport.UploadURLResponse, error) {
	if !storage.IsImageContentType(req.ContentType) {
		return transport.UploadURLResponse{}, apperr.Validation("attempt photos must be images")
	}
	if _, err := s.repo.GetAttempt(ctx, tenantID, jobID, attemptID); err != nil {
		return transport.UploadURLResponse{}, err
	}
	return s.uploadURL(ctx, s.buckets.Photos, storage.AttemptPhotoFolder(tenantID, jobID, attemptID), req.FileName, req.ContentType, req.SizeBytes)
}

// CompletePhoto attaches an uploaded photo to its attempt. EXIF GPS fills in a
// missing attempt location; an existing device fix is never overwritten.
func (s *Service) CompletePhoto(ctx context.Context, tenantID, jobID, attemptID uuid.UUID, req transport.PhotoCompleteRequest) (domain.Attempt, error) {
	if !storage.BelongsTo(req.FileKey, storage.AttemptPhotoFolder(tenantID, jobID, attemptID)) {
		return domain.Attempt{}, apperr.BadRequest(msgFileKeyOutsideFolder)
	}
	info, err := s.statUpload(ctx, s.buckets.Photos, req.FileKey)
	if err != nil {
		return domain.Attempt{}, err
	}

	meta := s.photoMetadata(ctx, jobID, info)

	written, err := s.writeAttempt(ctx, tenantID, jobID, func(tx repository.Repository, _ domain.Job) (domain.Attempt, error) {
		a, err := tx.GetAttempt(ctx, tenantID, jobID, attemptID)
		if err != nil {
			return domain.Attempt{}, err
		}
		for _, existing := range a.Files {
			if existing == req.FileKey {
				return a, nil
			}
		}
		a.Files = append(a.Files, req.FileKey)
		if a.GPS == nil && meta.GPS != nil {
			gps := *meta.GPS
			a.GPS = &gps
		}
		return tx.UpdateAttempt(ctx, tenantID, a)
	})
	if err != nil {
		return domain.Attempt{}, err
	}

	s.log.Info("attempt photo attached", "jobId", jobID, "attemptId", attemptID, "fileKey", req.FileKey,
		"exifGps", meta.GPS != nil, "exifTakenAt", meta.TakenAt)
	return written, nil
}

// PhotoDownloadURL returns a presigned download URL for an attempt photo.
func (s *Service) PhotoDownloadURL(ctx context.Context, tenantID, jobID, attemptID uuid.UUID, fileKey string) (transport.UploadURLResponse, error) {
	a, err := s.repo.GetAttempt(ctx, tenantID, jobID, attemptID)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}
	for _, key := range a.Files {
		if key == fileKey {
			return s.downloadURL(ctx, s.buckets.Photos, key)
		}
	}
	return transport.UploadURLResponse{}, apperr.NotFound(msgUploadedFileNotFound)
}

func (s *Service) photoMetadata(ctx context.Context, jobID uuid.UUID, info storage.ObjectInfo) photoMetadata {
	if !storage.IsImageContentType(info.ContentType) {
		return photoMetadata{}
	}
	body, err := s.storage.DownloadFile(ctx, s.buckets.Photos, info.Key)
	if err != nil {
		s.log.CollaboratorDegraded("storage", jobID.String(), err)
		return photoMetadata{}
	}
	defer body.Close()

	meta, err := readPhotoMetadata(io.LimitReader(body, maxExifScanBytes))
	if err != nil {
		s.log.CollaboratorDegraded("exif", jobID.String(), err)
	}
	return meta
}

func (s *Service) statUpload(ctx context.Context, bucket, fileKey string) (storage.ObjectInfo, error) {
	info, err := s.storage.StatObject(ctx, bucket, fileKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return storage.ObjectInfo{}, apperr.NotFound(msgUploadedFileNotFound)
		}
		return storage.ObjectInfo{}, apperr.Unavailable("object storage unavailable", err)
	}
	return info, nil
}

func (s *Service) uploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (transport.UploadURLResponse, error) {
	if err := s.storage.ValidateContentType(contentType); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}
	if err := s.storage.ValidateFileSize(sizeBytes); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}
	presigned, err := s.storage.GenerateUploadURL(ctx, bucket, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return transport.UploadURLResponse{}, apperr.Unavailable("object storage unavailable", err)
	}
	return transport.UploadURLResponse{UploadURL: presigned.URL, FileKey: presigned.FileKey, ExpiresAt: presigned.ExpiresAt}, nil
}

func (s *Service) downloadURL(ctx context.Context, bucket, fileKey string) (transport.UploadURLResponse, error) {
	presigned, err := s.storage.GenerateDownloadURL(ctx, bucket, fileKey)
	if err != nil {
		return transport.UploadURLResponse{}, apperr.Unavailable("object storage unavailable", err)
	}
	return transport.UploadURLResponse{UploadURL: presigned.URL, FileKey: presigned.FileKey, ExpiresAt: presigned.ExpiresAt}, nil
}
