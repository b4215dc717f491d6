// Package service implements the company profile.
package service

import (
	"context"
	"errors"
	"strings"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/company/repository"
	"serveportal_backend/internal/company/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/phone"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides business logic for the company profile.
type Service struct {
	repo    *repository.Repository
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// New creates a new company service.
func New(repo *repository.Repository, store storage.StorageService, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: store, bucket: bucket, log: log}
}

// Profile returns the raw profile for affidavit assembly and email branding.
func (s *Service) Profile(ctx context.Context, tenantID uuid.UUID) (repository.Profile, error) {
	return s.repo.Get(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (transport.ProfileResponse, error) {
	p, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return toResponse(p), nil
}

func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, req transport.ProfileRequest) (transport.ProfileResponse, error) {
	p := repository.Profile{
		TenantID: tenantID,
		Name:     sanitize.Name(req.Name),
		Address:  sanitize.Text(req.Address),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		License:  sanitize.Text(req.License),
		Website:  strings.TrimSpace(req.Website),
		Timezone: req.Timezone,
	}
	if p.Timezone == "" {
		p.Timezone = repository.DefaultTimezone
	}
	if req.Phone != "" {
		if !phone.IsValid(req.Phone) {
			return transport.ProfileResponse{}, apperr.FieldErrors("validation failed", map[string]string{"phone": "phone"})
		}
		p.Phone = phone.NormalizeE164(req.Phone)
	}

	saved, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	s.log.Info("company profile updated", "tenantId", tenantID)
	return toResponse(saved), nil
}

// LogoUploadURL returns a presigned upload target for the company logo.
func (s *Service) LogoUploadURL(ctx context.Context, tenantID uuid.UUID, req transport.LogoUploadRequest) (transport.UploadURLResponse, error) {
	if !storage.IsImageContentType(req.ContentType) {
		return transport.UploadURLResponse{}, apperr.Validation("logo must be an image")
	}
	if err := s.storage.ValidateFileSize(req.SizeBytes); err != nil {
		return transport.UploadURLResponse{}, apperr.Validation(err.Error())
	}
	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, storage.CompanyLogoFolder(tenantID), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.UploadURLResponse{}, apperr.Unavailable("object storage unavailable", err)
	}
	return transport.UploadURLResponse{UploadURL: presigned.URL, FileKey: presigned.FileKey, ExpiresAt: presigned.ExpiresAt}, nil
}

// CompleteLogo records an uploaded logo on the profile.
func (s *Service) CompleteLogo(ctx context.Context, tenantID uuid.UUID, req transport.LogoCompleteRequest) (transport.ProfileResponse, error) {
	if !storage.BelongsTo(req.FileKey, storage.CompanyLogoFolder(tenantID)) {
		return transport.ProfileResponse{}, apperr.BadRequest("file key does not belong to this company")
	}
	if _, err := s.storage.StatObject(ctx, s.bucket, req.FileKey); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return transport.ProfileResponse{}, apperr.NotFound("uploaded file not found")
		}
		return transport.ProfileResponse{}, apperr.Unavailable("object storage unavailable", err)
	}
	saved, err := s.repo.SetLogo(ctx, tenantID, req.FileKey)
	if err != nil {
		return transport.ProfileResponse{}, err
	}
	return toResponse(saved), nil
}

func toResponse(p repository.Profile) transport.ProfileResponse {
	return transport.ProfileResponse{
		Name:         p.Name,
		Address:      p.Address,
		Phone:        p.Phone,
		PhoneDisplay: phone.Display(p.Phone),
		Email:        p.Email,
		License:      p.License,
		Website:      p.Website,
		LogoKey:      p.LogoKey,
		Timezone:     p.Timezone,
		UpdatedAt:    p.UpdatedAt,
	}
}
