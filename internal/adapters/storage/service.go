// Package storage keeps job photos, served documents, affidavit PDFs and
// company logos in S3-compatible buckets.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// PresignedURL is a time-limited link the browser uses directly.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// StorageService is what the modules need from a bucket store. Keys are
// generated by the store; callers pass a folder and the original file name.
type StorageService interface {
	EnsureBucketExists(ctx context.Context, bucket string) error

	// GenerateUploadURL presigns a PUT for a new, uniquely suffixed key.
	GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error)
	UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, r io.Reader, size int64) (string, error)
	GenerateDownloadURL(ctx context.Context, bucket, key string) (*PresignedURL, error)

	// DownloadFile returns ErrObjectNotFound for a missing key. The caller
	// closes the reader.
	DownloadFile(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error

	ValidateContentType(contentType string) error
	ValidateFileSize(sizeBytes int64) error
}

type Config interface {
	IsMinIOEnabled() bool
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
}
