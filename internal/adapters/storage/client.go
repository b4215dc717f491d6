package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PresignedURLTTL bounds how long upload and download links stay valid.
const PresignedURLTTL = 15 * time.Minute

// MinIOService keeps files in MinIO or any S3-compatible store.
type MinIOService struct {
	client      *minio.Client
	maxFileSize int64
	now         func() time.Time
}

var _ StorageService = (*MinIOService)(nil)

func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, errors.New("object storage is not configured (MINIO_ENDPOINT)")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinIOService{client: client, maxFileSize: cfg.GetMinIOMaxFileSize(), now: time.Now}, nil
}

func (s *MinIOService) EnsureBucketExists(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	if err != nil && !isBucketOwned(err) {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

// GenerateUploadURL validates the declared upload and presigns a PUT for a
// fresh key under folder.
func (s *MinIOService) GenerateUploadURL(ctx context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if err := s.ValidateContentType(contentType); err != nil {
		return nil, err
	}
	if err := s.ValidateFileSize(sizeBytes); err != nil {
		return nil, err
	}

	key := uniqueKey(folder, fileName)
	u, err := s.client.PresignedPutObject(ctx, bucket, key, PresignedURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", key, err)
	}
	return s.presigned(u, key), nil
}

// GenerateDownloadURL presigns a GET that saves the object under its own
// file name, without the unique suffix.
func (s *MinIOService) GenerateDownloadURL(ctx context.Context, bucket, fileKey string) (*PresignedURL, error) {
	params := url.Values{}
	params.Set("response-content-disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": displayName(path.Base(fileKey)),
	}))

	u, err := s.client.PresignedGetObject(ctx, bucket, fileKey, PresignedURLTTL, params)
	if err != nil {
		return nil, fmt.Errorf("presign download %s: %w", fileKey, err)
	}
	return s.presigned(u, fileKey), nil
}

// DownloadFile streams an object; a missing key surfaces as ErrObjectNotFound
// before any bytes are read. The caller closes the reader.
func (s *MinIOService) DownloadFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, fileKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", fileKey, err)
	}
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("get %s: %w", fileKey, err)
	}
	return obj, nil
}

func (s *MinIOService) StatObject(ctx context.Context, bucket, fileKey string) (ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, bucket, fileKey, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return ObjectInfo{}, ErrObjectNotFound
		}
		return ObjectInfo{}, fmt.Errorf("stat %s: %w", fileKey, err)
	}
	return ObjectInfo{Key: info.Key, Size: info.Size, ContentType: info.ContentType}, nil
}

func (s *MinIOService) DeleteObject(ctx context.Context, bucket, fileKey string) error {
	if err := s.client.RemoveObject(ctx, bucket, fileKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", fileKey, err)
	}
	return nil
}

// UploadFile writes server-produced content such as rendered affidavits and
// returns its key.
func (s *MinIOService) UploadFile(ctx context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if err := s.ValidateFileSize(size); err != nil {
		return "", err
	}
	key := uniqueKey(folder, fileName)
	if _, err := s.client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}

func (s *MinIOService) ValidateContentType(contentType string) error {
	return validateContentType(contentType)
}

func (s *MinIOService) ValidateFileSize(sizeBytes int64) error {
	return validateFileSize(sizeBytes, s.maxFileSize)
}

func (s *MinIOService) presigned(u *url.URL, key string) *PresignedURL {
	return &PresignedURL{URL: u.String(), FileKey: key, ExpiresAt: s.now().Add(PresignedURLTTL)}
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func isBucketOwned(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists"
}
