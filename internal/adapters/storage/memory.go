package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStorage keeps objects in process memory. It backs local development
// without MinIO and package tests.
type MemoryStorage struct {
	mu          sync.RWMutex
	objects     map[string]memoryObject
	maxFileSize int64
}

type memoryObject struct {
	data        []byte
	contentType string
}

var _ StorageService = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage(maxFileSize int64) *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject), maxFileSize: maxFileSize}
}

func memoryKey(bucket, fileKey string) string { return bucket + "/" + fileKey }

// Put stores data under an exact key.
func (m *MemoryStorage) Put(bucket, fileKey, contentType string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[memoryKey(bucket, fileKey)] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
}

// Object returns a stored object's bytes.
func (m *MemoryStorage) Object(bucket, fileKey string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[memoryKey(bucket, fileKey)]
	return obj.data, ok
}

func (m *MemoryStorage) EnsureBucketExists(context.Context, string) error { return nil }

func (m *MemoryStorage) GenerateUploadURL(_ context.Context, bucket, folder, fileName, contentType string, sizeBytes int64) (*PresignedURL, error) {
	if err := m.ValidateContentType(contentType); err != nil {
		return nil, err
	}
	if err := m.ValidateFileSize(sizeBytes); err != nil {
		return nil, err
	}
	key := uniqueKey(folder, fileName)
	return &PresignedURL{URL: "memory://" + memoryKey(bucket, key), FileKey: key, ExpiresAt: time.Now().Add(PresignedURLTTL)}, nil
}

func (m *MemoryStorage) GenerateDownloadURL(_ context.Context, bucket, fileKey string) (*PresignedURL, error) {
	if _, ok := m.Object(bucket, fileKey); !ok {
		return nil, ErrObjectNotFound
	}
	return &PresignedURL{URL: "memory://" + memoryKey(bucket, fileKey), FileKey: fileKey, ExpiresAt: time.Now().Add(PresignedURLTTL)}, nil
}

func (m *MemoryStorage) DownloadFile(_ context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	data, ok := m.Object(bucket, fileKey)
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryStorage) StatObject(_ context.Context, bucket, fileKey string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[memoryKey(bucket, fileKey)]
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return ObjectInfo{Key: fileKey, Size: int64(len(obj.data)), ContentType: obj.contentType}, nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, bucket, fileKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, memoryKey(bucket, fileKey))
	return nil
}

func (m *MemoryStorage) UploadFile(_ context.Context, bucket, folder, fileName, contentType string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	key := uniqueKey(folder, fileName)
	m.Put(bucket, key, contentType, data)
	return key, nil
}

func (m *MemoryStorage) ValidateContentType(contentType string) error {
	return validateContentType(contentType)
}

func (m *MemoryStorage) ValidateFileSize(sizeBytes int64) error {
	return validateFileSize(sizeBytes, m.maxFileSize)
}
