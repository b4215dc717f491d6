package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUniqueKeySanitizesFileName(t *testing.T) {
	key := uniqueKey("tenant/jobs/1/documents", "../Summons & Complaint.PDF")
	if !strings.HasPrefix(key, "tenant/jobs/1/documents/Summons_Complaint_") {
		t.Fatalf("unexpected key %q", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Fatalf("expected lowercased extension, got %q", key)
	}
}

func TestSafeName(t *testing.T) {
	if got := SafeName(" 2024/L 000123 "); got != "2024-L-000123" {
		t.Fatalf("unexpected safe name %q", got)
	}
	if got := SafeName("/../"); got != "" {
		t.Fatalf("expected nothing usable, got %q", got)
	}
}

func TestFolderHelpers(t *testing.T) {
	tenant, job, attempt := uuid.New(), uuid.New(), uuid.New()
	folder := AttemptPhotoFolder(tenant, job, attempt)
	if folder != tenant.String()+"/jobs/"+job.String()+"/attempts/"+attempt.String() {
		t.Fatalf("unexpected folder %q", folder)
	}
	if !BelongsTo(folder+"/photo_abc.jpg", folder) {
		t.Fatal("expected key inside folder to belong to it")
	}
	if BelongsTo(AffidavitFolder(tenant, job)+"/a.pdf", folder) {
		t.Fatal("expected key in another folder not to belong")
	}
}

func TestValidation(t *testing.T) {
	if err := validateContentType("image/jpeg; charset=binary"); err != nil {
		t.Fatalf("expected jpeg to be allowed: %v", err)
	}
	if err := validateContentType("video/mp4"); err == nil {
		t.Fatal("expected video to be rejected")
	}
	if err := validateFileSize(0, 10); err == nil {
		t.Fatal("expected empty file to be rejected")
	}
	if err := validateFileSize(11, 10); err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
}

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage(1 << 20)

	key, err := store.UploadFile(ctx, "affidavits", "t/jobs/j/affidavits", "affidavit.pdf", "application/pdf", strings.NewReader("%PDF-1.7"), 8)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	info, err := store.StatObject(ctx, "affidavits", key)
	if err != nil || info.Size != 8 || info.ContentType != "application/pdf" {
		t.Fatalf("unexpected stat %+v err=%v", info, err)
	}
	rc, err := store.DownloadFile(ctx, "affidavits", key)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "%PDF-1.7" {
		t.Fatalf("unexpected body %q", body)
	}

	if err := store.DeleteObject(ctx, "affidavits", key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.StatObject(ctx, "affidavits", key); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDisplayNameDropsUniqueSuffix(t *testing.T) {
	key := uniqueKey("t/jobs/1/affidavits", "affidavit-of-service-24-CV-101.pdf")
	if got := displayName(key[strings.LastIndex(key, "/")+1:]); got != "affidavit-of-service-24-CV-101.pdf" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := displayName("notes.txt"); got != "notes.txt" {
		t.Fatalf("names without suffix must be kept, got %q", got)
	}
}
