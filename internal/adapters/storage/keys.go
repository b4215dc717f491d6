package storage

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Folder joins key segments into an object prefix.
func Folder(segments ...string) string {
	cleaned := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(strings.TrimSpace(s), "/")
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return path.Join(cleaned...)
}

// AttemptPhotoFolder is the prefix for photos taken during one attempt.
func AttemptPhotoFolder(tenantID, jobID, attemptID uuid.UUID) string {
	return Folder(tenantID.String(), "jobs", jobID.String(), "attempts", attemptID.String())
}

// JobDocumentFolder is the prefix for documents attached to a job.
func JobDocumentFolder(tenantID, jobID uuid.UUID) string {
	return Folder(tenantID.String(), "jobs", jobID.String(), "documents")
}

// AffidavitFolder is the prefix for rendered affidavits of a job.
func AffidavitFolder(tenantID, jobID uuid.UUID) string {
	return Folder(tenantID.String(), "jobs", jobID.String(), "affidavits")
}

// SignatureFolder is the prefix for signature images placed on a job's affidavits.
func SignatureFolder(tenantID, jobID uuid.UUID) string {
	return Folder(tenantID.String(), "jobs", jobID.String(), "signatures")
}

// JobFolder is the prefix of everything stored for a job.
func JobFolder(tenantID, jobID uuid.UUID) string {
	return Folder(tenantID.String(), "jobs", jobID.String())
}

// CompanyLogoFolder is the prefix for a company's logo uploads.
func CompanyLogoFolder(tenantID uuid.UUID) string {
	return Folder(tenantID.String(), "logo")
}

// BelongsTo reports whether fileKey lives under folder.
func BelongsTo(fileKey, folder string) bool {
	return strings.HasPrefix(fileKey, strings.TrimSuffix(folder, "/")+"/")
}

// SafeName reduces s to characters that are safe in object keys and
// attachment file names. It returns "" when nothing usable is left.
func SafeName(s string) string {
	return strings.Trim(unsafeNameChars.ReplaceAllString(strings.TrimSpace(s), "-"), "-._")
}

// uniqueKey builds folder/<safe base>_<8 hex><ext>.
func uniqueKey(folder, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	base := strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "file"
	}
	return path.Join(folder, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
}

var uniqueSuffix = regexp.MustCompile(`_[0-9a-f]{8}$`)

// displayName drops the suffix uniqueKey appended, so downloads keep the
// name the file was uploaded or generated with.
func displayName(base string) string {
	ext := path.Ext(base)
	return uniqueSuffix.ReplaceAllString(strings.TrimSuffix(base, ext), "") + ext
}
