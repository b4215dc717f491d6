package transport

import "time"

// ProfileRequest replaces the company profile.
type ProfileRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Address  string `json:"address,omitempty" validate:"max=500"`
	Phone    string `json:"phone,omitempty" validate:"max=30"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	License  string `json:"license,omitempty" validate:"max=100"`
	Website  string `json:"website,omitempty" validate:"omitempty,url,max=300"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// LogoUploadRequest asks for a presigned logo upload URL.
type LogoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

// LogoCompleteRequest confirms an uploaded logo.
type LogoCompleteRequest struct {
	FileKey string `json:"fileKey" validate:"required,max=500"`
}

// ProfileResponse is the company profile.
type ProfileResponse struct {
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	PhoneDisplay string    `json:"phoneDisplay"`
	Email        string    `json:"email"`
	License      string    `json:"license"`
	Website      string    `json:"website"`
	LogoKey      *string   `json:"logoKey,omitempty"`
	Timezone     string    `json:"timezone"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UploadURLResponse is a presigned upload target.
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
