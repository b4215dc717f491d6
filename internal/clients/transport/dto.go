package transport

import (
	"time"

	"github.com/google/uuid"
)

// ClientRequest creates or replaces a client.
type ClientRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactName string `json:"contactName,omitempty" validate:"max=200"`
	Email       string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone       string `json:"phone,omitempty" validate:"max=30"`
	Address     string `json:"address,omitempty" validate:"max=500"`
	Notes       string `json:"notes,omitempty" validate:"max=4000"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// ListClientsRequest is the query parameters for listing clients.
type ListClientsRequest struct {
	Search          string `form:"search" validate:"max=100"`
	IncludeInactive bool   `form:"includeInactive"`
}

// ClientResponse is a client.
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contactName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PhoneDisplay string    `json:"phoneDisplay"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
