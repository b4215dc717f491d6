package transport

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeRequest creates or replaces an employee.
type EmployeeRequest struct {
	Kind          string `json:"kind" validate:"required,oneof=employee contractor"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName,omitempty" validate:"max=100"`
	Email         string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Phone         string `json:"phone,omitempty" validate:"max=30"`
	LicenseNumber string `json:"licenseNumber,omitempty" validate:"max=100"`
	Address       string `json:"address,omitempty" validate:"max=500"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

// ListEmployeesRequest is the query parameters for listing employees.
type ListEmployeesRequest struct {
	Kind            string `form:"kind" validate:"omitempty,oneof=employee contractor"`
	IncludeInactive bool   `form:"includeInactive"`
}

// EmployeeResponse is an employee.
type EmployeeResponse struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PhoneDisplay  string    `json:"phoneDisplay"`
	LicenseNumber string    `json:"licenseNumber"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
