// Package service implements the employee directory.
package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/employees/repository"
	"serveportal_backend/internal/employees/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/phone"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Store is the persistence the service needs.
type Store interface {
	Create(ctx context.Context, e repository.Employee) (repository.Employee, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (repository.Employee, error)
	List(ctx context.Context, params repository.ListParams) ([]repository.Employee, error)
	Update(ctx context.Context, e repository.Employee) (repository.Employee, error)
	Deactivate(ctx context.Context, tenantID, id uuid.UUID) error
}

// Service provides business logic for employees.
type Service struct {
	repo Store
	log  *logger.Logger
}

// New creates a new employees service.
func New(repo Store, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.EmployeeRequest) (transport.EmployeeResponse, error) {
	e, err := fromRequest(tenantID, uuid.Nil, req)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	s.log.Info("employee created", "employeeId", created.ID, "kind", created.Kind)
	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (transport.EmployeeResponse, error) {
	e, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	return toResponse(e), nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID, req transport.ListEmployeesRequest) ([]transport.EmployeeResponse, error) {
	list, err := s.repo.List(ctx, repository.ListParams{TenantID: tenantID, Kind: req.Kind, IncludeInactive: req.IncludeInactive})
	if err != nil {
		return nil, err
	}
	out := make([]transport.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toResponse(e))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req transport.EmployeeRequest) (transport.EmployeeResponse, error) {
	current, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	e, err := fromRequest(tenantID, id, req)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	e.IsActive = current.IsActive
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return transport.EmployeeResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		return err
	}
	s.log.Info("employee deactivated", "employeeId", id)
	return nil
}

// All returns every employee, active or not, for affidavit assembly.
func (s *Service) All(ctx context.Context, tenantID uuid.UUID) ([]repository.Employee, error) {
	return s.repo.List(ctx, repository.ListParams{TenantID: tenantID, IncludeInactive: true})
}

// ServerName resolves an employee id to a display name.
func (s *Service) ServerName(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	e, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return FullName(e), nil
}

// Contact returns the email and name used to notify a server.
func (s *Service) Contact(ctx context.Context, tenantID, id uuid.UUID) (email, name string, err error) {
	e, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", "", err
	}
	return e.Email, FullName(e), nil
}

// FullName joins first and last name.
func FullName(e repository.Employee) string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func fromRequest(tenantID, id uuid.UUID, req transport.EmployeeRequest) (repository.Employee, error) {
	e := repository.Employee{
		ID:            id,
		TenantID:      tenantID,
		Kind:          repository.Kind(req.Kind),
		FirstName:     sanitize.Name(req.FirstName),
		LastName:      sanitize.Name(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		LicenseNumber: sanitize.Text(req.LicenseNumber),
		Address:       sanitize.Text(req.Address),
		IsActive:      true,
	}
	if req.Phone != "" {
		if !phone.IsValid(req.Phone) {
			return repository.Employee{}, apperr.FieldErrors("validation failed", map[string]string{"phone": "phone"})
		}
		e.Phone = phone.NormalizeE164(req.Phone)
	}
	return e, nil
}

func toResponse(e repository.Employee) transport.EmployeeResponse {
	return transport.EmployeeResponse{
		ID:            e.ID,
		Kind:          string(e.Kind),
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      FullName(e),
		Email:         e.Email,
		Phone:         e.Phone,
		PhoneDisplay:  phone.Display(e.Phone),
		LicenseNumber: e.LicenseNumber,
		Address:       e.Address,
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
