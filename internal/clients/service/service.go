// Package service implements the client directory.
package service

import (
	"context"
	"strings"

	"serveportal_backend/internal/clients/repository"
	"serveportal_backend/internal/clients/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/phone"
	"serveportal_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service provides business logic for clients.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a new clients service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.ClientRequest) (transport.ClientResponse, error) {
	cl, err := FromRequest(tenantID, uuid.Nil, req)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	created, err := s.repo.Create(ctx, cl)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	s.log.Info("client created", "clientId", created.ID)
	return ToResponse(created), nil
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (transport.ClientResponse, error) {
	cl, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return ToResponse(cl), nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID, req transport.ListClientsRequest) ([]transport.ClientResponse, error) {
	list, err := s.repo.List(ctx, tenantID, req.IncludeInactive, strings.TrimSpace(req.Search))
	if err != nil {
		return nil, err
	}
	out := make([]transport.ClientResponse, 0, len(list))
	for _, cl := range list {
		out = append(out, ToResponse(cl))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req transport.ClientRequest) (transport.ClientResponse, error) {
	current, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	cl, err := FromRequest(tenantID, id, req)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	cl.IsActive = current.IsActive
	if req.IsActive != nil {
		cl.IsActive = *req.IsActive
	}
	updated, err := s.repo.Update(ctx, cl)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return ToResponse(updated), nil
}

// Contact returns the address affidavits for this client are delivered to.
func (s *Service) Contact(ctx context.Context, tenantID, id uuid.UUID) (email, name string, err error) {
	cl, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", "", err
	}
	name = cl.ContactName
	if name == "" {
		name = cl.Name
	}
	return cl.Email, name, nil
}

// FromRequest builds a client from a request, normalizing the phone number.
func FromRequest(tenantID, id uuid.UUID, req transport.ClientRequest) (repository.Client, error) {
	cl := repository.Client{
		ID:          id,
		TenantID:    tenantID,
		Name:        sanitize.Name(req.Name),
		ContactName: sanitize.Name(req.ContactName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Address:     sanitize.Text(req.Address),
		Notes:       sanitize.Text(req.Notes),
		IsActive:    true,
	}
	if req.Phone != "" {
		if !phone.IsValid(req.Phone) {
			return repository.Client{}, apperr.FieldErrors("validation failed", map[string]string{"phone": "phone"})
		}
		cl.Phone = phone.NormalizeE164(req.Phone)
	}
	return cl, nil
}

// ToResponse maps a client to its API shape.
func ToResponse(cl repository.Client) transport.ClientResponse {
	return transport.ClientResponse{
		ID:           cl.ID,
		Name:         cl.Name,
		ContactName:  cl.ContactName,
		Email:        cl.Email,
		Phone:        cl.Phone,
		PhoneDisplay: phone.Display(cl.Phone),
		Address:      cl.Address,
		Notes:        cl.Notes,
		IsActive:     cl.IsActive,
		CreatedAt:    cl.CreatedAt,
		UpdatedAt:    cl.UpdatedAt,
	}
}
