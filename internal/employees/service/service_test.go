package service

import (
	"context"
	"testing"

	"serveportal_backend/internal/employees/repository"
	"serveportal_backend/internal/employees/transport"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

type memoryStore struct {
	items map[uuid.UUID]repository.Employee
}

func (m *memoryStore) Create(_ context.Context, e repository.Employee) (repository.Employee, error) {
	e.ID = uuid.New()
	m.items[e.ID] = e
	return e, nil
}

func (m *memoryStore) GetByID(_ context.Context, tenantID, id uuid.UUID) (repository.Employee, error) {
	e, ok := m.items[id]
	if !ok || e.TenantID != tenantID {
		return repository.Employee{}, apperr.NotFound("employee not found")
	}
	return e, nil
}

func (m *memoryStore) List(_ context.Context, params repository.ListParams) ([]repository.Employee, error) {
	var out []repository.Employee
	for _, e := range m.items {
		if e.TenantID == params.TenantID && (params.IncludeInactive || e.IsActive) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) Update(_ context.Context, e repository.Employee) (repository.Employee, error) {
	m.items[e.ID] = e
	return e, nil
}

func (m *memoryStore) Deactivate(_ context.Context, tenantID, id uuid.UUID) error {
	e, ok := m.items[id]
	if !ok || e.TenantID != tenantID {
		return apperr.NotFound("employee not found")
	}
	e.IsActive = false
	m.items[id] = e
	return nil
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc := New(&memoryStore{items: map[uuid.UUID]repository.Employee{}}, logger.New("test"))
	resp, err := svc.Create(context.Background(), uuid.New(), transport.EmployeeRequest{
		Kind:      "contractor",
		FirstName: " Sam ",
		LastName:  "Server",
		Phone:     "(312) 555-0142",
		Email:     "Sam@Example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Phone != "+13125550142" {
		t.Fatalf("expected E.164 phone, got %q", resp.Phone)
	}
	if resp.FullName != "Sam Server" || resp.Email != "sam@example.com" {
		t.Fatalf("unexpected normalization: %+v", resp)
	}
}

func TestCreateRejectsInvalidPhone(t *testing.T) {
	svc := New(&memoryStore{items: map[uuid.UUID]repository.Employee{}}, logger.New("test"))
	_, err := svc.Create(context.Background(), uuid.New(), transport.EmployeeRequest{
		Kind:      "employee",
		FirstName: "Sam",
		Phone:     "12",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAllIncludesInactiveServers(t *testing.T) {
	store := &memoryStore{items: map[uuid.UUID]repository.Employee{}}
	svc := New(store, logger.New("test"))
	tenant := uuid.New()
	created, err := svc.Create(context.Background(), tenant, transport.EmployeeRequest{Kind: "employee", FirstName: "Ana"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Deactivate(context.Background(), tenant, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, _ := svc.List(context.Background(), tenant, transport.ListEmployeesRequest{})
	if len(active) != 0 {
		t.Fatalf("expected no active employees, got %d", len(active))
	}
	all, _ := svc.All(context.Background(), tenant)
	if len(all) != 1 {
		t.Fatalf("expected inactive employee in All, got %d", len(all))
	}
}
