package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeNotFoundMessage = "employee not found"

// Kind distinguishes staff servers from independent contractors.
type Kind string

const (
	KindEmployee   Kind = "employee"
	KindContractor Kind = "contractor"
)

// Employee is a process server.
type Employee struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Kind          Kind
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	LicenseNumber string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListParams filters the employee list.
type ListParams struct {
	TenantID        uuid.UUID
	Kind            string
	IncludeInactive bool
}

// Repository handles employee persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new employees repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `id, company_id, kind, first_name, last_name, email, phone, license_number, address, is_active, created_at, updated_at`

const createEmployeeQuery = `
	INSERT INTO employees (id, company_id, kind, first_name, last_name, email, phone, license_number, address)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + employeeColumns

const getEmployeeQuery = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`

const listEmployeesQuery = `SELECT ` + employeeColumns + `
	FROM employees
	WHERE company_id = $1
		AND ($2::text IS NULL OR kind = $2)
		AND ($3 OR is_active)
	ORDER BY last_name, first_name, id`

const updateEmployeeQuery = `
	UPDATE employees SET
		kind = $3, first_name = $4, last_name = $5, email = $6, phone = $7,
		license_number = $8, address = $9, is_active = $10, updated_at = now()
	WHERE id = $1 AND company_id = $2
	RETURNING ` + employeeColumns

const deactivateEmployeeQuery = `UPDATE employees SET is_active = false, updated_at = now() WHERE id = $1 AND company_id = $2`

// Create inserts an employee.
func (r *Repository) Create(ctx context.Context, e Employee) (Employee, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	created, err := scanEmployee(r.pool.QueryRow(ctx, createEmployeeQuery,
		e.ID, e.TenantID, string(e.Kind), e.FirstName, e.LastName, e.Email, e.Phone, e.LicenseNumber, e.Address))
	if err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return created, nil
}

// GetByID returns one employee of the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Employee, error) {
	e, err := scanEmployee(r.pool.QueryRow(ctx, getEmployeeQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, apperr.NotFound(employeeNotFoundMessage)
		}
		return Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// List returns the employees of a tenant.
func (r *Repository) List(ctx context.Context, params ListParams) ([]Employee, error) {
	var kind any
	if params.Kind != "" {
		kind = params.Kind
	}
	rows, err := r.pool.Query(ctx, listEmployeesQuery, params.TenantID, kind, params.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update replaces an employee.
func (r *Repository) Update(ctx context.Context, e Employee) (Employee, error) {
	updated, err := scanEmployee(r.pool.QueryRow(ctx, updateEmployeeQuery,
		e.ID, e.TenantID, string(e.Kind), e.FirstName, e.LastName, e.Email, e.Phone, e.LicenseNumber, e.Address, e.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, apperr.NotFound(employeeNotFoundMessage)
		}
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return updated, nil
}

// Deactivate hides an employee from assignment lists. Historic attempts keep the reference.
func (r *Repository) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deactivateEmployeeQuery, id, tenantID)
	if err != nil {
		return fmt.Errorf("deactivate employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(employeeNotFoundMessage)
	}
	return nil
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var (
		e    Employee
		kind string
	)
	err := row.Scan(&e.ID, &e.TenantID, &kind, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.LicenseNumber, &e.Address, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	e.Kind = Kind(kind)
	return e, err
}
