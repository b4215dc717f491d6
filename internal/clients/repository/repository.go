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

const clientNotFoundMessage = "client not found"

// Client is a law firm or other customer that orders service through the portal.
type Client struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository handles client persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const clientColumns = `id, company_id, name, contact_name, email, phone, address, notes, is_active, created_at, updated_at`

const createClientQuery = `
	INSERT INTO clients (id, company_id, name, contact_name, email, phone, address, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + clientColumns

const getClientQuery = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND company_id = $2`

const listClientsQuery = `SELECT ` + clientColumns + `
	FROM clients
	WHERE company_id = $1
		AND ($2 OR is_active)
		AND ($3::text IS NULL OR name ILIKE $3 OR contact_name ILIKE $3 OR email ILIKE $3)
	ORDER BY name, id`

const updateClientQuery = `
	UPDATE clients SET
		name = $3, contact_name = $4, email = $5, phone = $6, address = $7, notes = $8,
		is_active = $9, updated_at = now()
	WHERE id = $1 AND company_id = $2
	RETURNING ` + clientColumns

// Create inserts a client.
func (r *Repository) Create(ctx context.Context, cl Client) (Client, error) {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	created, err := scanClient(r.pool.QueryRow(ctx, createClientQuery,
		cl.ID, cl.TenantID, cl.Name, cl.ContactName, cl.Email, cl.Phone, cl.Address, cl.Notes))
	if err != nil {
		return Client{}, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

// GetByID returns one client of the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Client, error) {
	cl, err := scanClient(r.pool.QueryRow(ctx, getClientQuery, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client: %w", err)
	}
	return cl, nil
}

// List returns the clients of a tenant.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool, search string) ([]Client, error) {
	var searchParam any
	if search != "" {
		searchParam = "%" + search + "%"
	}
	rows, err := r.pool.Query(ctx, listClientsQuery, tenantID, includeInactive, searchParam)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]Client, 0)
	for rows.Next() {
		cl, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

// Update replaces a client.
func (r *Repository) Update(ctx context.Context, cl Client) (Client, error) {
	updated, err := scanClient(r.pool.QueryRow(ctx, updateClientQuery,
		cl.ID, cl.TenantID, cl.Name, cl.ContactName, cl.Email, cl.Phone, cl.Address, cl.Notes, cl.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("update client: %w", err)
	}
	return updated, nil
}

func scanClient(row pgx.Row) (Client, error) {
	var cl Client
	err := row.Scan(&cl.ID, &cl.TenantID, &cl.Name, &cl.ContactName, &cl.Email, &cl.Phone,
		&cl.Address, &cl.Notes, &cl.IsActive, &cl.CreatedAt, &cl.UpdatedAt)
	return cl, err
}
