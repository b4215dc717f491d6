package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTimezone applies until a company sets its own.
const DefaultTimezone = "America/Chicago"

// Profile is the company's letterhead and affiant fallback data.
type Profile struct {
	TenantID  uuid.UUID
	Name      string
	Address   string
	Phone     string
	Email     string
	License   string
	Website   string
	LogoKey   *string
	Timezone  string
	UpdatedAt time.Time
}

// Repository handles company profile persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new company repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileColumns = `company_id, name, address, phone, email, license, website, logo_key, timezone, updated_at`

const getProfileQuery = `SELECT ` + profileColumns + ` FROM company_profiles WHERE company_id = $1`

const upsertProfileQuery = `
	INSERT INTO company_profiles (company_id, name, address, phone, email, license, website, timezone)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (company_id) DO UPDATE SET
		name = EXCLUDED.name, address = EXCLUDED.address, phone = EXCLUDED.phone,
		email = EXCLUDED.email, license = EXCLUDED.license, website = EXCLUDED.website,
		timezone = EXCLUDED.timezone, updated_at = now()
	RETURNING ` + profileColumns

const setLogoQuery = `
	INSERT INTO company_profiles (company_id, logo_key) VALUES ($1, $2)
	ON CONFLICT (company_id) DO UPDATE SET logo_key = EXCLUDED.logo_key, updated_at = now()
	RETURNING ` + profileColumns

// Get returns the tenant's profile. A tenant without a stored profile gets an empty one.
func (r *Repository) Get(ctx context.Context, tenantID uuid.UUID) (Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, getProfileQuery, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{TenantID: tenantID, Timezone: DefaultTimezone}, nil
		}
		return Profile{}, fmt.Errorf("get company profile: %w", err)
	}
	return p, nil
}

// Upsert creates or replaces the editable profile fields.
func (r *Repository) Upsert(ctx context.Context, p Profile) (Profile, error) {
	saved, err := scanProfile(r.pool.QueryRow(ctx, upsertProfileQuery,
		p.TenantID, p.Name, p.Address, p.Phone, p.Email, p.License, p.Website, p.Timezone))
	if err != nil {
		return Profile{}, fmt.Errorf("upsert company profile: %w", err)
	}
	return saved, nil
}

// SetLogo stores the object key of the company logo.
func (r *Repository) SetLogo(ctx context.Context, tenantID uuid.UUID, logoKey string) (Profile, error) {
	saved, err := scanProfile(r.pool.QueryRow(ctx, setLogoQuery, tenantID, logoKey))
	if err != nil {
		return Profile{}, fmt.Errorf("set company logo: %w", err)
	}
	return saved, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(&p.TenantID, &p.Name, &p.Address, &p.Phone, &p.Email, &p.License, &p.Website,
		&p.LogoKey, &p.Timezone, &p.UpdatedAt)
	return p, err
}
