// Package settings stores the per-company notification switches.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings controls which notifications a company receives.
type Settings struct {
	EmailOnAssignment  bool       `json:"emailOnAssignment"`
	AutoSendAffidavits bool       `json:"autoSendAffidavits"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

// Defaults applies to companies that never saved settings.
func Defaults() Settings {
	return Settings{EmailOnAssignment: true}
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const getSettingsQuery = `
	SELECT email_on_assignment, auto_send_affidavits, updated_at
	FROM notification_settings
	WHERE company_id = $1`

const upsertSettingsQuery = `
	INSERT INTO notification_settings (company_id, email_on_assignment, auto_send_affidavits, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (company_id) DO UPDATE
	SET email_on_assignment = EXCLUDED.email_on_assignment,
		auto_send_affidavits = EXCLUDED.auto_send_affidavits,
		updated_at = now()
	RETURNING email_on_assignment, auto_send_affidavits, updated_at`

func (r *Repository) Get(ctx context.Context, tenantID uuid.UUID) (Settings, error) {
	var (
		s         Settings
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, getSettingsQuery, tenantID).Scan(&s.EmailOnAssignment, &s.AutoSendAffidavits, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("get notification settings: %w", err)
	}
	s.UpdatedAt = &updatedAt
	return s, nil
}

func (r *Repository) Save(ctx context.Context, tenantID uuid.UUID, s Settings) (Settings, error) {
	var (
		saved     Settings
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, upsertSettingsQuery, tenantID, s.EmailOnAssignment, s.AutoSendAffidavits).
		Scan(&saved.EmailOnAssignment, &saved.AutoSendAffidavits, &updatedAt)
	if err != nil {
		return Settings{}, fmt.Errorf("save notification settings: %w", err)
	}
	saved.UpdatedAt = &updatedAt
	return saved, nil
}
