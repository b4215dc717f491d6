package inapp

import (
	"context"
	"fmt"
	"time"

	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Recipient addresses one user's inbox. Every query filters on both ids so a
// user id reused across companies never leaks notifications.
type Recipient struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

// Notification is one inbox entry.
type Notification struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"userId" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	ResourceID   *uuid.UUID `json:"resourceId,omitempty" db:"resource_id"`
	ResourceType *string    `json:"resourceType,omitempty" db:"resource_type"`
	Category     string     `json:"category" db:"category"`
	IsRead       bool       `json:"isRead" db:"is_read"`
	ReadAt       *time.Time `json:"readAt,omitempty" db:"read_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type CreateParams struct {
	Recipient    Recipient
	Title        string
	Content      string
	ResourceID   *uuid.UUID
	ResourceType *string
	Category     string
}

// ListFilter pages through an inbox, newest first.
type ListFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

const notificationColumns = `id, user_id, title, content, resource_id, resource_type, category, is_read, read_at, created_at`

// Repository keeps notifications in in_app_notifications.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (Notification, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO in_app_notifications (company_id, user_id, title, content, resource_id, resource_type, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+notificationColumns,
		p.Recipient.TenantID, p.Recipient.UserID, p.Title, p.Content, p.ResourceID, p.ResourceType, p.Category,
	)
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	n, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Notification])
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (r *Repository) List(ctx context.Context, to Recipient, f ListFilter) ([]Notification, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM in_app_notifications
		WHERE company_id = $1 AND user_id = $2 AND (NOT $3 OR is_read = FALSE)`,
		to.TenantID, to.UserID, f.UnreadOnly,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM in_app_notifications
		WHERE company_id = $1 AND user_id = $2 AND (NOT $3 OR is_read = FALSE)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`,
		to.TenantID, to.UserID, f.UnreadOnly, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[Notification])
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return items, total, nil
}

func (r *Repository) CountUnread(ctx context.Context, to Recipient) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM in_app_notifications
		WHERE company_id = $1 AND user_id = $2 AND is_read = FALSE`,
		to.TenantID, to.UserID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *Repository) MarkRead(ctx context.Context, to Recipient, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE in_app_notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND company_id = $2 AND user_id = $3`,
		id, to.TenantID, to.UserID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(msgNotificationNotFound)
	}
	return nil
}

// MarkAllRead returns how many notifications changed.
func (r *Repository) MarkAllRead(ctx context.Context, to Recipient) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE in_app_notifications
		SET is_read = TRUE, read_at = now()
		WHERE company_id = $1 AND user_id = $2 AND is_read = FALSE`,
		to.TenantID, to.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) Delete(ctx context.Context, to Recipient, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM in_app_notifications
		WHERE id = $1 AND company_id = $2 AND user_id = $3`,
		id, to.TenantID, to.UserID,
	)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(msgNotificationNotFound)
	}
	return nil
}
