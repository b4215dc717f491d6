package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repo) ListAttempts(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Attempt, error) {
	rows, err := r.q.Query(ctx, listAttemptsQuery, jobID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.Attempt, 0)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

func (r *Repo) GetAttempt(ctx context.Context, tenantID, jobID, attemptID uuid.UUID) (domain.Attempt, error) {
	a, err := scanAttempt(r.q.QueryRow(ctx, getAttemptQuery, attemptID, jobID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attempt{}, apperr.NotFound(attemptNotFoundMessage)
		}
		return domain.Attempt{}, fmt.Errorf("get attempt: %w", err)
	}
	return a, nil
}

func (r *Repo) InsertAttempt(ctx context.Context, tenantID uuid.UUID, a domain.Attempt) (domain.Attempt, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	args, err := attemptArgs(tenantID, a)
	if err != nil {
		return domain.Attempt{}, err
	}
	created, err := scanAttempt(r.q.QueryRow(ctx, insertAttemptQuery, args...))
	if err != nil {
		return domain.Attempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	return created, nil
}

func (r *Repo) UpdateAttempt(ctx context.Context, tenantID uuid.UUID, a domain.Attempt) (domain.Attempt, error) {
	args, err := attemptArgs(tenantID, a)
	if err != nil {
		return domain.Attempt{}, err
	}
	updated, err := scanAttempt(r.q.QueryRow(ctx, updateAttemptQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Attempt{}, apperr.NotFound(attemptNotFoundMessage)
		}
		return domain.Attempt{}, fmt.Errorf("update attempt: %w", err)
	}
	return updated, nil
}

func (r *Repo) ListUntaggedAttempts(ctx context.Context, limit int) ([]UntaggedAttempt, error) {
	rows, err := r.q.Query(ctx, listUntaggedAttemptsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list untagged attempts: %w", err)
	}
	defer rows.Close()

	out := make([]UntaggedAttempt, 0)
	for rows.Next() {
		var item UntaggedAttempt
		a, err := scanAttemptWithPrefix(rows, &item.TenantID)
		if err != nil {
			return nil, fmt.Errorf("scan untagged attempt: %w", err)
		}
		item.Attempt = a
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate untagged attempts: %w", err)
	}
	return out, nil
}

func (r *Repo) SetAttemptMethod(ctx context.Context, tenantID, attemptID uuid.UUID, method domain.ServiceMethod) error {
	tag, err := r.q.Exec(ctx, setAttemptMethodQuery, attemptID, tenantID, string(method))
	if err != nil {
		return fmt.Errorf("set attempt method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(attemptNotFoundMessage)
	}
	return nil
}

func attemptArgs(tenantID uuid.UUID, a domain.Attempt) ([]any, error) {
	personServed, err := json.Marshal(a.PersonServed)
	if err != nil {
		return nil, fmt.Errorf("encode person served: %w", err)
	}
	var lat, lon, accuracy *float64
	if a.GPS != nil {
		lat, lon, accuracy = &a.GPS.Latitude, &a.GPS.Longitude, &a.GPS.Accuracy
	}
	files := a.Files
	if files == nil {
		files = []string{}
	}
	return []any{
		a.ID, a.JobID, tenantID, string(a.Status), a.AttemptDate, a.ServiceTypeDetail,
		string(a.ServiceMethod), personServed, lat, lon, accuracy, a.ServerID, a.ServerName,
		a.Address, a.Notes, files,
	}, nil
}

func scanAttempt(row pgx.Row) (domain.Attempt, error) {
	return scanAttemptWithPrefix(row)
}

// scanAttemptWithPrefix scans leading extra columns into prefix before the attempt columns.
func scanAttemptWithPrefix(row pgx.Row, prefix ...any) (domain.Attempt, error) {
	var (
		a                  domain.Attempt
		status, method     string
		personServed       []byte
		lat, lon, accuracy *float64
	)
	dest := append(prefix,
		&a.ID, &a.JobID, &status, &a.AttemptDate, &a.ServiceTypeDetail, &method, &personServed,
		&lat, &lon, &accuracy, &a.ServerID, &a.ServerName, &a.Address, &a.Notes, &a.Files, &a.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return domain.Attempt{}, err
	}
	a.Status = domain.AttemptStatus(status)
	a.ServiceMethod = domain.ServiceMethod(method)
	if lat != nil && lon != nil {
		a.GPS = &domain.GPS{Latitude: *lat, Longitude: *lon}
		if accuracy != nil {
			a.GPS.Accuracy = *accuracy
		}
	}
	if len(personServed) > 0 {
		if err := json.Unmarshal(personServed, &a.PersonServed); err != nil {
			return domain.Attempt{}, fmt.Errorf("decode person served: %w", err)
		}
	}
	return a, nil
}
