package repository

import (
	"context"
	"errors"
	"fmt"

	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repo) InsertDocument(ctx context.Context, tenantID uuid.UUID, doc domain.Document) (domain.Document, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	created, err := scanDocument(r.q.QueryRow(ctx, insertDocumentQuery,
		doc.ID, doc.JobID, tenantID, doc.Title, string(doc.Category), doc.ObjectKey,
		doc.ContentType, doc.SizeBytes, doc.PageCount,
	))
	if err != nil {
		return domain.Document{}, fmt.Errorf("insert document: %w", err)
	}
	return created, nil
}

func (r *Repo) ListDocuments(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Document, error) {
	rows, err := r.q.Query(ctx, listDocumentsQuery, jobID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *Repo) GetDocument(ctx context.Context, tenantID, jobID, documentID uuid.UUID) (domain.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, getDocumentQuery, documentID, jobID, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Document{}, apperr.NotFound(documentNotFoundMessage)
		}
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		d        domain.Document
		category string
	)
	if err := row.Scan(&d.ID, &d.JobID, &d.Title, &category, &d.ObjectKey, &d.ContentType, &d.SizeBytes, &d.PageCount, &d.CreatedAt); err != nil {
		return domain.Document{}, err
	}
	d.Category = domain.DocumentCategory(category)
	return d, nil
}
