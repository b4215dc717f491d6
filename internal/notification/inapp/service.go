// Package inapp stores notifications shown in the portal's bell menu.
package inapp

import (
	"context"
	"strings"

	"serveportal_backend/internal/notification/sse"
	"serveportal_backend/platform/apperr"
	"serveportal_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryWarning = "warning"
	CategoryError   = "error"
)

const (
	msgNotificationNotFound = "notification not found"
	msgRecipientRequired    = "tenantId and userId are required"

	defaultPageSize = 20
	maxPageSize     = 100
)

// Store persists notifications.
type Store interface {
	Create(ctx context.Context, p CreateParams) (Notification, error)
	List(ctx context.Context, to Recipient, f ListFilter) ([]Notification, int, error)
	CountUnread(ctx context.Context, to Recipient) (int, error)
	MarkRead(ctx context.Context, to Recipient, id uuid.UUID) error
	MarkAllRead(ctx context.Context, to Recipient) (int64, error)
	Delete(ctx context.Context, to Recipient, id uuid.UUID) error
}

// Service writes notifications and pushes them to connected browsers.
type Service struct {
	repo Store
	sse  *sse.Service
	log  *logger.Logger
}

func NewService(repo Store, live *sse.Service, log *logger.Logger) *Service {
	return &Service{repo: repo, sse: live, log: log}
}

type SendParams struct {
	Recipient    Recipient
	Title        string
	Content      string
	ResourceID   *uuid.UUID
	ResourceType string
	Category     string
}

// Send persists the notification and pushes it over SSE when the user is connected.
func (s *Service) Send(ctx context.Context, p SendParams) error {
	if !p.Recipient.valid() {
		return apperr.Validation(msgRecipientRequired)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	if p.Title == "" || p.Content == "" {
		return apperr.Validation("title and content are required")
	}
	if p.Category == "" {
		p.Category = CategoryInfo
	}

	var resourceType *string
	if p.ResourceType != "" {
		resourceType = &p.ResourceType
	}

	n, err := s.repo.Create(ctx, CreateParams{
		Recipient:    p.Recipient,
		Title:        p.Title,
		Content:      p.Content,
		ResourceID:   p.ResourceID,
		ResourceType: resourceType,
		Category:     p.Category,
	})
	if err != nil {
		s.log.Error("failed to persist in-app notification", "error", err, "userId", p.Recipient.UserID)
		return err
	}

	if s.sse != nil {
		s.sse.Publish(p.Recipient.UserID, sse.Event{
			Type:    sse.EventInAppNotification,
			Message: n.Title,
			Data:    n,
		})
	}
	return nil
}

// List returns one page of the inbox; page is 1-based.
func (s *Service) List(ctx context.Context, to Recipient, page, pageSize int, unreadOnly bool) ([]Notification, int, error) {
	if !to.valid() {
		return nil, 0, apperr.Validation(msgRecipientRequired)
	}
	page = max(page, 1)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	return s.repo.List(ctx, to, ListFilter{
		UnreadOnly: unreadOnly,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
}

func (s *Service) CountUnread(ctx context.Context, to Recipient) (int, error) {
	if !to.valid() {
		return 0, apperr.Validation(msgRecipientRequired)
	}
	return s.repo.CountUnread(ctx, to)
}

func (s *Service) MarkRead(ctx context.Context, to Recipient, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, to, id)
}

func (s *Service) MarkAllRead(ctx context.Context, to Recipient) (int64, error) {
	return s.repo.MarkAllRead(ctx, to)
}

func (s *Service) Delete(ctx context.Context, to Recipient, id uuid.UUID) error {
	return s.repo.Delete(ctx, to, id)
}

func (r Recipient) valid() bool {
	return r.TenantID != uuid.Nil && r.UserID != uuid.Nil
}
