package handler

import (
	"context"
	"net/http"

	"serveportal_backend/internal/notification/inapp"
	"serveportal_backend/internal/notification/settings"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// SettingsStore reads and writes the notification switches of a company.
type SettingsStore interface {
	Get(ctx context.Context, tenantID uuid.UUID) (settings.Settings, error)
	Save(ctx context.Context, tenantID uuid.UUID, s settings.Settings) (settings.Settings, error)
}

// SettingsRequest replaces the notification switches of a company.
type SettingsRequest struct {
	EmailOnAssignment  *bool `json:"emailOnAssignment" validate:"required"`
	AutoSendAffidavits *bool `json:"autoSendAffidavits" validate:"required"`
}

type HTTPHandler struct {
	svc      *inapp.Service
	settings SettingsStore
	val      *validator.Validator
}

func NewHTTPHandler(svc *inapp.Service, store SettingsStore, val *validator.Validator) *HTTPHandler {
	return &HTTPHandler{svc: svc, settings: store, val: val}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/unread", h.CountUnread)
	rg.PATCH("/:id/read", h.MarkRead)
	rg.PATCH("/read-all", h.MarkAllRead)
	rg.DELETE("/:id", h.Delete)
}

func (h *HTTPHandler) RegisterSettingsRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetSettings)
	rg.PUT("", h.UpdateSettings)
}

// ListRequest pages through the caller's inbox.
type ListRequest struct {
	Page       int  `form:"page" validate:"omitempty,min=1"`
	Limit      int  `form:"limit" validate:"omitempty,min=1,max=100"`
	UnreadOnly bool `form:"unread"`
}

// List handles GET /api/v1/notifications
func (h *HTTPHandler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	to, ok := recipient(c)
	if !ok {
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), to, req.Page, req.Limit, req.UnreadOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items, "total": total, "page": max(req.Page, 1)})
}

// CountUnread handles GET /api/v1/notifications/unread
func (h *HTTPHandler) CountUnread(c *gin.Context) {
	to, ok := recipient(c)
	if !ok {
		return
	}
	count, err := h.svc.CountUnread(c.Request.Context(), to)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"count": count})
}

// MarkRead handles PATCH /api/v1/notifications/:id/read
func (h *HTTPHandler) MarkRead(c *gin.Context) {
	to, id, ok := recipientAndID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), to, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead handles PATCH /api/v1/notifications/read-all
func (h *HTTPHandler) MarkAllRead(c *gin.Context) {
	to, ok := recipient(c)
	if !ok {
		return
	}
	updated, err := h.svc.MarkAllRead(c.Request.Context(), to)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"updated": updated})
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *HTTPHandler) Delete(c *gin.Context) {
	to, id, ok := recipientAndID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), to, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func recipient(c *gin.Context) (inapp.Recipient, bool) {
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return inapp.Recipient{}, false
	}
	return inapp.Recipient{TenantID: tenantID, UserID: identity.UserID()}, true
}

func recipientAndID(c *gin.Context) (inapp.Recipient, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return inapp.Recipient{}, uuid.Nil, false
	}
	to, ok := recipient(c)
	return to, id, ok
}

// GetSettings handles GET /api/v1/notification-settings
func (h *HTTPHandler) GetSettings(c *gin.Context) {
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.settings.Get(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateSettings handles PUT /api/v1/notification-settings
func (h *HTTPHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.settings.Save(c.Request.Context(), tenantID, settings.Settings{
		EmailOnAssignment:  *req.EmailOnAssignment,
		AutoSendAffidavits: *req.AutoSendAffidavits,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
