package handler

import (
	"net/http"

	"serveportal_backend/internal/company/service"
	"serveportal_backend/internal/company/transport"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the company profile
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new company handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the company profile routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Get)
	rg.PUT("", h.Update)
	rg.POST("/logo/upload-url", h.LogoUploadURL)
	rg.POST("/logo/complete", h.CompleteLogo)
}

// Get handles GET /api/v1/company
func (h *Handler) Get(c *gin.Context) {
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}
	result, err := h.svc.Get(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update handles PUT /api/v1/company
func (h *Handler) Update(c *gin.Context) {
	var req transport.ProfileRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}
	result, err := h.svc.Update(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// LogoUploadURL handles POST /api/v1/company/logo/upload-url
func (h *Handler) LogoUploadURL(c *gin.Context) {
	var req transport.LogoUploadRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}
	result, err := h.svc.LogoUploadURL(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CompleteLogo handles POST /api/v1/company/logo/complete
func (h *Handler) CompleteLogo(c *gin.Context) {
	var req transport.LogoCompleteRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}
	result, err := h.svc.CompleteLogo(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}
