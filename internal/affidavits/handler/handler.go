package handler

import (
	"net/http"

	"serveportal_backend/internal/affidavits/domain"
	"serveportal_backend/internal/affidavits/repository"
	"serveportal_backend/internal/affidavits/service"
	"serveportal_backend/internal/affidavits/transport"
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

// Handler handles HTTP requests for affidavits and affidavit templates.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new affidavits handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterJobRoutes registers the per-job affidavit routes on the /jobs group.
// render throttles generation, which renders PDFs.
func (h *Handler) RegisterJobRoutes(rg *gin.RouterGroup, render gin.HandlerFunc) {
	rg.GET("/:id/affidavits", h.List)

	staff := rg.Group("", httpkit.StaffOnly())
	staff.POST("/:id/affidavit/prepare", h.Prepare)
	staff.GET("/:id/affidavit/draft", h.GetDraft)
	staff.PUT("/:id/affidavit/draft", h.SaveDraft)
	staff.POST("/:id/affidavit/signature/upload-url", h.SignatureUploadURL)
	staff.POST("/:id/affidavit/generate", render, h.Generate)
}

// RegisterAffidavitRoutes registers routes addressing one affidavit.
func (h *Handler) RegisterAffidavitRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id", httpkit.StaffOnly(), h.Get)
	rg.GET("/:id/download", h.DownloadURL)
	rg.POST("/:id/send", httpkit.StaffOnly(), h.Send)
}

// RegisterTemplateRoutes registers the template library routes.
func (h *Handler) RegisterTemplateRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListTemplates)

	staff := rg.Group("", httpkit.StaffOnly())
	staff.POST("", h.CreateTemplate)
	staff.PUT("/:id", h.UpdateTemplate)
	staff.DELETE("/:id", h.DeleteTemplate)
}

// RegisterPublicRoutes registers the unauthenticated verification lookup.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/verify/:code", h.Verify)
}

// Prepare handles POST /api/v1/jobs/:id/affidavit/prepare
func (h *Handler) Prepare(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.PrepareRequest
	if !h.bindOptional(c, &req) {
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Prepare(c.Request.Context(), tenantID, jobID, currentUser(identity), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetDraft handles GET /api/v1/jobs/:id/affidavit/draft
func (h *Handler) GetDraft(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetDraft(c.Request.Context(), tenantID, jobID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SaveDraft handles PUT /api/v1/jobs/:id/affidavit/draft
func (h *Handler) SaveDraft(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.SaveDraftRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.SaveDraft(c.Request.Context(), tenantID, jobID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SignatureUploadURL handles POST /api/v1/jobs/:id/affidavit/signature/upload-url
func (h *Handler) SignatureUploadURL(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.SignatureUploadRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.SignatureUploadURL(c.Request.Context(), tenantID, jobID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Generate handles POST /api/v1/jobs/:id/affidavit/generate. A body, when
// present, is saved as the draft before generating.
func (h *Handler) Generate(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req *transport.SaveDraftRequest
	if c.Request.ContentLength > 0 {
		req = &transport.SaveDraftRequest{}
		if !h.bind(c, req) {
			return
		}
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), tenantID, jobID, identity.UserID(), currentUser(identity), req)
	if httpkit.HandleError(c, err) {
		return
	}
	status := http.StatusCreated
	if result.Status != string(repository.StatusGenerated) {
		status = http.StatusAccepted
	}
	httpkit.JSON(c, status, result)
}

// List handles GET /api/v1/jobs/:id/affidavits
func (h *Handler) List(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), tenantID, jobID, identity.ClientID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": result})
}

// Get handles GET /api/v1/affidavits/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DownloadURL handles GET /api/v1/affidavits/:id/download
func (h *Handler) DownloadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.DownloadURL(c.Request.Context(), tenantID, id, identity.ClientID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Send handles POST /api/v1/affidavits/:id/send
func (h *Handler) Send(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.SendAffidavitRequest
	if !h.bindOptional(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Send(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Verify handles GET /api/v1/affidavits/verify/:code
func (h *Handler) Verify(c *gin.Context) {
	result, err := h.svc.Verify(c.Request.Context(), c.Param("code"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListTemplates handles GET /api/v1/affidavit-templates. With ?jobId the
// merged candidates for that job are returned; otherwise the library grouped
// by origin.
func (h *Handler) ListTemplates(c *gin.Context) {
	var req transport.ListTemplatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	if req.JobID != "" {
		result, err := h.svc.Candidates(c.Request.Context(), tenantID, uuid.MustParse(req.JobID), identity.ClientID())
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, gin.H{"items": result})
		return
	}
	if identity.ClientID() != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, map[string]string{"jobId": "required"})
		return
	}

	result, err := h.svc.Library(c.Request.Context(), tenantID, req.IncludeInactive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateTemplate handles POST /api/v1/affidavit-templates
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req transport.TemplateRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.CreateTemplate(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// UpdateTemplate handles PUT /api/v1/affidavit-templates/:id
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.TemplateRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateTemplate(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteTemplate handles DELETE /api/v1/affidavit-templates/:id
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteTemplate(c.Request.Context(), tenantID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func currentUser(identity httpkit.Identity) domain.CurrentUser {
	return domain.CurrentUser{Name: identity.DisplayName(), Email: identity.Email()}
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

// bindOptional accepts an empty body as the zero request.
func (h *Handler) bindOptional(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return h.bind(c, req)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
