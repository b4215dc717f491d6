package handler

import (
	"net/http"

	"serveportal_backend/internal/jobs/service"
	"serveportal_backend/internal/jobs/transport"
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

// Handler handles HTTP requests for jobs and court cases.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new jobs handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the job routes. Portal clients may create and read
// their own jobs; everything else is staff only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)

	staff := rg.Group("", httpkit.StaffOnly())
	staff.PATCH("/:id/assignment", h.Assign)
	staff.PATCH("/:id/status", h.UpdateStatus)
	staff.POST("/:id/attempts", h.LogAttempt)
	staff.PUT("/:id/attempts/:attemptId", h.EditAttempt)
	staff.POST("/:id/attempts/:attemptId/photos", h.PhotoUploadURL)
	staff.POST("/:id/attempts/:attemptId/photos/complete", h.CompletePhoto)
	staff.GET("/:id/attempts/:attemptId/photos/download", h.PhotoDownloadURL)
	staff.GET("/:id/documents", h.ListDocuments)
	staff.POST("/:id/documents/upload-url", h.DocumentUploadURL)
	staff.POST("/:id/documents", h.CreateDocument)
	staff.GET("/:id/documents/:documentId/download", h.DocumentDownloadURL)
}

// RegisterCourtCaseRoutes registers the court case routes.
func (h *Handler) RegisterCourtCaseRoutes(rg *gin.RouterGroup) {
	rg.Use(httpkit.StaffOnly())
	rg.POST("", h.CreateCourtCase)
	rg.GET("/:id", h.GetCourtCase)
	rg.PUT("/:id", h.UpdateCourtCase)
}

// List handles GET /api/v1/jobs
func (h *Handler) List(c *gin.Context) {
	var req transport.ListJobsRequest
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

	result, err := h.svc.List(c.Request.Context(), tenantID, identity.ClientID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create handles POST /api/v1/jobs
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateJobRequest
	if !h.bind(c, &req) {
		return
	}

	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), tenantID, identity.ClientID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Get handles GET /api/v1/jobs/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), tenantID, id, identity.ClientID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Assign handles PATCH /api/v1/jobs/:id/assignment
func (h *Handler) Assign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.AssignJobRequest
	if !h.bind(c, &req) {
		return
	}
	identity, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.Assign(c.Request.Context(), tenantID, id, identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateStatus handles PATCH /api/v1/jobs/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.UpdateJobStatusRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateStatus(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// LogAttempt handles POST /api/v1/jobs/:id/attempts
func (h *Handler) LogAttempt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.AttemptRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.LogAttempt(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// EditAttempt handles PUT /api/v1/jobs/:id/attempts/:attemptId
func (h *Handler) EditAttempt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attemptID, ok := parseID(c, "attemptId")
	if !ok {
		return
	}
	var req transport.AttemptRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.EditAttempt(c.Request.Context(), tenantID, id, attemptID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PhotoUploadURL handles POST /api/v1/jobs/:id/attempts/:attemptId/photos
func (h *Handler) PhotoUploadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attemptID, ok := parseID(c, "attemptId")
	if !ok {
		return
	}
	var req transport.PhotoUploadRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.PhotoUploadURL(c.Request.Context(), tenantID, id, attemptID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CompletePhoto handles POST /api/v1/jobs/:id/attempts/:attemptId/photos/complete
func (h *Handler) CompletePhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attemptID, ok := parseID(c, "attemptId")
	if !ok {
		return
	}
	var req transport.PhotoCompleteRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.CompletePhoto(c.Request.Context(), tenantID, id, attemptID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// PhotoDownloadURL handles GET /api/v1/jobs/:id/attempts/:attemptId/photos/download?key=
func (h *Handler) PhotoDownloadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attemptID, ok := parseID(c, "attemptId")
	if !ok {
		return
	}
	key := c.Query("key")
	if key == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "key is required")
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.PhotoDownloadURL(c.Request.Context(), tenantID, id, attemptID, key)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListDocuments handles GET /api/v1/jobs/:id/documents
func (h *Handler) ListDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.ListDocuments(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DocumentUploadURL handles POST /api/v1/jobs/:id/documents/upload-url
func (h *Handler) DocumentUploadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.DocumentUploadRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.DocumentUploadURL(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateDocument handles POST /api/v1/jobs/:id/documents
func (h *Handler) CreateDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.CreateDocumentRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.CreateDocument(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// DocumentDownloadURL handles GET /api/v1/jobs/:id/documents/:documentId/download
func (h *Handler) DocumentDownloadURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	documentID, ok := parseID(c, "documentId")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.DocumentDownloadURL(c.Request.Context(), tenantID, id, documentID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateCourtCase handles POST /api/v1/court-cases
func (h *Handler) CreateCourtCase(c *gin.Context) {
	var req transport.CourtCaseRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.CreateCourtCase(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// GetCourtCase handles GET /api/v1/court-cases/:id
func (h *Handler) GetCourtCase(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetCourtCase(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateCourtCase handles PUT /api/v1/court-cases/:id
func (h *Handler) UpdateCourtCase(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req transport.CourtCaseRequest
	if !h.bind(c, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.UpdateCourtCase(c.Request.Context(), tenantID, id, req)
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

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
