package handler

import (
	"net/http"

	"serveportal_backend/internal/employees/service"
	"serveportal_backend/internal/employees/transport"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidID        = "invalid employee id"
	msgValidationFailed = "validation failed"
)

// Handler serves the staff roster: servers and office users of a company.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Deactivate)
}

// List handles GET /employees
func (h *Handler) List(c *gin.Context) {
	var req transport.ListEmployeesRequest
	if !h.bind(c, c.ShouldBindQuery, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	page, err := h.svc.List(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, page)
}

// Create handles POST /employees
func (h *Handler) Create(c *gin.Context) {
	var req transport.EmployeeRequest
	if !h.bind(c, c.ShouldBindJSON, &req) {
		return
	}
	_, tenantID, ok := httpkit.MustGetTenant(c)
	if !ok {
		return
	}

	employee, err := h.svc.Create(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, employee)
}

// Get handles GET /employees/:id
func (h *Handler) Get(c *gin.Context) {
	id, tenantID, ok := target(c)
	if !ok {
		return
	}

	employee, err := h.svc.Get(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, employee)
}

// Update handles PUT /employees/:id
func (h *Handler) Update(c *gin.Context) {
	id, tenantID, ok := target(c)
	if !ok {
		return
	}
	var req transport.EmployeeRequest
	if !h.bind(c, c.ShouldBindJSON, &req) {
		return
	}

	employee, err := h.svc.Update(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, employee)
}

// Deactivate handles DELETE /employees/:id. The row stays because past
// attempts still name the server.
func (h *Handler) Deactivate(c *gin.Context) {
	id, tenantID, ok := target(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Deactivate(c.Request.Context(), tenantID, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bind(c *gin.Context, decode func(any) error, req any) bool {
	if err := decode(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

// target resolves the :id path parameter and the caller's company.
func target(c *gin.Context) (id, tenantID uuid.UUID, ok bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, uuid.Nil, false
	}
	_, tenantID, ok = httpkit.MustGetTenant(c)
	return id, tenantID, ok
}
