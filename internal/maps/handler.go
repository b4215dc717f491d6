package maps

import (
	"errors"
	"net/http"

	"serveportal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgLookupUnavailable = "address lookup service unavailable"

// Handler serves address suggestions for job forms and reverse lookups for
// attempt GPS fixes.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// LookupAddress handles GET /maps/address-lookup?q=
func (h *Handler) LookupAddress(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query parameter q needs at least 3 characters", nil)
		return
	}

	suggestions, err := h.svc.SearchAddress(c.Request.Context(), req.Query)
	if err != nil {
		h.lookupFailed(c, err)
		return
	}
	httpkit.OK(c, suggestions)
}

// ReverseLookup handles GET /maps/reverse?lat=&lon=
func (h *Handler) ReverseLookup(c *gin.Context) {
	var req ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lon must be valid coordinates", nil)
		return
	}

	suggestion, err := h.svc.Reverse(c.Request.Context(), *req.Lat, *req.Lon)
	switch {
	case errors.Is(err, ErrNoAddress):
		httpkit.Error(c, http.StatusNotFound, "no address found at this location", nil)
	case err != nil:
		h.lookupFailed(c, err)
	default:
		httpkit.OK(c, suggestion)
	}
}

func (h *Handler) lookupFailed(c *gin.Context, err error) {
	_ = c.Error(err)
	httpkit.Error(c, http.StatusBadGateway, msgLookupUnavailable, nil)
}
