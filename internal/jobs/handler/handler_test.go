package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/jobs/domain"
	"serveportal_backend/internal/jobs/service"
	"serveportal_backend/platform/events"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(withTenant bool, clientID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")
	val := validator.New()
	_ = val.RegisterValidation("jobstatus", validator.OneOf(domain.JobStatusValues()...))
	_ = val.RegisterValidation("attemptstatus", validator.OneOf(domain.AttemptStatusValues()...))
	_ = val.RegisterValidation("servicemethod", validator.OneOf(domain.ServiceMethodValues()...))

	// The service is never reached by these requests.
	svc := service.New(nil, storage.NewMemoryStorage(0), service.Buckets{Photos: "test", Documents: "test"}, events.NewInMemoryBus(log), log)
	h := New(svc, val)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
		if withTenant {
			c.Set(httpkit.ContextTenantIDKey, uuid.New())
		}
		if clientID != nil {
			c.Set(httpkit.ContextClientIDKey, *clientID)
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/jobs"))
	return r
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	r := newTestRouter(true, nil)
	body := `{"recipientName":"Jane","addresses":[{"street":"1 Main","city":"Chicago","state":"ZZ","zip":"60601","primary":true}]}`
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "usstate") {
		t.Fatalf("expected usstate field error, got %s", w.Body.String())
	}
}

func TestStatusRejectsUnknownValue(t *testing.T) {
	r := newTestRouter(true, nil)
	req := httptest.NewRequest(http.MethodPatch, "/jobs/"+uuid.NewString()+"/status", strings.NewReader(`{"status":"lost"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestInvalidJobIDIsBadRequest(t *testing.T) {
	r := newTestRouter(true, nil)
	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPortalClientsCannotLogAttempts(t *testing.T) {
	client := uuid.New()
	r := newTestRouter(true, &client)
	req := httptest.NewRequest(http.MethodPost, "/jobs/"+uuid.NewString()+"/attempts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestMissingTenantIsBadRequest(t *testing.T) {
	r := newTestRouter(false, nil)
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
