package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"serveportal_backend/internal/adapters/storage"
	"serveportal_backend/internal/affidavits/drafts"
	"serveportal_backend/internal/affidavits/service"
	"serveportal_backend/platform/events"
	"serveportal_backend/platform/httpkit"
	"serveportal_backend/platform/logger"
	"serveportal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(clientID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")

	// Only the draft store is reachable from these requests.
	svc := service.New(service.Dependencies{
		Drafts:   drafts.NewMemoryStore(time.Hour),
		Storage:  storage.NewMemoryStorage(10 << 20),
		EventBus: events.NewInMemoryBus(log),
		Log:      log,
	}, service.Options{AffidavitBucket: "affidavits"})
	h := New(svc, validator.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextUserIDKey, uuid.New())
		c.Set(httpkit.ContextTenantIDKey, uuid.New())
		if clientID != nil {
			c.Set(httpkit.ContextClientIDKey, *clientID)
		}
		c.Next()
	})
	h.RegisterJobRoutes(r.Group("/jobs"), func(c *gin.Context) { c.Next() })
	h.RegisterAffidavitRoutes(r.Group("/affidavits"))
	h.RegisterTemplateRoutes(r.Group("/affidavit-templates"))
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInvalidJobIDIsBadRequest(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodPost, "/jobs/not-a-uuid/affidavit/prepare", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPortalClientsCannotPrepare(t *testing.T) {
	client := uuid.New()
	r := newTestRouter(&client)
	for _, path := range []string{"/affidavit/prepare", "/affidavit/generate"} {
		w := serve(r, http.MethodPost, "/jobs/"+uuid.NewString()+path, "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", path, w.Code)
		}
	}
}

func TestGetDraftWithoutSavedDraftIsNotFound(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodGet, "/jobs/"+uuid.NewString()+"/affidavit/draft", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSaveDraftRejectsOffPageSignature(t *testing.T) {
	body := `{"placedSignature":{"page":1,"x":900,"y":10,"width":100,"height":40,"imageKey":"k"}}`
	w := serve(newTestRouter(nil), http.MethodPut, "/jobs/"+uuid.NewString()+"/affidavit/draft", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateMarkupTemplateRequiresBody(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodPost, "/affidavit-templates", `{"name":"Custom","mode":"markup"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Body") {
		t.Fatalf("expected body field error, got %s", w.Body.String())
	}
}

func TestCreateTemplateRejectsUnknownMode(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodPost, "/affidavit-templates", `{"name":"Custom","mode":"docx"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListTemplatesRejectsBadJobID(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodGet, "/affidavit-templates?jobId=nope", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPortalClientsNeedJobForTemplates(t *testing.T) {
	client := uuid.New()
	w := serve(newTestRouter(&client), http.MethodGet, "/affidavit-templates", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSendRejectsInvalidAddress(t *testing.T) {
	w := serve(newTestRouter(nil), http.MethodPost, "/affidavits/"+uuid.NewString()+"/send", `{"to":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPortalClientsCannotSend(t *testing.T) {
	client := uuid.New()
	w := serve(newTestRouter(&client), http.MethodPost, "/affidavits/"+uuid.NewString()+"/send", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
