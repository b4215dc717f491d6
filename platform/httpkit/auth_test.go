package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

type jwtConfig struct{}

func (jwtConfig) GetJWTAccessSecret() string { return testSecret }

func signToken(t *testing.T, method jwt.SigningMethod, claims AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func validClaims(userID, tenantID uuid.UUID) AccessClaims {
	return AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Type:     accessTokenType,
		TenantID: tenantID.String(),
		Name:     " Dana Server ",
	}
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", AuthRequired(jwtConfig{}), func(c *gin.Context) {
		identity, tenantID, ok := MustGetTenant(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":   identity.UserID(),
			"tenant": tenantID,
			"name":   identity.DisplayName(),
			"client": identity.ClientID() != nil,
		})
	})
	engine.GET("/staff", AuthRequired(jwtConfig{}), StaffOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func doRequest(engine *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	engine := newAuthEngine()
	token := signToken(t, jwt.SigningMethodHS256, validClaims(uuid.New(), uuid.New()))

	rec := doRequest(engine, "/me", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(engine, "/me?token="+token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected query token to be accepted, got %d", rec.Code)
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	engine := newAuthEngine()
	userID, tenantID := uuid.New(), uuid.New()

	refresh := validClaims(userID, tenantID)
	refresh.Type = "refresh"

	expired := validClaims(userID, tenantID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims(userID, tenantID)
	noExpiry.ExpiresAt = nil

	orphanClient := validClaims(userID, tenantID)
	orphanClient.TenantID = ""
	orphanClient.ClientID = uuid.NewString()

	cases := map[string]string{
		"missing":       "",
		"refresh token": "Bearer " + signToken(t, jwt.SigningMethodHS256, refresh),
		"expired":       "Bearer " + signToken(t, jwt.SigningMethodHS256, expired),
		"no expiry":     "Bearer " + signToken(t, jwt.SigningMethodHS256, noExpiry),
		"wrong alg":     "Bearer " + signToken(t, jwt.SigningMethodHS512, validClaims(userID, tenantID)),
		"client only":   "Bearer " + signToken(t, jwt.SigningMethodHS256, orphanClient),
		"basic scheme":  "Basic abc",
	}
	for name, header := range cases {
		if rec := doRequest(engine, "/me", header); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

func TestStaffOnlyRejectsClientTokens(t *testing.T) {
	engine := newAuthEngine()
	claims := validClaims(uuid.New(), uuid.New())
	claims.ClientID = uuid.NewString()
	token := signToken(t, jwt.SigningMethodHS256, claims)

	if rec := doRequest(engine, "/staff", "Bearer "+token); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client token, got %d", rec.Code)
	}

	staff := signToken(t, jwt.SigningMethodHS256, validClaims(uuid.New(), uuid.New()))
	if rec := doRequest(engine, "/staff", "Bearer "+staff); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for staff token, got %d", rec.Code)
	}
}

func TestIPRateLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(rate.Every(time.Minute), 1, nil)
	l.now = func() time.Time { return now }

	if !l.allow("10.0.0.1") {
		t.Fatal("first request must pass")
	}
	if l.allow("10.0.0.1") {
		t.Fatal("second request must be limited")
	}

	now = now.Add(limiterIdleTTL + time.Second)
	l.allow("10.0.0.2")
	if _, ok := l.limiters["10.0.0.1"]; ok {
		t.Fatal("expected idle limiter to be evicted")
	}
}
