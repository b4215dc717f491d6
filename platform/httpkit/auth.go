package httpkit

import (
	"errors"
	"net/http"
	"strings"

	"serveportal_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Gin context keys set by AuthRequired.
const (
	ContextUserIDKey      = "userID"
	ContextRolesKey       = "roles"
	ContextTenantIDKey    = "tenantID"
	ContextClientIDKey    = "clientID"
	ContextDisplayNameKey = "displayName"
	ContextEmailKey       = "email"
)

const (
	errMissingToken = "missing token"
	errInvalidToken = "invalid token"

	accessTokenType = "access"
)

// AccessClaims are the claims of an access token issued by the identity
// provider. ClientID is present on client-portal tokens only.
type AccessClaims struct {
	jwt.RegisteredClaims
	Type     string   `json:"type"`
	TenantID string   `json:"tenant_id,omitempty"`
	ClientID string   `json:"client_id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// AuthRequired verifies the HS256 access token from the Authorization header,
// or from ?token= for EventSource connections that cannot set headers.
func AuthRequired(cfg config.JWTConfig) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return []byte(cfg.GetJWTAccessSecret()), nil }

	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = strings.TrimSpace(c.Query("token"))
		}
		if raw == "" {
			abortUnauthorized(c, errMissingToken)
			return
		}

		var claims AccessClaims
		if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil || claims.Type != accessTokenType {
			abortUnauthorized(c, errInvalidToken)
			return
		}
		if err := setIdentity(c, claims); err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims AccessClaims) error {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return err
	}
	tenantID, err := optionalUUID(claims.TenantID)
	if err != nil {
		return err
	}
	clientID, err := optionalUUID(claims.ClientID)
	if err != nil {
		return err
	}
	if clientID != nil && tenantID == nil {
		return errors.New("client token without tenant")
	}

	c.Set(ContextUserIDKey, userID)
	c.Set(ContextRolesKey, append([]string{}, claims.Roles...))
	if tenantID != nil {
		c.Set(ContextTenantIDKey, *tenantID)
	}
	if clientID != nil {
		c.Set(ContextClientIDKey, *clientID)
	}
	if name := strings.TrimSpace(claims.Name); name != "" {
		c.Set(ContextDisplayNameKey, name)
	}
	if email := strings.TrimSpace(claims.Email); email != "" {
		c.Set(ContextEmailKey, email)
	}
	return nil
}

// StaffOnly rejects client-portal tokens.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, isClient := c.Get(ContextClientIDKey); isClient {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func optionalUUID(value string) (*uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
