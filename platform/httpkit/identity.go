package httpkit

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity is the caller as AuthRequired left it on the context. Handlers read
// it instead of the raw context keys.
type Identity interface {
	UserID() uuid.UUID
	// TenantID is the process-serving company the caller acts for.
	TenantID() *uuid.UUID
	// ClientID is set for client-portal users only.
	ClientID() *uuid.UUID
	DisplayName() string
	Email() string
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
}

type identity struct {
	userID      uuid.UUID
	tenantID    *uuid.UUID
	clientID    *uuid.UUID
	displayName string
	email       string
	roles       []string
}

func (i *identity) UserID() uuid.UUID        { return i.userID }
func (i *identity) TenantID() *uuid.UUID     { return i.tenantID }
func (i *identity) ClientID() *uuid.UUID     { return i.clientID }
func (i *identity) DisplayName() string      { return i.displayName }
func (i *identity) Email() string            { return i.email }
func (i *identity) Roles() []string          { return i.roles }
func (i *identity) HasRole(role string) bool { return slices.Contains(i.roles, role) }
func (i *identity) IsAuthenticated() bool    { return i.userID != uuid.Nil }

// GetIdentity reads the caller from the context. Without AuthRequired in the
// chain the identity is unauthenticated.
func GetIdentity(c *gin.Context) Identity {
	userID, ok := contextUUID(c, ContextUserIDKey)
	if !ok {
		return &identity{}
	}
	id := &identity{
		userID:      userID,
		displayName: c.GetString(ContextDisplayNameKey),
		email:       c.GetString(ContextEmailKey),
		roles:       c.GetStringSlice(ContextRolesKey),
	}
	if tenantID, ok := contextUUID(c, ContextTenantIDKey); ok {
		id.tenantID = &tenantID
	}
	if clientID, ok := contextUUID(c, ContextClientIDKey); ok {
		id.clientID = &clientID
	}
	return id
}

func contextUUID(c *gin.Context, key string) (uuid.UUID, bool) {
	v, ok := c.Get(key)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// MustGetIdentity aborts with 401 and returns nil for anonymous callers.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		abortUnauthorized(c, "unauthorized")
		return nil
	}
	return id
}

// MustGetTenant returns the caller and the company they act for. The response
// is already written when ok is false.
func MustGetTenant(c *gin.Context) (id Identity, tenantID uuid.UUID, ok bool) {
	if id = MustGetIdentity(c); id == nil {
		return nil, uuid.Nil, false
	}
	if t := id.TenantID(); t != nil {
		return id, *t, true
	}
	Error(c, http.StatusBadRequest, "tenant ID is required", nil)
	return nil, uuid.Nil, false
}
