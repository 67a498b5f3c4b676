package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/entities"
)

// Context keys for the caller's account
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyLogin  = "auth_login"
	ContextKeyRole   = "auth_role"
)

// Middleware resolves the caller's role from the session and enforces the
// command permissions.
type Middleware struct {
	sessions *SessionManager
}

// NewMiddleware creates the middleware. A nil session manager treats every
// caller as a guest.
func NewMiddleware(sessions *SessionManager) *Middleware {
	return &Middleware{sessions: sessions}
}

// Handler stores the caller's id, login and role in the gin context.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entities.RoleGuest
		if m.sessions != nil {
			if data := m.sessions.GetSessionData(c.Request); data != nil {
				c.Set(ContextKeyUserID, data.UserID)
				c.Set(ContextKeyLogin, data.Login)
				role = data.Role
			}
		}
		c.Set(ContextKeyRole, role)
		c.Next()
	}
}

// Require aborts unless the caller's role may run cmd. Guests get 401 so the
// client can log in; authenticated callers get 403.
func (m *Middleware) Require(cmd Command) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if IsAllowed(role, cmd) {
			c.Next()
			return
		}
		if role == entities.RoleGuest {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you are not allowed to perform this operation"})
	}
}

// GetUserID returns the caller's account id, 0 for guests.
func GetUserID(c *gin.Context) uint {
	if id, ok := c.Get(ContextKeyUserID); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

func GetLogin(c *gin.Context) string {
	return c.GetString(ContextKeyLogin)
}

// GetRole returns the caller's role, GUEST when none was resolved.
func GetRole(c *gin.Context) entities.Role {
	if r, ok := c.Get(ContextKeyRole); ok {
		if role, ok := r.(entities.Role); ok && role != "" {
			return role
		}
	}
	return entities.RoleGuest
}
