package http

import (
	"github.com/mrlokans/telecom/internal/auth"
	"github.com/mrlokans/telecom/internal/logger"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Persistence
	Subscribers SubscriberStore
	Services    ServiceStore
	Invoices    InvoiceStore
	Database    Pinger

	// Demo data reset
	Seeder Seeder

	// Authentication. A nil SessionManager treats every caller as a guest.
	AuthService    Authenticator
	SessionManager *auth.SessionManager
	LoginLimiter   *auth.LoginLimiter

	// CSRF protection is enabled when a secret is set.
	CSRFSecret    []byte
	SecureCookies bool

	// Request logging through gin.Logger
	RequestLogging bool

	Version string
	Logger  *logger.Logger
}
