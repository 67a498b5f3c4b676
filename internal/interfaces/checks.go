package interfaces

// Compile-time checks that the concrete types satisfy the interfaces their
// consumers declare.

import (
	"github.com/mrlokans/telecom/internal/auth"
	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/database/invoices"
	"github.com/mrlokans/telecom/internal/database/services"
	"github.com/mrlokans/telecom/internal/database/subscribers"
	"github.com/mrlokans/telecom/internal/database/users"
	"github.com/mrlokans/telecom/internal/http"
	"github.com/mrlokans/telecom/internal/scheduler"
	"github.com/mrlokans/telecom/internal/seed"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.SubscriberStore = (*subscribers.Repository)(nil)
var _ http.ServiceStore = (*services.Repository)(nil)
var _ http.InvoiceStore = (*invoices.Repository)(nil)
var _ auth.UserStore = (*users.Repository)(nil)
var _ http.Pinger = (*database.SessionFactory)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.Authenticator = (*auth.Service)(nil)
var _ http.Seeder = (*seed.Seeder)(nil)
var _ seed.PasswordHasher = (*auth.Hasher)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

var _ scheduler.Seeder = (*seed.Seeder)(nil)
var _ scheduler.Pruner = (*auth.LoginLimiter)(nil)
