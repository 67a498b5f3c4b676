// Package interfaces lists the abstractions the layers of the back office
// depend on and checks at compile time that the concrete types satisfy them.
//
// # Data Access Interfaces
//
//   - SubscriberStore, ServiceStore, InvoiceStore: repository operations used
//     by the JSON API (internal/http/stores.go)
//   - UserStore: account lookup and creation for login (internal/auth/service.go)
//   - Pinger: store connectivity for the health check (internal/http/stores.go)
//
// # Service Interfaces
//
//   - Authenticator: registration and login (internal/http/stores.go)
//   - Seeder: the atomic initial-data routine (internal/http/stores.go,
//     internal/scheduler/demo_reset.go)
//   - PasswordHasher: hashing for the seeded admin account (internal/seed/seed.go)
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/tariffs/
//
//  2. Define repository on the shared session factory:
//
//     type Repository struct {
//         factory *database.SessionFactory
//         log     *logger.Logger
//     }
//
//     func NewRepository(factory *database.SessionFactory) *Repository
//
//  3. Run every mutation through factory.RunInTransaction and return
//     *database.Error values only.
//
//  4. Add compile-time check:
//
//     var _ http.TariffStore = (*tariffs.Repository)(nil)
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
