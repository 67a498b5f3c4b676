// Package auth provides account registration, login sessions and role
// authorization for the back-office API.
//
// Callers are GUEST until they log in; a session then carries the account's
// USER or ADMIN role. Each route declares the Command it runs and
// Middleware.Require checks it against the role table in permissions.go.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # CSRF key, generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//
// # Usage
//
//	service := auth.NewService(usersRepo, auth.NewHasher(cfg.Auth.BcryptCost), log)
//	sessions, err := auth.NewSessionManager(sqlDB, cfg.Auth)
//	mw := auth.NewMiddleware(sessions)
//	router.Use(sessions.LoadAndSave(), mw.Handler())
//	router.POST("/api/invoices/:id/pay", mw.Require(auth.CommandPayInvoice), handler)
package auth
