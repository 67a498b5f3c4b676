package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/auth"
	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/database/invoices"
	"github.com/mrlokans/telecom/internal/database/services"
	"github.com/mrlokans/telecom/internal/database/subscribers"
	"github.com/mrlokans/telecom/internal/database/users"
	http_controllers "github.com/mrlokans/telecom/internal/http"
	"github.com/mrlokans/telecom/internal/logger"
	"github.com/mrlokans/telecom/internal/scheduler"
	"github.com/mrlokans/telecom/internal/seed"
)

// Login throttling: five failures within fifteen minutes lock the
// ip/login pair out for fifteen minutes.
const (
	loginMaxFailures = 5
	loginWindow      = 15 * time.Minute
	loginLockout     = 15 * time.Minute
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the persistence components shared by every command.
type App struct {
	Factory     *database.SessionFactory
	Subscribers *subscribers.Repository
	Services    *services.Repository
	Invoices    *invoices.Repository
	Users       *users.Repository
	Hasher      *auth.Hasher
	Seeder      *seed.Seeder
	Log         *logger.Logger
}

// Open connects to the configured database, creates the schema and builds
// the repositories. The caller must Close the returned App.
func Open(cfg *config.Config, log *logger.Logger) (*App, error) {
	factory, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	subs := subscribers.NewRepository(factory)
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)

	return &App{
		Factory:     factory,
		Subscribers: subs,
		Services:    services.NewRepository(factory),
		Invoices:    invoices.NewRepository(factory),
		Users:       users.NewRepository(factory),
		Hasher:      hasher,
		Seeder:      seed.NewSeeder(subs, hasher, log),
		Log:         log,
	}, nil
}

func (a *App) Close() error {
	return a.Factory.Close()
}

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *logger.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Listen failed", "error", err)
		}
	}()

	// kill -9 cannot be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background jobs before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown failed", "error", err)
	}

	log.Info("Server exiting")
}

// Run wires every component and serves the JSON API.
func Run(cfg *config.Config, version string) {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting telecom back office", "version", version)

	app, err := Open(cfg, log)
	if err != nil {
		log.Fatal("Failed to open database", "error", err)
	}
	defer app.Close()

	sqlDB, err := app.Factory.SQLDB()
	if err != nil {
		log.Fatal("Failed to get database connection", "error", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatal("Failed to initialize session manager", "error", err)
	}

	csrfSecret, err := sessionSecret(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatal("Failed to generate CSRF secret", "error", err)
	}
	if cfg.Auth.SessionSecret == "" {
		log.Warn("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	}

	if cfg.Demo.SeedOnStart {
		if err := app.Seeder.InsertInitialData(context.Background()); err != nil {
			log.Fatal("Failed to seed initial data", "error", err)
		}
	}

	limiter := auth.NewLoginLimiter(loginMaxFailures, loginWindow, loginLockout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var resetScheduler *scheduler.DemoResetScheduler
	if cfg.Demo.ResetEnabled {
		resetScheduler = scheduler.NewDemoResetScheduler(app.Seeder, limiter, cfg.Demo.ResetSchedule, log)
		if err := resetScheduler.Start(ctx); err != nil {
			log.Error("Failed to start demo reset scheduler", "error", err)
			resetScheduler = nil
		}
	} else {
		log.Info("Demo reset scheduler: disabled")
	}

	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Subscribers:    app.Subscribers,
		Services:       app.Services,
		Invoices:       app.Invoices,
		Database:       app.Factory,
		Seeder:         app.Seeder,
		AuthService:    auth.NewService(app.Users, app.Hasher, log),
		SessionManager: sessionManager,
		LoginLimiter:   limiter,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		RequestLogging: true,
		Version:        version,
		Logger:         log,
	})

	onShutdown := func(ctx context.Context) {
		if resetScheduler != nil {
			resetScheduler.Stop()
		}
		cancel()
	}

	Serve(router, cfg, log, onShutdown)
}

// Seed resets the configured database to the initial data set.
func Seed(cfg *config.Config) error {
	return withApp(cfg, func(app *App) error {
		if err := app.Seeder.InsertInitialData(context.Background()); err != nil {
			return err
		}
		app.Log.Info("Initial data inserted", "path", cfg.Database.Path)
		return nil
	})
}

// Migrate creates the schema of the configured database.
func Migrate(cfg *config.Config) error {
	return withApp(cfg, func(app *App) error {
		app.Log.Info("Schema is up to date", "path", cfg.Database.Path)
		return nil
	})
}

func withApp(cfg *config.Config, fn func(app *App) error) error {
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	app, err := Open(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(app)
}

// sessionSecret decodes a hex secret, falls back to the raw bytes when it is
// not hex, and generates a fresh one when empty.
func sessionSecret(configured string) ([]byte, error) {
	if configured == "" {
		generated, err := auth.GenerateSessionSecret()
		if err != nil {
			return nil, err
		}
		return hex.DecodeString(generated)
	}
	if secret, err := hex.DecodeString(configured); err == nil {
		return secret, nil
	}
	return []byte(configured), nil
}
