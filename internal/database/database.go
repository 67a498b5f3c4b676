package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

// SessionFactory is the process-wide handle to the relational store. It owns
// no per-call state: every operation asks it for a fresh session.
type SessionFactory struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the sqlite database at cfg.Path with foreign keys enforced
// and creates the schema. The caller owns the returned factory and must Close it.
func Open(cfg config.Database, log *logger.Logger) (*SessionFactory, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), &gorm.Config{
		Logger:         log.Gorm(logger.GormLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	f := NewSessionFactory(db, log)
	if err := f.Migrate(); err != nil {
		_ = f.Close()
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Path)
	return f, nil
}

// NewSessionFactory wraps an already opened gorm handle.
func NewSessionFactory(db *gorm.DB, log *logger.Logger) *SessionFactory {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionFactory{db: db, log: log.With("component", "SessionFactory")}
}

// Migrate creates or updates the four entity tables and the link table.
func (f *SessionFactory) Migrate() error {
	err := f.db.AutoMigrate(
		&entities.Subscriber{},
		&entities.Service{},
		&entities.Invoice{},
		&entities.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Session returns a fresh unit-of-work handle bound to ctx. Reads use it
// directly; mutations go through RunInTransaction.
func (f *SessionFactory) Session(ctx context.Context) *gorm.DB {
	return f.db.Session(&gorm.Session{NewDB: true, Context: ctx})
}

// SQLDB exposes the pooled connection for collaborators that speak database/sql.
func (f *SessionFactory) SQLDB() (*sql.DB, error) {
	return f.db.DB()
}

// Ping checks store connectivity.
func (f *SessionFactory) Ping(ctx context.Context) error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Logger returns a child logger for a repository built on this factory.
func (f *SessionFactory) Logger(keysAndValues ...interface{}) *logger.Logger {
	return f.log.With(keysAndValues...)
}

func (f *SessionFactory) Close() error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dsn enables foreign key enforcement on every pooled connection.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
