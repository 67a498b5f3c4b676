// Package seed resets the store to the demo data set in one transaction.
package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/database/services"
	"github.com/mrlokans/telecom/internal/database/subscribers"
	"github.com/mrlokans/telecom/internal/database/users"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

const (
	AdminLogin    = "admin"
	AdminPassword = "admin"
)

// PasswordHasher produces the stored hash for the admin password.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Seeder wipes every table and inserts the initial data set.
type Seeder struct {
	subscribers *subscribers.Repository
	hasher      PasswordHasher
	log         *logger.Logger
}

func NewSeeder(subs *subscribers.Repository, hasher PasswordHasher, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{subscribers: subs, hasher: hasher, log: log.With("component", "Seeder")}
}

// InsertInitialData replaces the whole store content with the demo data set.
// Either everything is replaced or nothing changes.
func (s *Seeder) InsertInitialData(ctx context.Context) error {
	// Hash outside the transaction; bcrypt is slow.
	adminHash, err := s.hasher.HashPassword(AdminPassword)
	if err != nil {
		return database.Unexpected(err)
	}

	err = s.subscribers.RunInTransaction(ctx, func(tx *gorm.DB) error {
		if err := wipe(tx); err != nil {
			return err
		}
		return insert(tx, adminHash)
	})
	if err != nil {
		s.log.Error("Failed to initialise data", "error", err)
		return database.DataAccess("failed to initialise data", err)
	}

	s.log.Info("Initial data inserted")
	return nil
}

func wipe(tx *gorm.DB) error {
	if err := subscribers.DeleteAllIn(tx); err != nil {
		return err
	}
	if err := services.DeleteAllIn(tx); err != nil {
		return err
	}
	return users.DeleteAllIn(tx)
}

func insert(tx *gorm.DB, adminHash string) error {
	if err := tx.Create(entities.NewUser(AdminLogin, adminHash, entities.RoleAdmin)).Error; err != nil {
		return database.Translate(err, "failed to create admin account")
	}

	ivan := entities.NewSubscriber("Ivan Ivanov", "+375291234567", decimal.RequireFromString("150.50"), false)
	petr := entities.NewSubscriber("Petr Petrov", "+375337654321", decimal.RequireFromString("-50.00"), true)

	internet := entities.NewService("Internet 50 Mbit/s", decimal.RequireFromString("450.00"))
	mobile := entities.NewService("Mobile", decimal.RequireFromString("300.00"))
	antivirus := entities.NewService("Antivirus", decimal.RequireFromString("100.00"))

	for _, svc := range []*entities.Service{internet, mobile, antivirus} {
		if err := tx.Create(svc).Error; err != nil {
			return database.Translate(err, "failed to create service")
		}
	}
	ivan.Services = []entities.Service{*internet, *mobile}
	petr.Services = []entities.Service{*mobile, *antivirus}

	for _, sub := range []*entities.Subscriber{ivan, petr} {
		if err := tx.Create(sub).Error; err != nil {
			return database.Translate(err, "failed to create subscriber")
		}
	}

	invoices := []*entities.Invoice{
		entities.NewInvoice(decimal.RequireFromString("750.00"), date(2025, time.September, 1), true, ivan),
		entities.NewInvoice(decimal.RequireFromString("400.00"), date(2025, time.September, 5), false, petr),
	}
	for _, inv := range invoices {
		if err := tx.Omit("Subscriber").Create(inv).Error; err != nil {
			return database.Translate(err, "failed to create invoice")
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
