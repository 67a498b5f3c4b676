// Package invoices provides database operations for subscriber invoices.
package invoices

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

// Repository handles all invoice database operations.
type Repository struct {
	factory *database.SessionFactory
	log     *logger.Logger
}

// NewRepository creates a new invoices repository.
func NewRepository(factory *database.SessionFactory) *Repository {
	return &Repository{factory: factory, log: factory.Logger("repo", "invoices")}
}

// FindBySubscriberID returns the invoices owned by a subscriber.
func (r *Repository) FindBySubscriberID(ctx context.Context, subscriberID uint) ([]entities.Invoice, error) {
	var invs []entities.Invoice
	err := r.factory.Session(ctx).Where("subscriber_id = ?", subscriberID).Order("id").Find(&invs).Error
	if err != nil {
		return nil, database.DataAccess(fmt.Sprintf("failed to list invoices of subscriber %d", subscriberID), err)
	}
	return invs, nil
}

// FindUnpaid returns every invoice that has not been paid yet.
func (r *Repository) FindUnpaid(ctx context.Context) ([]entities.Invoice, error) {
	var invs []entities.Invoice
	if err := r.factory.Session(ctx).Where("is_paid = ?", false).Order("id").Find(&invs).Error; err != nil {
		return nil, database.DataAccess("failed to list unpaid invoices", err)
	}
	return invs, nil
}

// FindSubscriberIDByInvoiceID returns the owner of an invoice. Unlike the
// other finders, an unknown invoice is an error.
func (r *Repository) FindSubscriberIDByInvoiceID(ctx context.Context, invoiceID uint) (uint, error) {
	var inv entities.Invoice
	err := r.factory.Session(ctx).Select("id", "subscriber_id").First(&inv, invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, database.NotFound(fmt.Sprintf("invoice with id %d not found", invoiceID), err)
	}
	if err != nil {
		return 0, database.DataAccess(fmt.Sprintf("failed to find invoice %d", invoiceID), err)
	}
	return inv.SubscriberID, nil
}

// Pay marks the invoice as paid. Paying a paid invoice again succeeds.
func (r *Repository) Pay(ctx context.Context, invoiceID uint) (bool, error) {
	return database.InTransaction(ctx, r.factory, func(tx *gorm.DB) (bool, error) {
		result := tx.Model(&entities.Invoice{}).Where("id = ?", invoiceID).Update("is_paid", true)
		if result.Error != nil {
			return false, database.DataAccess(fmt.Sprintf("failed to pay invoice %d", invoiceID), result.Error)
		}
		if result.RowsAffected == 0 {
			return false, database.NotFound(fmt.Sprintf("invoice with id %d not found", invoiceID), nil)
		}
		r.log.Info("Invoice paid", "id", invoiceID)
		return true, nil
	})
}

// Add persists a new invoice. The owning subscriber is taken from
// inv.Subscriber when set, otherwise from inv.SubscriberID, and is reloaded
// inside the transaction so a detached copy never causes a second insert.
func (r *Repository) Add(ctx context.Context, inv *entities.Invoice) (*entities.Invoice, error) {
	subscriberID := inv.SubscriberID
	if inv.Subscriber != nil {
		subscriberID = inv.Subscriber.ID
	}
	if subscriberID == 0 {
		return nil, database.DataAccess("invoice must reference a persisted subscriber", nil)
	}

	return database.InTransaction(ctx, r.factory, func(tx *gorm.DB) (*entities.Invoice, error) {
		var owner entities.Subscriber
		if err := tx.First(&owner, subscriberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, database.NotFound(fmt.Sprintf("subscriber with id %d not found", subscriberID), err)
			}
			return nil, database.DataAccess("failed to load invoice subscriber", err)
		}

		inv.SubscriberID = owner.ID
		if err := tx.Omit(clause.Associations).Create(inv).Error; err != nil {
			return nil, database.Translate(err, "failed to add invoice")
		}
		inv.Subscriber = &owner
		return inv, nil
	})
}
