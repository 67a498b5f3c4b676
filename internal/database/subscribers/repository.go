// Package subscribers provides database operations for subscribers.
//
// # Usage
//
//	repo := subscribers.NewRepository(factory)
//	sub, err := repo.FindByID(ctx, id) // nil, nil when absent
package subscribers

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

// Repository handles all subscriber database operations.
type Repository struct {
	factory *database.SessionFactory
	log     *logger.Logger
}

// NewRepository creates a new subscribers repository.
func NewRepository(factory *database.SessionFactory) *Repository {
	return &Repository{factory: factory, log: factory.Logger("repo", "subscribers")}
}

// FindByID returns the subscriber with the given id, or nil if there is none.
func (r *Repository) FindByID(ctx context.Context, id uint) (*entities.Subscriber, error) {
	var sub entities.Subscriber
	err := r.factory.Session(ctx).First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.DataAccess(fmt.Sprintf("failed to find subscriber %d", id), err)
	}
	return &sub, nil
}

// FindAll returns every subscriber ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Subscriber, error) {
	var subs []entities.Subscriber
	if err := r.factory.Session(ctx).Order("id").Find(&subs).Error; err != nil {
		return nil, database.DataAccess("failed to list subscribers", err)
	}
	return subs, nil
}

// Block marks the subscriber as blocked. Blocking an already blocked
// subscriber succeeds.
func (r *Repository) Block(ctx context.Context, id uint) error {
	return r.factory.RunInTransaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&entities.Subscriber{}).Where("id = ?", id).Update("is_blocked", true)
		if result.Error != nil {
			return database.DataAccess(fmt.Sprintf("failed to block subscriber %d", id), result.Error)
		}
		if result.RowsAffected == 0 {
			return database.NotFound(fmt.Sprintf("subscriber with id %d not found", id), nil)
		}
		r.log.Info("Subscriber blocked", "id", id)
		return nil
	})
}

// Add persists a new subscriber and fills in its id.
func (r *Repository) Add(ctx context.Context, sub *entities.Subscriber) (*entities.Subscriber, error) {
	return database.InTransaction(ctx, r.factory, func(tx *gorm.DB) (*entities.Subscriber, error) {
		if err := tx.Omit(clause.Associations).Create(sub).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return nil, database.Duplicate(sub.Phone,
					fmt.Sprintf("subscriber with phone %s already exists", sub.Phone), err)
			}
			return nil, database.DataAccess("failed to add subscriber", err)
		}
		return sub, nil
	})
}

// DeleteAll removes every subscriber together with its invoices and service
// links. Rows are removed one at a time inside a single transaction.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.factory.RunInTransaction(ctx, func(tx *gorm.DB) error {
		return DeleteAllIn(tx)
	})
}

// RunInTransaction exposes the unit of work so callers can compose several
// mutations atomically.
func (r *Repository) RunInTransaction(ctx context.Context, work func(tx *gorm.DB) error) error {
	return r.factory.RunInTransaction(ctx, work)
}

// DeleteAllIn performs DeleteAll on an open transaction.
func DeleteAllIn(tx *gorm.DB) error {
	var subs []entities.Subscriber
	if err := tx.Find(&subs).Error; err != nil {
		return database.DataAccess("failed to load subscribers", err)
	}
	for i := range subs {
		if err := tx.Select(clause.Associations).Delete(&subs[i]).Error; err != nil {
			return database.DataAccess(fmt.Sprintf("failed to delete subscriber %d", subs[i].ID), err)
		}
	}
	return nil
}
