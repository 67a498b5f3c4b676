// Package services provides database operations for the service catalog and
// the subscriber to service links.
package services

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

// Repository handles all service database operations.
type Repository struct {
	factory *database.SessionFactory
	log     *logger.Logger
}

// NewRepository creates a new services repository.
func NewRepository(factory *database.SessionFactory) *Repository {
	return &Repository{factory: factory, log: factory.Logger("repo", "services")}
}

// FindAll returns the whole catalog ordered by id.
func (r *Repository) FindAll(ctx context.Context) ([]entities.Service, error) {
	var svcs []entities.Service
	if err := r.factory.Session(ctx).Order("id").Find(&svcs).Error; err != nil {
		return nil, database.DataAccess("failed to list services", err)
	}
	return svcs, nil
}

// FindBySubscriberID returns the services linked to a subscriber. An unknown
// subscriber yields an empty result.
func (r *Repository) FindBySubscriberID(ctx context.Context, subscriberID uint) ([]entities.Service, error) {
	var svcs []entities.Service
	err := r.factory.Session(ctx).
		Joins("JOIN "+entities.SubscriberServicesTable+" ss ON ss.service_id = services.id").
		Where("ss.subscriber_id = ?", subscriberID).
		Order("services.id").
		Find(&svcs).Error
	if err != nil {
		return nil, database.DataAccess(fmt.Sprintf("failed to list services of subscriber %d", subscriberID), err)
	}
	return svcs, nil
}

// Add persists a new service. Negative prices are rejected.
func (r *Repository) Add(ctx context.Context, svc *entities.Service) (*entities.Service, error) {
	if svc.Price.IsNegative() {
		return nil, database.DataAccess(fmt.Sprintf("service price must not be negative, got %s", svc.Price.StringFixed(2)), nil)
	}
	return database.InTransaction(ctx, r.factory, func(tx *gorm.DB) (*entities.Service, error) {
		if err := tx.Omit(clause.Associations).Create(svc).Error; err != nil {
			return nil, database.Translate(err, "failed to add service")
		}
		return svc, nil
	})
}

// LinkServiceToSubscriber associates an existing service with an existing
// subscriber. A pair is linked at most once.
func (r *Repository) LinkServiceToSubscriber(ctx context.Context, subscriberID, serviceID uint) error {
	return r.factory.RunInTransaction(ctx, func(tx *gorm.DB) error {
		var sub entities.Subscriber
		if err := tx.First(&sub, subscriberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.NotFound(fmt.Sprintf("subscriber with id %d not found", subscriberID), err)
			}
			return database.DataAccess("failed to load subscriber", err)
		}

		var svc entities.Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.NotFound(fmt.Sprintf("service with id %d not found", serviceID), err)
			}
			return database.DataAccess("failed to load service", err)
		}

		// The link table has no unique constraint, so the pair is checked here.
		var links int64
		err := tx.Table(entities.SubscriberServicesTable).
			Where("subscriber_id = ? AND service_id = ?", subscriberID, serviceID).
			Count(&links).Error
		if err != nil {
			return database.DataAccess("failed to check service link", err)
		}
		if links > 0 {
			return database.Duplicate(svc.Name,
				fmt.Sprintf("subscriber %d already has service %q", subscriberID, svc.Name), nil)
		}

		if err := tx.Model(&sub).Association("Services").Append(&svc); err != nil {
			return database.DataAccess("failed to link service to subscriber", err)
		}
		r.log.Info("Service linked", "subscriber_id", subscriberID, "service_id", serviceID)
		return nil
	})
}

// DeleteAll removes every service and its subscriber links.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.factory.RunInTransaction(ctx, func(tx *gorm.DB) error {
		return DeleteAllIn(tx)
	})
}

// DeleteAllIn performs DeleteAll on an open transaction.
func DeleteAllIn(tx *gorm.DB) error {
	var svcs []entities.Service
	if err := tx.Find(&svcs).Error; err != nil {
		return database.DataAccess("failed to load services", err)
	}
	for i := range svcs {
		if err := tx.Select(clause.Associations).Delete(&svcs[i]).Error; err != nil {
			return database.DataAccess(fmt.Sprintf("failed to delete service %d", svcs[i].ID), err)
		}
	}
	return nil
}
