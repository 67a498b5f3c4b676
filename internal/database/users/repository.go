// Package users provides database operations for staff accounts.
//
// # Usage
//
//	repo := users.NewRepository(factory)
//	user, err := repo.FindByLogin(ctx, login) // nil, nil when absent
package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

// Repository handles all user database operations.
type Repository struct {
	factory *database.SessionFactory
	log     *logger.Logger
}

// NewRepository creates a new users repository.
func NewRepository(factory *database.SessionFactory) *Repository {
	return &Repository{factory: factory, log: factory.Logger("repo", "users")}
}

// Add stores a new account. The generated id is set on user when Add returns.
func (r *Repository) Add(ctx context.Context, user *entities.User) (*entities.User, error) {
	if !user.Role.IsPersistable() {
		return nil, database.DataAccess(fmt.Sprintf("role %q cannot be stored", user.Role), nil)
	}
	return database.InTransaction(ctx, r.factory, func(tx *gorm.DB) (*entities.User, error) {
		if err := tx.Create(user).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return nil, database.Duplicate(user.Login,
					fmt.Sprintf("user with login %s already exists", user.Login), err)
			}
			return nil, database.DataAccess("failed to add user", err)
		}
		r.log.Info("User created", "id", user.ID, "role", user.Role)
		return user, nil
	})
}

// FindByLogin returns the account with the given login, or nil if there is none.
func (r *Repository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	var user entities.User
	err := r.factory.Session(ctx).Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.DataAccess("failed to find user", err)
	}
	return &user, nil
}

// DeleteAllIn removes every account on an open transaction.
func DeleteAllIn(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&entities.User{}).Error; err != nil {
		return database.DataAccess("failed to delete users", err)
	}
	return nil
}
