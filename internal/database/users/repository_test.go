package users

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

func setupTestDB(t *testing.T) (*Repository, *database.SessionFactory, func()) {
	dbPath := filepath.Join(t.TempDir(), "test_users.db")

	factory, err := database.Open(config.Database{Path: dbPath, LogLevel: "silent"}, logger.Nop())
	require.NoError(t, err)

	repo := NewRepository(factory)

	cleanup := func() {
		factory.Close()
	}

	return repo, factory, cleanup
}

func TestRepository_Add(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.Add(context.Background(), entities.NewUser("operator", "hash", entities.RoleUser))

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "operator", user.Login)
	assert.Equal(t, entities.RoleUser, user.Role)
}

func TestRepository_Add_DuplicateLogin(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.Add(ctx, entities.NewUser("admin", "hash", entities.RoleAdmin))
	require.NoError(t, err)

	_, err = repo.Add(ctx, entities.NewUser("admin", "other", entities.RoleUser))

	assert.ErrorIs(t, err, database.ErrDuplicateEntry)
	dbErr, ok := database.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "admin", dbErr.Value)
}

func TestRepository_Add_GuestRejected(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.Add(ctx, entities.NewUser("visitor", "hash", entities.RoleGuest))

	assert.ErrorIs(t, err, database.ErrDataAccess)
	user, err := repo.FindByLogin(ctx, "visitor")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	created, err := repo.Add(ctx, entities.NewUser("operator", "hash", entities.RoleUser))
	require.NoError(t, err)

	found, err := repo.FindByLogin(ctx, "operator")

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestRepository_FindByLogin_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	user, err := repo.FindByLogin(context.Background(), "nobody")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestDeleteAllIn(t *testing.T) {
	repo, factory, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.Add(ctx, entities.NewUser("a", "hash", entities.RoleUser))
	require.NoError(t, err)
	_, err = repo.Add(ctx, entities.NewUser("b", "hash", entities.RoleAdmin))
	require.NoError(t, err)

	require.NoError(t, factory.RunInTransaction(ctx, func(tx *gorm.DB) error {
		return DeleteAllIn(tx)
	}))

	user, err := repo.FindByLogin(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, user)
}
