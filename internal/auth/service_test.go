package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/database"
	"github.com/mrlokans/telecom/internal/database/users"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

func setupTestDB(t *testing.T) (*database.SessionFactory, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test_auth.db")

	factory, err := database.Open(config.Database{Path: dbPath, LogLevel: "silent"}, logger.Nop())
	require.NoError(t, err)

	return factory, func() { factory.Close() }
}

func setupService(t *testing.T) (*Service, func()) {
	t.Helper()
	factory, cleanup := setupTestDB(t)
	return NewService(users.NewRepository(factory), NewHasher(bcrypt.MinCost), logger.Nop()), cleanup
}

func TestService_Register(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	tests := []struct {
		name     string
		login    string
		password string
		wantRole entities.Role
		wantErr  error
	}{
		{name: "regular user", login: "operator", password: "secret", wantRole: entities.RoleUser},
		{name: "admin login is elevated", login: "Admin", password: "secret", wantRole: entities.RoleAdmin},
		{name: "blank login", login: "   ", password: "secret", wantErr: ErrLoginRequired},
		{name: "blank password", login: "someone", password: " ", wantErr: ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(context.Background(), tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, tt.wantRole, user.Role)
			assert.NoError(t, CheckPassword(tt.password, user.PasswordHash))
		})
	}
}

func TestService_Register_DuplicateLogin(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	_, err := svc.Register(ctx, "operator", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "operator", "other")

	assert.ErrorIs(t, err, database.ErrDuplicateEntry)
}

func TestService_Authenticate(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	registered, err := svc.Register(ctx, "operator", "secret")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "operator", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, "operator", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "", "secret")
	assert.ErrorIs(t, err, ErrLoginRequired)
}
