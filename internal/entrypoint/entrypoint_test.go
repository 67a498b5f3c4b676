package entrypoint

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/logger"
	"github.com/mrlokans/telecom/internal/seed"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(t.TempDir(), "telecom.db"), LogLevel: "silent"},
		Log:      config.Log{Mode: "test"},
		Auth:     config.Auth{BcryptCost: bcrypt.MinCost},
	}
}

func TestSessionSecret(t *testing.T) {
	generated, err := sessionSecret("")
	require.NoError(t, err)
	assert.Len(t, generated, 32)

	hexSecret, err := sessionSecret("00ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, hexSecret)

	raw, err := sessionSecret("not-hex-at-all")
	require.NoError(t, err)
	assert.Equal(t, []byte("not-hex-at-all"), raw)

	again, err := sessionSecret("")
	require.NoError(t, err)
	assert.NotEqual(t, hex.EncodeToString(generated), hex.EncodeToString(again))
}

func TestMigrate_CreatesSchema(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, Migrate(cfg))

	log := logger.Nop()
	app, err := Open(cfg, log)
	require.NoError(t, err)
	defer app.Close()

	subs, err := app.Subscribers.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSeed_InsertsInitialData(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, Seed(cfg))
	// Running twice resets rather than duplicating.
	require.NoError(t, Seed(cfg))

	app, err := Open(cfg, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	subs, err := app.Subscribers.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	admin, err := app.Users.FindByLogin(ctx, seed.AdminLogin)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(seed.AdminPassword)))
}
