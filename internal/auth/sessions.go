package auth

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/entities"
)

// Session data keys
const (
	SessionKeyUserID = "user_id"
	SessionKeyLogin  = "login"
	SessionKeyRole   = "role"
)

const sessionsSchema = `CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	expiry REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`

// SessionManager keeps the logged-in account in an scs session stored in
// the application database.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates the sessions table if needed and configures
// cookies from cfg. sqlDB is the pool behind the gorm handle.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	if _, err := sqlDB.Exec(sessionsSchema); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession stores user in the session after successful authentication.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	// New token on privilege change prevents session fixation.
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), SessionKeyUserID, int(user.ID))
	sm.Put(r.Context(), SessionKeyLogin, user.Login)
	sm.Put(r.Context(), SessionKeyRole, string(user.Role))
	return nil
}

func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// SessionData is the account stored in a session.
type SessionData struct {
	UserID uint
	Login  string
	Role   entities.Role
}

// GetSessionData returns the session's account, or nil for guests.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	ctx := r.Context()
	userID := sm.GetInt(ctx, SessionKeyUserID)
	if userID == 0 {
		return nil
	}
	return &SessionData{
		UserID: uint(userID),
		Login:  sm.GetString(ctx, SessionKeyLogin),
		Role:   entities.Role(sm.GetString(ctx, SessionKeyRole)),
	}
}
