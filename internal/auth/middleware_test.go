package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/telecom/internal/config"
	"github.com/mrlokans/telecom/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	factory, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	sqlDB, err := factory.SQLDB()
	require.NoError(t, err)

	sm, err := NewSessionManager(sqlDB, config.Auth{SessionLifetime: time.Hour, SecureCookies: false})
	require.NoError(t, err)
	return sm
}

// newSessionRouter logs in as the given account on POST /login and exposes a
// route that requires cmd.
func newSessionRouter(sm *SessionManager, user *entities.User, cmd Command) *gin.Engine {
	mw := NewMiddleware(sm)
	router := gin.New()
	router.Use(sm.LoadAndSave(), mw.Handler())
	router.POST("/login", func(c *gin.Context) {
		if err := sm.CreateSession(c.Request, user); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	router.POST("/logout", func(c *gin.Context) {
		_ = sm.DestroySession(c.Request)
		c.Status(http.StatusNoContent)
	})
	router.GET("/protected", mw.Require(cmd), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"login": GetLogin(c), "id": GetUserID(c), "role": GetRole(c)})
	})
	return router
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestMiddleware_GuestIsUnauthorized(t *testing.T) {
	sm := setupSessionManager(t)
	router := newSessionRouter(sm, nil, CommandListSubscribers)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_SessionRoleIsEnforced(t *testing.T) {
	sm := setupSessionManager(t)
	user := &entities.User{ID: 7, Login: "operator", Role: entities.RoleUser}

	t.Run("allowed command", func(t *testing.T) {
		router := newSessionRouter(sm, user, CommandListSubscribers)

		login := httptest.NewRecorder()
		router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusNoContent, login.Code)
		cookie := sessionCookie(t, login)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"login":"operator"`)
		assert.Contains(t, rr.Body.String(), `"role":"USER"`)
		assert.Contains(t, rr.Body.String(), `"id":7`)
	})

	t.Run("forbidden command", func(t *testing.T) {
		router := newSessionRouter(sm, user, CommandPayInvoice)

		login := httptest.NewRecorder()
		router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login", nil))
		cookie := sessionCookie(t, login)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestMiddleware_LogoutDropsRole(t *testing.T) {
	sm := setupSessionManager(t)
	admin := &entities.User{ID: 1, Login: "admin", Role: entities.RoleAdmin}
	router := newSessionRouter(sm, admin, CommandInitData)

	login := httptest.NewRecorder()
	router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookie := sessionCookie(t, login)

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logout.AddCookie(cookie)
	router.ServeHTTP(httptest.NewRecorder(), logout)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddleware_NilSessionsTreatsCallerAsGuest(t *testing.T) {
	mw := NewMiddleware(nil)
	router := gin.New()
	router.Use(mw.Handler())
	router.GET("/health", mw.Require(CommandHealth), func(c *gin.Context) {
		c.String(http.StatusOK, string(GetRole(c)))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GUEST", rr.Body.String())
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
}
