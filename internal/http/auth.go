package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/telecom/internal/auth"
	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

type AuthController struct {
	service  Authenticator
	sessions *auth.SessionManager
	limiter  *auth.LoginLimiter
	log      *logger.Logger
}

func NewAuthController(service Authenticator, sessions *auth.SessionManager, limiter *auth.LoginLimiter, log *logger.Logger) *AuthController {
	return &AuthController{service: service, sessions: sessions, limiter: limiter, log: log}
}

type CredentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AccountResponse struct {
	ID    uint          `json:"id"`
	Login string        `json:"login"`
	Role  entities.Role `json:"role"`
}

// Me handles GET /api/auth/me and also hands out the CSRF token.
func (a *AuthController) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":         auth.GetUserID(c),
		"login":      auth.GetLogin(c),
		"role":       auth.GetRole(c),
		"csrf_token": auth.GetCSRFToken(c),
	})
}

// Register handles POST /api/auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := a.service.Register(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if isValidationError(err) {
			respondBadRequest(c, err.Error())
			return
		}
		respondStoreError(c, a.log, err)
		return
	}
	respondCreated(c, AccountResponse{ID: user.ID, Login: user.Login, Role: user.Role})
}

// Login handles POST /api/auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ip := c.ClientIP()
	if a.limiter != nil {
		if allowed, retryAfter := a.limiter.Allow(ip, req.Login); !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many login attempts", Code: "rate_limited"})
			return
		}
	}

	user, err := a.service.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			if a.limiter != nil {
				a.limiter.RecordFailure(ip, req.Login)
			}
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "invalid_credentials"})
		case isValidationError(err):
			respondBadRequest(c, err.Error())
		default:
			respondStoreError(c, a.log, err)
		}
		return
	}
	if a.limiter != nil {
		a.limiter.RecordSuccess(ip, req.Login)
	}

	if a.sessions == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "sessions are not configured"})
		return
	}
	if err := a.sessions.CreateSession(c.Request, user); err != nil {
		a.log.Error("Failed to create session", "login", user.Login, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
		return
	}
	c.JSON(http.StatusOK, AccountResponse{ID: user.ID, Login: user.Login, Role: user.Role})
}

// Logout handles POST /api/auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	if a.sessions != nil {
		if err := a.sessions.DestroySession(c.Request); err != nil {
			a.log.Warn("Failed to destroy session", "error", err)
		}
	}
	respondSuccess(c, "logged out")
}

func isValidationError(err error) bool {
	return errors.Is(err, auth.ErrLoginRequired) ||
		errors.Is(err, auth.ErrPasswordRequired) ||
		errors.Is(err, auth.ErrPasswordTooLong)
}
