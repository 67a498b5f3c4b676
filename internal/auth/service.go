package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/telecom/internal/entities"
	"github.com/mrlokans/telecom/internal/logger"
)

// AdminLogin is granted the ADMIN role on registration regardless of case.
const AdminLogin = "admin"

var (
	ErrLoginRequired      = errors.New("login is required")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// UserStore is the account persistence the service needs.
type UserStore interface {
	Add(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
}

// Service registers and authenticates staff accounts.
type Service struct {
	users  UserStore
	hasher *Hasher
	log    *logger.Logger
}

func NewService(users UserStore, hasher *Hasher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{users: users, hasher: hasher, log: log.With("component", "AuthService")}
}

// Register creates a USER account, or an ADMIN account for the reserved
// admin login. Store errors such as a duplicate login are returned as is.
func (s *Service) Register(ctx context.Context, login, password string) (*entities.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrLoginRequired
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := entities.RoleUser
	if strings.EqualFold(login, AdminLogin) {
		role = entities.RoleAdmin
	}

	user, err := s.users.Add(ctx, entities.NewUser(login, hash, role))
	if err != nil {
		return nil, err
	}
	s.log.Info("User registered", "login", login, "role", role)
	return user, nil
}

// Authenticate validates credentials. An unknown login and a wrong password
// both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*entities.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrLoginRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}
