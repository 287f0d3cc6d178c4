package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/app/repositories"
	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/shashiranjanraj/vyapar/pkg/auth"
	"github.com/shashiranjanraj/vyapar/pkg/event"
	"github.com/shashiranjanraj/vyapar/pkg/metrics"
	"github.com/shashiranjanraj/vyapar/pkg/session"
	"gorm.io/gorm"
)

// AuthService implements registration, login, and logout.
type AuthService struct {
	users    *repositories.UserRepository
	orders   *repositories.OrderRepository
	sessions *session.Manager
}

func NewAuthService(users *repositories.UserRepository, orders *repositories.OrderRepository, sessions *session.Manager) *AuthService {
	return &AuthService{users: users, orders: orders, sessions: sessions}
}

// Register creates a user with a hashed password.
// Returns apperr.ErrDuplicateUsername when the username is taken; the unique
// index decides, so two concurrent registrations cannot both win.
func (s *AuthService) Register(username, password string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(&user); err != nil {
		metrics.RecordAuth("register", false)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, apperr.ErrDuplicateUsername
		}
		return models.User{}, err
	}

	metrics.RecordAuth("register", true)
	event.Fire(EventUserRegistered, UserEvent{UserID: user.ID, Username: user.Username})
	return user, nil
}

// Login verifies credentials and establishes a session. Unknown username and
// wrong password both return apperr.ErrInvalidCredentials; the unknown-user
// path still pays for one bcrypt comparison so the two cases cannot be told
// apart by timing.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, []models.Order, string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			auth.CheckPassword(auth.DummyHash, password)
			metrics.RecordAuth("login", false)
			return models.User{}, nil, "", apperr.ErrInvalidCredentials
		}
		return models.User{}, nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		metrics.RecordAuth("login", false)
		return models.User{}, nil, "", apperr.ErrInvalidCredentials
	}

	orders, err := s.orders.ListByUser(user.ID)
	if err != nil {
		return models.User{}, nil, "", err
	}

	token, err := s.sessions.Login(ctx, user.ID)
	if err != nil {
		return models.User{}, nil, "", err
	}

	metrics.RecordAuth("login", true)
	return user, orders, token, nil
}

// Logout destroys the caller's session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Logout(ctx, token); err != nil {
		metrics.RecordAuth("logout", false)
		return err
	}
	metrics.RecordAuth("logout", true)
	return nil
}
