package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// UserService covers registration, credential checks and the admin-facing
// account lifecycle.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, page repository.Page) ([]domain.User, int64, error)
	Enable(ctx context.Context, id int64) (*domain.User, error)
	Disable(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	BootstrapAdmin(ctx context.Context, email, password string) error
}

type userService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, apperr.New(apperr.Validation, "username is required")
	}
	if len(password) < 8 {
		return nil, apperr.New(apperr.Validation, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:              username,
		PasswordHash:          string(hash),
		Role:                  domain.RoleUser,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and the four account-status flags. Every
// failure collapses into the same authentication error so callers cannot
// probe which part was wrong.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, apperr.New(apperr.Authentication, "invalid credentials")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Authentication, "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Authentication, "invalid credentials")
	}
	if !user.Active() {
		return nil, apperr.New(apperr.Authentication, "account is not active")
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *userService) List(ctx context.Context, page repository.Page) ([]domain.User, int64, error) {
	return s.users.List(ctx, page)
}

func (s *userService) Enable(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.users.SetEnabled(ctx, id, true); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) Disable(ctx context.Context, id int64) (*domain.User, error) {
	if err := s.users.SetEnabled(ctx, id, false); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// BootstrapAdmin provisions the configured admin account once. Safe to run on
// every startup; it does nothing when the username already exists.
func (s *userService) BootstrapAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return fmt.Errorf("admin bootstrap requires email and password")
	}

	exists, err := s.users.ExistsByUsername(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		Username:              email,
		PasswordHash:          string(hash),
		Role:                  domain.RoleAdmin,
		Enabled:               true,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
	}
	if _, err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Warnf("admin user %s created from config, change the password", email)
	return nil
}
