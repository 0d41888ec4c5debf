package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

var (
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrAccountDisabled    = domain.ErrAccountDisabled
	ErrUsernameTaken      = domain.ErrUsernameTaken
	ErrEmailTaken         = domain.ErrEmailTaken
	ErrUserNotFound       = domain.ErrUserNotFound
)

type AdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindFirst(ctx context.Context) (domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
}

type AuthService struct {
	adminRepo     AdminRepository
	userRepo      AuthUserRepository
	adminUsername string
}

// NewAuthService binds admin login to the configured default admin username.
func NewAuthService(adminRepo AdminRepository, userRepo AuthUserRepository, adminUsername string) *AuthService {
	return &AuthService{
		adminRepo:     adminRepo,
		userRepo:      userRepo,
		adminUsername: adminUsername,
	}
}

// EnsureDefaultAdmin creates the single admin account if none exists. It is
// safe to call on every start.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domain.NewValidationError("default admin username and password are required")
	}

	_, err := s.adminRepo.FindFirst(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrAdminNotFound) {
		return false, fmt.Errorf("s.adminRepo.FindFirst -> %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}

	if _, err = s.adminRepo.Create(ctx, domain.Admin{Username: username, Password: hash}); err != nil {
		if errors.Is(err, domain.ErrAdminExists) {
			return false, nil
		}
		return false, fmt.Errorf("s.adminRepo.Create -> %w", err)
	}

	zap.L().Info("default admin account created", zap.String("username", username))

	return true, nil
}

// ResetAdmin removes every admin and recreates the default one.
func (s *AuthService) ResetAdmin(ctx context.Context, username, password string) error {
	deleted, err := s.adminRepo.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("s.adminRepo.DeleteAll -> %w", err)
	}
	zap.L().Info("deleted existing admin accounts", zap.Int64("count", deleted))

	created, err := s.EnsureDefaultAdmin(ctx, username, password)
	if err != nil {
		return err
	}
	if !created {
		return domain.ErrAdminExists
	}

	return nil
}

func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (domain.Admin, error) {
	if username != s.adminUsername {
		return domain.Admin{}, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.Admin{}, ErrInvalidCredentials
		}
		return domain.Admin{}, fmt.Errorf("s.adminRepo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrInvalidCredentials
	}

	return admin, nil
}

// CheckAdmin reports whether the admin account has been created.
func (s *AuthService) CheckAdmin(ctx context.Context) (domain.Admin, bool, error) {
	admin, err := s.adminRepo.FindFirst(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.Admin{}, false, nil
		}
		return domain.Admin{}, false, fmt.Errorf("s.adminRepo.FindFirst -> %w", err)
	}

	return admin, true, nil
}

func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkAvailable(ctx, user.Username, user.Email); err != nil {
		return domain.User{}, err
	}

	hash, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = hash
	if strings.TrimSpace(user.Name) == "" {
		user.Name = user.Username
	}
	user.IsActive = true

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("s.userRepo.FindByIdentifier -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return domain.User{}, ErrAccountDisabled
	}

	return user, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("s.userRepo.FindByUsername -> %w", err)
	}

	_, err = s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("s.userRepo.FindByEmail -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
