package service

import (
	"context"
	"fmt"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
}

// UserService is the administrator's view of end-user accounts.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, caller domain.Caller, id uint) (domain.User, error) {
	if !caller.IsAdmin() {
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, caller domain.Caller, id uint, update domain.UserUpdate) (domain.User, error) {
	if !caller.IsAdmin() {
		return domain.User{}, ErrUnauthorized
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return user, nil
}
