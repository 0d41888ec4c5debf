package repository

import (
	"context"
	"fmt"

	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindByUsername(ctx context.Context, username string) (dao.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
		Name:     user.Name,
		IsActive: user.IsActive,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", translate("dao.Insert", err))
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", translate("dao.FindByID", err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", translate("dao.FindByEmail", err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUsername -> %w", translate("dao.FindByUsername", err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	found, err := r.dao.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByIdentifier -> %w", translate("dao.FindByIdentifier", err))
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", translate("dao.FindAll", err))
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", translate("dao.Update", err))
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	domainUsers := make([]domain.User, 0, len(users))
	for _, u := range users {
		domainUsers = append(domainUsers, r.daoToDomain(u))
	}
	return domainUsers
}
