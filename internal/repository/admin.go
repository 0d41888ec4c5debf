package repository

import (
	"context"
	"fmt"

	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
)

type AdminDAO interface {
	Insert(ctx context.Context, admin dao.Admin) (dao.Admin, error)
	FindFirst(ctx context.Context) (dao.Admin, error)
	FindByUsername(ctx context.Context, username string) (dao.Admin, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	created, err := r.dao.Insert(ctx, dao.Admin{
		Username: admin.Username,
		Password: admin.Password,
	})
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.Insert -> %w", translate("dao.Insert", err))
	}

	return r.daoToDomain(created), nil
}

func (r *AdminRepository) FindFirst(ctx context.Context) (domain.Admin, error) {
	found, err := r.dao.FindFirst(ctx)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindFirst -> %w", translate("dao.FindFirst", err))
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindByUsername(ctx, username)
	if err != nil {
		return domain.Admin{}, fmt.Errorf("r.dao.FindByUsername -> %w", translate("dao.FindByUsername", err))
	}

	return r.daoToDomain(found), nil
}

func (r *AdminRepository) DeleteAll(ctx context.Context) (int64, error) {
	n, err := r.dao.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteAll -> %w", translate("dao.DeleteAll", err))
	}

	return n, nil
}

func (r *AdminRepository) daoToDomain(a dao.Admin) domain.Admin {
	return domain.Admin{
		ID:       a.ID,
		Username: a.Username,
		Password: a.Password,
	}
}
