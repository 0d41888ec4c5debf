package repository

import (
	"context"
	"fmt"

	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id string) (dao.Ticket, error)
	FindByIDAndEmail(ctx context.Context, id, email string) (dao.Ticket, error)
	Find(ctx context.Context, filter dao.TicketFilter) ([]dao.Ticket, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (dao.Ticket, error)
	CompareAndSetStatus(ctx context.Context, id, email, from, to string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(ticket))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Insert -> %w", translate("dao.Insert", err))
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (domain.Ticket, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByID -> %w", translate("dao.FindByID", err))
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindOwned(ctx context.Context, id, email string) (domain.Ticket, error) {
	found, err := r.dao.FindByIDAndEmail(ctx, id, email)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByIDAndEmail -> %w", translate("dao.FindByIDAndEmail", err))
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) Find(ctx context.Context, filter domain.TicketFilter) ([]domain.Ticket, error) {
	found, err := r.dao.Find(ctx, dao.TicketFilter{
		Status: string(filter.Status),
		Email:  filter.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", translate("dao.Find", err))
	}

	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, r.daoToDomain(t))
	}

	return tickets, nil
}

func (r *TicketRepository) Update(ctx context.Context, id string, update domain.TicketUpdate) (domain.Ticket, error) {
	fields := map[string]interface{}{}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.EventName != nil {
		fields["event_name"] = *update.EventName
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.Status != nil {
		fields["status"] = string(*update.Status)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.Update -> %w", translate("dao.Update", err))
	}

	return r.daoToDomain(updated), nil
}

func (r *TicketRepository) TransitionStatus(ctx context.Context, id, email string, from, to domain.TicketStatus) (bool, error) {
	ok, err := r.dao.CompareAndSetStatus(ctx, id, email, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("r.dao.CompareAndSetStatus -> %w", translate("dao.CompareAndSetStatus", err))
	}

	return ok, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", translate("dao.Delete", err))
	}

	return nil
}

func (r *TicketRepository) domainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:           t.ID,
		Email:        t.Email,
		EventName:    t.EventName,
		Price:        t.Price,
		Status:       string(t.Status),
		PurchaseDate: t.PurchaseDate,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	ticket := domain.Ticket{
		ID:           t.ID,
		Email:        t.Email,
		EventName:    t.EventName,
		Price:        t.Price,
		PurchaseDate: t.PurchaseDate,
	}
	ticket.SetStatus(domain.TicketStatus(t.Status))

	return ticket
}
