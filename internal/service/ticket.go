package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/clock"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

var (
	ErrTicketNotFound = domain.ErrTicketNotFound
	ErrTicketConflict = domain.ErrTicketConflict
	ErrUnauthorized   = domain.ErrUnauthorized
	ErrValidation     = domain.ErrValidation
	ErrStorage        = domain.ErrStorage
)

type TicketRepository interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindByID(ctx context.Context, id string) (domain.Ticket, error)
	FindOwned(ctx context.Context, id, email string) (domain.Ticket, error)
	Find(ctx context.Context, filter domain.TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, id string, update domain.TicketUpdate) (domain.Ticket, error)
	TransitionStatus(ctx context.Context, id, email string, from, to domain.TicketStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

// TicketRegistry owns ticket identity and CRUD. Issue, List, Update and
// Delete require an administrator capability; Get does not.
type TicketRegistry struct {
	repo  TicketRepository
	clock clock.Clock
	newID func() string
}

func NewTicketRegistry(repo TicketRepository, clk clock.Clock) *TicketRegistry {
	return &TicketRegistry{
		repo:  repo,
		clock: clk,
		newID: newTicketID,
	}
}

func (s *TicketRegistry) Issue(ctx context.Context, caller domain.Caller, email, eventName string, price float64) (domain.Ticket, error) {
	if !caller.IsAdmin() {
		return domain.Ticket{}, ErrUnauthorized
	}

	email = strings.TrimSpace(email)
	eventName = strings.TrimSpace(eventName)
	if email == "" || eventName == "" {
		return domain.Ticket{}, domain.NewValidationError("email and event name are required")
	}
	if err := validatePrice(price); err != nil {
		return domain.Ticket{}, err
	}

	ticket := domain.Ticket{
		ID:           s.newID(),
		Email:        email,
		EventName:    eventName,
		Price:        price,
		PurchaseDate: s.clock.Now(),
	}
	ticket.SetStatus(domain.TicketStatusActive)

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		if errors.Is(err, ErrTicketConflict) {
			zap.L().Error("ticket id collision", zap.String("ticket_id", ticket.ID))
		}
		return domain.Ticket{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("ticket issued",
		zap.String("ticket_id", created.ID),
		zap.String("event", created.EventName),
		zap.String("issued_by", caller.Subject),
	)

	return created, nil
}

func (s *TicketRegistry) Get(ctx context.Context, id string) (domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return ticket, nil
}

func (s *TicketRegistry) List(ctx context.Context, caller domain.Caller, filter domain.TicketFilter) ([]domain.Ticket, error) {
	if !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}

	tickets, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return tickets, nil
}

// Update applies an administrative override. Any status may be set,
// including moving a used or cancelled ticket back to active.
func (s *TicketRegistry) Update(ctx context.Context, caller domain.Caller, id string, update domain.TicketUpdate) (domain.Ticket, error) {
	if !caller.IsAdmin() {
		return domain.Ticket{}, ErrUnauthorized
	}
	if update.IsEmpty() {
		// unknown ids still report not found
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return domain.Ticket{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		return domain.Ticket{}, domain.NewValidationError("at least one field is required")
	}
	if err := validateUpdate(update); err != nil {
		return domain.Ticket{}, err
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if update.Status != nil {
		zap.L().Info("ticket status overridden",
			zap.String("ticket_id", id),
			zap.String("status", string(updated.Status)),
			zap.String("updated_by", caller.Subject),
		)
	}

	return updated, nil
}

func (s *TicketRegistry) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if !caller.IsAdmin() {
		return ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	zap.L().Info("ticket deleted", zap.String("ticket_id", id), zap.String("deleted_by", caller.Subject))

	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.NewValidationError("price must be a non-negative number")
	}
	return nil
}

func validateUpdate(update domain.TicketUpdate) error {
	if update.Email != nil && strings.TrimSpace(*update.Email) == "" {
		return domain.NewValidationError("email cannot be empty")
	}
	if update.EventName != nil && strings.TrimSpace(*update.EventName) == "" {
		return domain.NewValidationError("event name cannot be empty")
	}
	if update.Price != nil {
		if err := validatePrice(*update.Price); err != nil {
			return err
		}
	}
	if update.Status != nil && !update.Status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("unknown status %q", *update.Status))
	}
	return nil
}
