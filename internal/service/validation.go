package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

type ValidationRepository interface {
	FindOwned(ctx context.Context, id, email string) (domain.Ticket, error)
	TransitionStatus(ctx context.Context, id, email string, from, to domain.TicketStatus) (bool, error)
}

// ValidationEngine redeems tickets at the point of entry.
type ValidationEngine struct {
	repo ValidationRepository
}

func NewValidationEngine(repo ValidationRepository) *ValidationEngine {
	return &ValidationEngine{
		repo: repo,
	}
}

// Validate admits the bearer of (ticket id, email) at most once. A wrong
// email is reported exactly like an unknown ticket. The active -> used step
// is a conditional write, so among concurrent calls only one succeeds and
// the others report the state they lost to.
func (e *ValidationEngine) Validate(ctx context.Context, payload domain.ScanPayload) (domain.ValidationOutcome, error) {
	if payload.TicketID == "" || payload.Email == "" {
		return domain.ValidationOutcome{}, domain.NewValidationError("ticket_id and email are required")
	}

	ticket, err := e.repo.FindOwned(ctx, payload.TicketID, payload.Email)
	if err != nil {
		if errors.Is(err, domain.ErrTicketNotFound) {
			return domain.OutcomeNotFound(), nil
		}
		return domain.ValidationOutcome{}, fmt.Errorf("e.repo.FindOwned -> %w", err)
	}

	if ticket.Status != domain.TicketStatusActive {
		return domain.OutcomeRejected(ticket.Status), nil
	}

	won, err := e.repo.TransitionStatus(ctx, payload.TicketID, payload.Email, domain.TicketStatusActive, domain.TicketStatusUsed)
	if err != nil {
		return domain.ValidationOutcome{}, fmt.Errorf("e.repo.TransitionStatus -> %w", err)
	}

	if !won {
		current, err := e.repo.FindOwned(ctx, payload.TicketID, payload.Email)
		if err != nil {
			if errors.Is(err, domain.ErrTicketNotFound) {
				return domain.OutcomeNotFound(), nil
			}
			return domain.ValidationOutcome{}, fmt.Errorf("e.repo.FindOwned -> %w", err)
		}
		return domain.OutcomeRejected(current.Status), nil
	}

	zap.L().Info("ticket validated", zap.String("ticket_id", payload.TicketID))

	return domain.OutcomeValidated(), nil
}
