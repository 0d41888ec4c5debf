package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

const purchaseSubject = "purchase-flow"

type TicketIssuer interface {
	Issue(ctx context.Context, caller domain.Caller, email, eventName string, price float64) (domain.Ticket, error)
}

// PurchaseService sells tickets for the single configured event. It holds
// the platform's issuance capability; no payment is taken.
type PurchaseService struct {
	issuer    TicketIssuer
	eventName string
	price     float64
}

func NewPurchaseService(issuer TicketIssuer, eventName string, price float64) *PurchaseService {
	return &PurchaseService{
		issuer:    issuer,
		eventName: eventName,
		price:     price,
	}
}

func (s *PurchaseService) Purchase(ctx context.Context, buyer domain.Caller) (domain.Ticket, error) {
	if buyer.Email == "" {
		return domain.Ticket{}, domain.NewValidationError("buyer email is required")
	}

	ticket, err := s.issuer.Issue(ctx, domain.AdminCaller(purchaseSubject), buyer.Email, s.eventName, s.price)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.issuer.Issue -> %w", err)
	}

	zap.L().Info("ticket purchased", zap.String("ticket_id", ticket.ID), zap.String("buyer", buyer.Subject))

	return ticket, nil
}
