package service

import (
	"context"
	"fmt"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

// TicketRenderer turns a ticket into a file on disk and returns its path.
// qrContent is the scan payload to embed. Each call must produce a new file.
type TicketRenderer interface {
	Render(ctx context.Context, ticket domain.Ticket, qrContent []byte) (string, error)
}

type TicketGetter interface {
	Get(ctx context.Context, id string) (domain.Ticket, error)
}

type DocumentService struct {
	tickets  TicketGetter
	renderer TicketRenderer
}

func NewDocumentService(tickets TicketGetter, renderer TicketRenderer) *DocumentService {
	return &DocumentService{
		tickets:  tickets,
		renderer: renderer,
	}
}

// RenderTicket returns the ticket together with the path of its rendered
// document. The caller owns the file.
func (s *DocumentService) RenderTicket(ctx context.Context, id string) (domain.Ticket, string, error) {
	ticket, err := s.tickets.Get(ctx, id)
	if err != nil {
		return domain.Ticket{}, "", fmt.Errorf("s.tickets.Get -> %w", err)
	}

	content, err := EncodeScanPayload(ticket)
	if err != nil {
		return domain.Ticket{}, "", fmt.Errorf("EncodeScanPayload -> %w", err)
	}

	path, err := s.renderer.Render(ctx, ticket, content)
	if err != nil {
		return domain.Ticket{}, "", fmt.Errorf("s.renderer.Render -> %w", err)
	}

	return ticket, path, nil
}
