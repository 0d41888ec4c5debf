package response

import "github.com/bigbull/event-ticket-api/internal/domain"

type TicketResponse struct {
	Success bool          `json:"success"`
	Ticket  domain.Ticket `json:"ticket"`
}

type TicketListResponse struct {
	Success bool            `json:"success"`
	Tickets []domain.Ticket `json:"tickets"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ScanResponse is one reply frame on the scanner websocket.
type ScanResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
