package domain

import "fmt"

const (
	MsgTicketNotFound  = "Ticket not found"
	MsgTicketValidated = "Ticket validated successfully!"
)

// ScanPayload is what a QR code or the manual entry form carries.
type ScanPayload struct {
	TicketID string `json:"ticket_id"`
	Email    string `json:"email"`
}

type ValidationOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OutcomeNotFound() ValidationOutcome {
	return ValidationOutcome{Success: false, Message: MsgTicketNotFound}
}

func OutcomeValidated() ValidationOutcome {
	return ValidationOutcome{Success: true, Message: MsgTicketValidated}
}

func OutcomeRejected(status TicketStatus) ValidationOutcome {
	return ValidationOutcome{Success: false, Message: fmt.Sprintf("Ticket is %s", status)}
}
