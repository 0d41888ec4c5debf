package service

import "github.com/google/uuid"

const ticketIDPrefix = "ticket_"

func newTicketID() string {
	return ticketIDPrefix + uuid.NewString()
}
