package domain

import "time"

type TicketStatus string

const (
	TicketStatusActive    TicketStatus = "active"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusActive, TicketStatusUsed, TicketStatusCancelled:
		return true
	}
	return false
}

// Ticket is an admission record. Used is never stored independently of
// Status: it is derived on every read and write.
type Ticket struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	EventName    string       `json:"eventName"`
	Price        float64      `json:"price"`
	Status       TicketStatus `json:"status"`
	Used         bool         `json:"used"`
	PurchaseDate time.Time    `json:"purchaseDate"`
}

// SetStatus is the only way status changes on a Ticket value.
func (t *Ticket) SetStatus(status TicketStatus) {
	t.Status = status
	t.Used = status == TicketStatusUsed
}

// TicketFilter fields are exact-match; empty fields match everything.
type TicketFilter struct {
	Status TicketStatus
	Email  string
}

// TicketUpdate carries the administrative changes to apply. Nil fields are left untouched.
type TicketUpdate struct {
	Email     *string
	EventName *string
	Price     *float64
	Status    *TicketStatus
}

func (u TicketUpdate) IsEmpty() bool {
	return u.Email == nil && u.EventName == nil && u.Price == nil && u.Status == nil
}

// Apply copies the present fields onto t. ID and PurchaseDate are never touched.
func (u TicketUpdate) Apply(t *Ticket) {
	if u.Email != nil {
		t.Email = *u.Email
	}
	if u.EventName != nil {
		t.EventName = *u.EventName
	}
	if u.Price != nil {
		t.Price = *u.Price
	}
	if u.Status != nil {
		t.SetStatus(*u.Status)
	}
}
