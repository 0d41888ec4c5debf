package request

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

var errInvalidPrice = errors.New("price must be a non-negative number")

type GenerateTicketRequest struct {
	Email     string   `json:"email"`
	EventName string   `json:"eventName"`
	Price     *float64 `json:"price"`
}

func (req *GenerateTicketRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.EventName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Price, validation.NotNil),
	)
	if err != nil {
		return err
	}

	return validatePrice(req.Price)
}

type UpdateTicketRequest struct {
	Email     *string              `json:"email"`
	EventName *string              `json:"eventName"`
	Price     *float64             `json:"price"`
	Status    *domain.TicketStatus `json:"status"`
}

// Validate checks the fields that are present. An empty body passes so the
// service can report an unknown id before rejecting it.
func (req *UpdateTicketRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&req.EventName, validation.NilOrNotEmpty),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(
			domain.TicketStatusActive, domain.TicketStatusUsed, domain.TicketStatusCancelled,
		)),
	)
	if err != nil {
		return err
	}

	return validatePrice(req.Price)
}

func (req *UpdateTicketRequest) ToDomain() domain.TicketUpdate {
	return domain.TicketUpdate{
		Email:     req.Email,
		EventName: req.EventName,
		Price:     req.Price,
		Status:    req.Status,
	}
}

type ListTicketsQuery struct {
	Status string `form:"status"`
	Email  string `form:"email"`
}

func (q *ListTicketsQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Status, validation.In(
			string(domain.TicketStatusActive), string(domain.TicketStatusUsed), string(domain.TicketStatusCancelled),
		)),
	)
}

func (q *ListTicketsQuery) ToDomain() domain.TicketFilter {
	return domain.TicketFilter{
		Status: domain.TicketStatus(q.Status),
		Email:  q.Email,
	}
}

func validatePrice(price *float64) error {
	if price == nil {
		return nil
	}
	if *price < 0 || math.IsNaN(*price) || math.IsInf(*price, 0) {
		return errInvalidPrice
	}
	return nil
}
