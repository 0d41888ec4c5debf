package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/bigbull/event-ticket-api/internal/api/handler/v1/response"
	"github.com/bigbull/event-ticket-api/internal/domain"
)

// renderServiceErr maps the domain error taxonomy onto HTTP responses.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		response.RenderErr(ctx, response.ErrBadRequestMessage(err, validationErr.Reason))
	case errors.Is(err, domain.ErrTicketNotFound):
		response.RenderErr(ctx, response.ErrNotFoundMessage(domain.MsgTicketNotFound))
	case errors.Is(err, domain.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFoundMessage("User not found"))
	case errors.Is(err, domain.ErrTicketConflict):
		response.RenderErr(ctx, response.ErrConflict(domain.ErrTicketConflict))
	case errors.Is(err, domain.ErrUnauthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, domain.ErrQueueClosed):
		response.RenderErr(ctx, response.ErrServiceUnavailable(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
