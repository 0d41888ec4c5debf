package repository

import (
	"errors"

	"github.com/bigbull/event-ticket-api/internal/domain"
	"github.com/bigbull/event-ticket-api/internal/repository/dao"
)

// translate maps dao sentinels onto domain errors. Anything else is a
// collaborator fault and is wrapped as a domain.StorageError.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, dao.ErrTicketNotFound):
		return domain.ErrTicketNotFound
	case errors.Is(err, dao.ErrTicketIDExists):
		return domain.ErrTicketConflict
	case errors.Is(err, dao.ErrUserNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, dao.ErrUserEmailExists):
		return domain.ErrEmailTaken
	case errors.Is(err, dao.ErrUserUsernameExists):
		return domain.ErrUsernameTaken
	case errors.Is(err, dao.ErrAdminExists):
		return domain.ErrAdminExists
	case errors.Is(err, dao.ErrAdminNotFound):
		return domain.ErrAdminNotFound
	}

	return &domain.StorageError{Op: op, Err: err}
}
