package service

import (
	"errors"

	"github.com/campusride/carpool/internal/domain"
)

// namedNotFound replaces a bare domain.ErrNotFound coming from a repo with a
// NotFound naming the missing entity. Errors that already carry a message
// are returned unchanged.
func namedNotFound(err error, msg string) error {
	var e *domain.Error
	if errors.Is(err, domain.ErrNotFound) && !errors.As(err, &e) {
		return domain.NotFoundError(msg)
	}
	return err
}
