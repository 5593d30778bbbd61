package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Clock returns the current time. Services read time only through it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// repoError maps repository sentinels onto AppErrors.
func repoError(ctx context.Context, err error, resource string, id any) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NewNotFoundError(resource, id)
	case stderrors.Is(err, repository.ErrConflict):
		return errors.NewConflictError(resource+" was modified concurrently, retry", err)
	case stderrors.Is(err, repository.ErrDuplicate):
		return errors.NewConflictError(resource+" already exists", err)
	case stderrors.Is(err, flashcard.ErrInvalidGrade):
		return errors.NewValidationError("grade", "must be between 0 and 5")
	default:
		logger.FromContext(ctx).Error("%s %v: %v", resource, id, err)
		return errors.NewInternalError(err)
	}
}
