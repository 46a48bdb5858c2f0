package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/roster"
	"github.com/riskibarqy/league-draft/internal/domain/waiver"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var knownErrors = []error{
	ErrInvalidInput,
	ErrNotFound,
	ErrUnauthorized,
	ErrDependencyUnavailable,
	draft.ErrPermissionDenied,
	draft.ErrSessionNotFound,
	draft.ErrSlotNotFound,
	draft.ErrNotCurrentTurn,
	draft.ErrSlotAlreadyFilled,
	draft.ErrSubjectAlreadyAssigned,
	draft.ErrSlotAlreadyEmpty,
	draft.ErrNothingToUndo,
	draft.ErrAlreadyStarted,
	draft.ErrSessionNotInProgress,
	draft.ErrSubjectNotEligible,
	draft.ErrConfirmationRequired,
	draft.ErrSlotsAlreadyInitialized,
	draft.ErrInvalidOrder,
	draft.ErrStatusConflict,
	roster.ErrPlayerNotFound,
	waiver.ErrWaiverNotFound,
	waiver.ErrAlreadyClaimed,
}

// storageErr keeps domain error kinds intact and marks everything else as a
// transient dependency failure that the caller may retry.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}
