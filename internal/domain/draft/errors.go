package draft

import "errors"

var (
	ErrPermissionDenied       = errors.New("permission denied")
	ErrSessionNotFound        = errors.New("draft session not found")
	ErrSlotNotFound           = errors.New("draft slot not found")
	ErrNotCurrentTurn         = errors.New("slot is not the current turn")
	ErrSlotAlreadyFilled      = errors.New("slot already filled")
	ErrSubjectAlreadyAssigned = errors.New("player already drafted in this session")
	ErrSlotAlreadyEmpty       = errors.New("slot already empty")
	ErrNothingToUndo          = errors.New("no pick to undo")
	ErrAlreadyStarted         = errors.New("draft session already started")

	ErrSessionNotInProgress    = errors.New("draft session is not in progress")
	ErrSubjectNotEligible      = errors.New("player is not in the candidate pool")
	ErrConfirmationRequired    = errors.New("confirmation required")
	ErrSlotsAlreadyInitialized = errors.New("draft slots already initialized")
	ErrInvalidOrder            = errors.New("invalid draft order")
	ErrStatusConflict          = errors.New("draft session status changed concurrently")
)
