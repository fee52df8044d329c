package ticketing

import (
	"errors"
	"fmt"
)

var (
	ErrValidationFailed  = errors.New("missing required fields")
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidQuantity   = errors.New("quantity must be between 1 and 10")
	ErrCapacityExhausted = errors.New("no more ticket IDs available")
	ErrInvalidCode       = errors.New("invalid QR code")
	ErrWrongEvent        = errors.New("ticket belongs to a different event")
	ErrAlreadyUsed       = errors.New("QR code already used")
	ErrStorageConflict   = errors.New("ticket ID conflict persisted after retries")
)

// WrongEventError carries the name of the event the ticket actually
// belongs to, so the scanning operator can see where it is valid.
type WrongEventError struct {
	EventName string
}

func (e *WrongEventError) Error() string {
	return fmt.Sprintf("ticket belongs to a different event: %s", e.EventName)
}

func (e *WrongEventError) Is(target error) bool {
	return target == ErrWrongEvent
}
