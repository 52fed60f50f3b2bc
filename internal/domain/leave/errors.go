package leave

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRequestNotFound       = errors.New("leave request not found")
	ErrBalanceNotFound       = errors.New("leave balance not found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
	ErrRequestNotPending     = errors.New("leave request is not pending")
	ErrAlreadyCancelled      = errors.New("leave request is already cancelled")
	ErrRequestNotOwned       = errors.New("leave request belongs to another employee")
	ErrRequestNotCancellable = errors.New("leave request cannot be cancelled in its current state")
)

// InsufficientBalanceError reports a submission that would overdraw the
// employee's remaining balance for a type.
type InsufficientBalanceError struct {
	Type      Type
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient %s leave balance. Available: %d days", strings.ToLower(string(e.Type)), e.Available)
}
