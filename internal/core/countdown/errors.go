package countdown

import "github.com/pkg/errors"

var (
	// ErrInvalidDuration indicates a total duration that is not positive.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrNotConfigured indicates a reminder was added before a duration was set.
	ErrNotConfigured = errors.New("duration not configured")
	// ErrInvalidInput indicates a reminder value that is not a finite positive number.
	ErrInvalidInput = errors.New("invalid reminder input")
	// ErrOutOfRange indicates a reminder offset outside (0, total).
	ErrOutOfRange = errors.New("reminder out of range")
	// ErrDuplicateReminder indicates a reminder offset that already exists.
	ErrDuplicateReminder = errors.New("duplicate reminder")
)
