package ledger

import "errors"

var (
	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached or read.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrSchema is returned when the stored header is missing a required
	// column.
	ErrSchema = errors.New("schema error")

	// ErrInvalidDate marks a row whose date could not be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrValidation is returned for malformed trade input or stored values.
	ErrValidation = errors.New("validation error")

	// ErrConflict is returned when the conflict check is enabled and the
	// store changed since the last Load.
	ErrConflict = errors.New("ledger changed since last load")
)
