package attendance

import "errors"

// Sentinel errors so handlers can pick HTTP statuses with errors.Is
// instead of matching message substrings.
var (
	ErrNotFound   = errors.New("attendance record not found")
	ErrValidation = errors.New("validation failed")
	ErrNoFields   = errors.New("no fields to update")
)
