package contacts

import "errors"

// Validation errors surfaced to the user as status text. A rejected add
// never writes to storage.
var (
	ErrEmptyPhone    = errors.New("a phone number is required")
	ErrBlockedNumber = errors.New("official emergency numbers cannot be added as contacts")
	ErrTooShort      = errors.New("phone number must have at least 7 digits")
)
