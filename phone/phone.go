package phone

import "strings"

// Official emergency numbers that must never be added as trusted contacts.
// An SOS message is exactly the kind of thing that should NOT be routed to
// a dispatch center as a text blast.
var reservedNumbers = map[string]bool{
	"911": true,
	"112": true,
	"999": true,
	"988": true,
}

// Normalize strips every character that is not a decimal digit.
// "(555) 123-4567" becomes "5551234567". Empty input stays empty.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			b.WriteByte(text[i])
		}
	}

	return b.String()
}

// IsBlocked reports whether the number, in any formatting, is one of the
// reserved official emergency numbers.
func IsBlocked(text string) bool {
	return reservedNumbers[Normalize(text)]
}
