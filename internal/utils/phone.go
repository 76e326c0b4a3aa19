package utils

import (
	"strings"

	"github.com/rbgonzales/campus-engagement-api/internal/constants"
)

// NormalizePhone strips everything but digits and converts a +63 country
// prefix to the local 0-prefixed form. Returns the normalized number and
// whether it is a valid 11-digit local number.
func NormalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	// "+63 912 345 6789" arrives here as 639123456789.
	if len(digits) == 12 && strings.HasPrefix(digits, "63") {
		digits = "0" + digits[2:]
	}

	return digits, len(digits) == constants.PhoneLength
}
