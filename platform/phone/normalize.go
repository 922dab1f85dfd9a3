// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns
// the trimmed input with formatting characters stripped, so that superficial
// variants of the same number still compare equal.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return stripFormatting(trimmed)
	}

	if !phonenumbers.IsValidNumber(number) {
		return stripFormatting(trimmed)
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

func stripFormatting(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
