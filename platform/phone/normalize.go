// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	number, ok := parse(input)
	if !ok {
		return strings.TrimSpace(input)
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// Display formats a number for printed documents: national format for US
// numbers, international format otherwise. Unparseable input is returned trimmed.
func Display(input string) string {
	number, ok := parse(input)
	if !ok {
		return strings.TrimSpace(input)
	}
	if phonenumbers.GetRegionCodeForNumber(number) == defaultRegion {
		return phonenumbers.Format(number, phonenumbers.NATIONAL)
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}

// IsValid reports whether input parses to a valid number.
func IsValid(input string) bool {
	_, ok := parse(input)
	return ok
}

func parse(input string) (*phonenumbers.PhoneNumber, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}
	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return nil, false
	}
	return number, true
}
