// Package phone normalizes contact phone numbers.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country prefix are assumed to be Indian, where most of
// the agency's intake traffic originates.
const defaultRegion = "IN"

// NormalizeE164 parses input and returns it in E.164 form. Input that does
// not parse as a valid number is returned trimmed but otherwise untouched,
// so a typo never blocks an intake submission.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
