// Package phone normalizes user-supplied phone numbers to E.164.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// NormalizeE164 parses raw with the given default region and returns the
// E.164 form. Numbers that fail to parse or are not valid for their region
// yield domain.ErrInvalidPhoneNumber.
func NormalizeE164(raw, defaultRegion string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return "", domain.ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", domain.ErrInvalidPhoneNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
