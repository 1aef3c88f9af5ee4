package shop

import (
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse numbers without a
// country prefix
const DefaultPhoneRegion = "US"

// NormalizePhone formats a phone number in international form. Numbers
// that do not parse are stored as given, the field is informational.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}

	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return raw
	}

	if !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// ValidPhone reports whether the number parses as a real phone number
func ValidPhone(raw string) bool {
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
