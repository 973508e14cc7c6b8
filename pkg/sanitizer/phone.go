package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164. Numbers without a country code are
// read in defaultRegion. Anything phonenumbers cannot make sense of is
// returned trimmed but otherwise untouched.
func NormalizePhone(phone, defaultRegion string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsedNumber, err := phonenumbers.Parse(phone, strings.ToUpper(defaultRegion))
	if err != nil || !phonenumbers.IsPossibleNumber(parsedNumber) {
		return phone
	}
	return phonenumbers.Format(parsedNumber, phonenumbers.E164)
}
