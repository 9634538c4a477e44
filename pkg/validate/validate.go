// Package validate holds the pure input predicates shared by the booking,
// catalog and review flows. Every function is total: no panics, no errors,
// a plain boolean (or, for Sanitize, a cleaned string).
package validate

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxEmailLength    = 255
	maxPriceLength    = 20
	maxSlugLength     = 100
	maxSanitizedInput = 2000
	minPhoneDigits    = 10
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// tolerant of +country prefixes, spaces, dots, dashes and parentheses
	phonePattern = regexp.MustCompile(`^\+?[\d\s().-]+$`)
	timePattern  = regexp.MustCompile(`^(0?[1-9]|1[0-2]):[0-5][0-9]\s?[AaPp][Mm]$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	pricePattern = regexp.MustCompile(`^\$?\d+(?:\.\d{2})?\+?$`)

	nonDigits       = regexp.MustCompile(`\D`)
	jsProtocol      = regexp.MustCompile(`(?i)javascript:`)
	inlineHandlers  = regexp.MustCompile(`(?i)\bon\w+\s*=`)
	angleBrackets   = strings.NewReplacer("<", "", ">", "")
)

// Email checks a light RFC shape: local@domain.tld, at most 255 characters.
func Email(s string) bool {
	if s == "" || len(s) > maxEmailLength {
		return false
	}
	return emailPattern.MatchString(s)
}

// Phone requires at least 10 digits once formatting is stripped, and the
// original string to look like a phone number (optional + prefix, separators).
func Phone(s string) bool {
	if s == "" {
		return false
	}
	digits := nonDigits.ReplaceAllString(s, "")
	if len(digits) < minPhoneDigits {
		return false
	}
	return phonePattern.MatchString(s)
}

// Date checks strict YYYY-MM-DD against the real calendar, so "2024-02-30"
// fails and "2024-02-29" passes (leap year).
func Date(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	// time.Parse normalizes overflow dates; require an exact round-trip
	return parsed.Format("2006-01-02") == s
}

// Time checks "H:MM AM/PM" or "HH:MM am/pm": hour 1-12, minute 00-59.
func Time(s string) bool {
	return timePattern.MatchString(s)
}

// Slug allows lowercase letters, digits and single interior hyphens,
// length 1-100.
func Slug(s string) bool {
	if s == "" || len(s) > maxSlugLength {
		return false
	}
	return slugPattern.MatchString(s)
}

// Price accepts display prices like "199", "$199", "$199.99" and "$199+",
// at most 20 characters.
func Price(s string) bool {
	if s == "" || len(s) > maxPriceLength {
		return false
	}
	return pricePattern.MatchString(s)
}

// Sanitize trims the input, strips angle brackets, javascript: protocol
// markers and inline event-handler attributes, and truncates to 2000
// characters. Free text coming from guests goes through here before storage.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = angleBrackets.Replace(s)
	s = jsProtocol.ReplaceAllString(s, "")
	s = inlineHandlers.ReplaceAllString(s, "")
	if utf8.RuneCountInString(s) > maxSanitizedInput {
		// Граница по рунам, чтобы не разрезать многобайтовый символ
		s = string([]rune(s)[:maxSanitizedInput])
	}
	return s
}
