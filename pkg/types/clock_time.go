package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day in 12-hour format, e.g. "2:00 PM".
// It carries no date and no timezone. The canonical form has no leading zero
// in the hour and an upper-case meridiem ("7:00 AM", "12:30 PM").
type ClockTime string

var (
	// ErrInvalidClockTime is returned for strings that are not a valid 12-hour time
	ErrInvalidClockTime = errors.New("types: invalid clock time")

	clockTimePattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9])\s?([AaPp][Mm])$`)
)

// ParseClockTime parses and normalizes a 12-hour time string.
// Accepts "H:MM AM", "HH:MM pm" etc; minute 00-59, hour 1-12.
func ParseClockTime(s string) (ClockTime, error) {
	m := clockTimePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	meridiem := strings.ToUpper(m[3])

	return ClockTime(fmt.Sprintf("%d:%s %s", hour, m[2], meridiem)), nil
}

// NewClockTime converts a time.Time's clock reading into a ClockTime.
func NewClockTime(t time.Time) ClockTime {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// FromMinutes builds a ClockTime from minutes since midnight (0..1439).
func FromMinutes(total int) ClockTime {
	total = ((total % 1440) + 1440) % 1440

	hour24 := total / 60
	minute := total % 60

	meridiem := "AM"
	hour := hour24
	switch {
	case hour24 == 0:
		hour = 12
	case hour24 == 12:
		meridiem = "PM"
	case hour24 > 12:
		hour = hour24 - 12
		meridiem = "PM"
	}

	return ClockTime(fmt.Sprintf("%d:%02d %s", hour, minute, meridiem))
}

// Validate reports whether the value is a well-formed 12-hour time.
func (c ClockTime) Validate() error {
	if !clockTimePattern.MatchString(string(c)) {
		return fmt.Errorf("%w: %q", ErrInvalidClockTime, string(c))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (c ClockTime) IsZero() bool {
	return c == ""
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() (int, error) {
	m := clockTimePattern.FindStringSubmatch(string(c))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, string(c))
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if hour == 12 {
		hour = 0
	}
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}

	return hour*60 + minute, nil
}

// IsBefore reports whether c is strictly earlier in the day than other.
// Malformed values compare as false.
func (c ClockTime) IsBefore(other ClockTime) bool {
	a, err := c.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether c is strictly later in the day than other.
func (c ClockTime) IsAfter(other ClockTime) bool {
	return other.IsBefore(c)
}

// Equal compares two clock times by their position in the day,
// so "02:00 PM" and "2:00 pm" are equal once parsed.
func (c ClockTime) Equal(other ClockTime) bool {
	a, err := c.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a == b
}

// AddMinutes returns the clock time shifted forward by m minutes, wrapping at midnight.
func (c ClockTime) AddMinutes(m int) (ClockTime, error) {
	total, err := c.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(total + m), nil
}

func (c ClockTime) String() string {
	return string(c)
}

// Value implements driver.Valuer; the canonical string is what gets persisted.
func (c ClockTime) Value() (driver.Value, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return string(c), nil
}

// Scan implements sql.Scanner, normalizing whatever form was stored.
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseClockTime(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		parsed, err := ParseClockTime(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidClockTime, src)
	}
}
