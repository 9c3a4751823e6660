// Package validate holds the structural checks applied to request input
// before any ownership check or persistence call.
package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"

	"github.com/AnshRaj112/journal-backend/internal/apperr"
)

var (
	uuidRx  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	MinPasswordLength = 6
	// bcrypt only looks at the first 72 bytes.
	MaxPasswordBytes = 72

	MinMood = 1
	MaxMood = 5
)

// Accepted layouts for caller-supplied timestamps, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// IsUUID reports whether v is a canonical textual UUID of version 1-5.
func IsUUID(v string) bool { return uuidRx.MatchString(v) }

// IsEmail reports whether v has the local@domain.tld shape.
func IsEmail(v string) bool { return emailRx.MatchString(v) }

// UUID checks an identity-shaped field and returns its lower-case form.
func UUID(field, v string) (string, error) {
	if !IsUUID(v) {
		return "", apperr.Validation(field + " must be a UUID")
	}
	return uuid.MustParse(v).String(), nil
}

func Email(field, v string) error {
	if !IsEmail(v) {
		return apperr.Validation(field + " must be a valid email")
	}
	return nil
}

// RequiredText fails when v is empty after trimming whitespace.
func RequiredText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Validation(field + " is required")
	}
	return nil
}

// Password checks the length bounds for a new password. The minimum is in
// UTF-16 code units, so an astral character counts twice.
func Password(v string) error {
	if utf16Len(v) < MinPasswordLength {
		return apperr.Validation("Password must be >= 6 chars")
	}
	if len(v) > MaxPasswordBytes {
		return apperr.Validation("Password must be <= 72 bytes")
	}
	return nil
}

func utf16Len(v string) int {
	n := 0
	for _, r := range v {
		n += utf16.RuneLen(r)
	}
	return n
}

// MoodRating coerces a JSON number or numeric string to an integer in [1,5].
func MoodRating(raw json.RawMessage) (int, error) {
	bad := apperr.Validation("mood_rating must be an integer 1-5")

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, bad
	}

	var f float64
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, bad
		}
		s = strings.TrimSpace(s)
		if s == "" {
			// "" coerces to 0, which is out of range anyway.
			return 0, bad
		}
		v, err := parseNumeric(s)
		if err != nil {
			return 0, bad
		}
		f = v
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, bad
		}
	default:
		return 0, bad
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < MinMood || f > MaxMood {
		return 0, bad
	}
	return int(f), nil
}

// parseNumeric reads a decimal number or a 0x/0b/0o prefixed integer.
func parseNumeric(s string) (float64, error) {
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			v, err := strconv.ParseUint(s[2:], base, 64)
			return float64(v), err
		}
	}
	if strings.ContainsAny(s, "pP_") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// OptionalTimestamp parses an optional date-time. Absent and null values
// yield nil; anything present must parse, even though the field is optional.
func OptionalTimestamp(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	bad := apperr.Validation("timestamp must be ISO date or omit it")

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, bad
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, bad
}
