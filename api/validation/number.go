package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseNumber parses a required decimal form value.
func ParseNumber(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, field, value)
	}
	return n, nil
}

// ParseOptionalNumber returns def for an empty value.
func ParseOptionalNumber(field, value string, def float64) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	return ParseNumber(field, value)
}

// ParseOptionalInt parses a non-negative integer, returning 0 for an empty value.
func ParseOptionalInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, field, value)
	}
	return n, nil
}

// ParseOptionalBool accepts the usual strconv spellings plus "on" from HTML
// checkboxes.
func ParseOptionalBool(field, value string, def bool) (bool, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return def, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidValue, field, value)
	}
	return b, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s=%q", ErrInvalidDate, field, value)
	}
	return t, nil
}

// IsInputError reports whether err came from form parsing.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidDate)
}
