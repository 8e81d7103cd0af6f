package ingest

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// MinDays is the smallest number of days that can be requested
	MinDays = 1

	// MaxDays is the largest number of days that can be requested
	MaxDays = 10

	// DefaultDays is used when no day count is given
	DefaultDays = 1
)

// ErrInvalidDays is returned for day counts outside [MinDays, MaxDays]
var ErrInvalidDays = errors.New("enter the number of days from 1 to 10")

// ValidateDays validates the requested day count
func ValidateDays(days int) error {
	if days < MinDays || days > MaxDays {
		return ErrInvalidDays
	}

	return nil
}

// ParseDays parses and validates a raw day count.
// An empty value yields DefaultDays
func ParseDays(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return DefaultDays, nil
	}

	days, err := strconv.Atoi(v)
	if err != nil {
		return 0, ErrInvalidDays
	}

	if err := ValidateDays(days); err != nil {
		return 0, err
	}

	return days, nil
}
