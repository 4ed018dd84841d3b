package cli

import (
	"fmt"
	"strconv"
	"time"
)

// validateNonNegativeNumber accepts a blank value (treated as 0) or a
// non-negative number. KPI counters never go below zero.
func validateNonNegativeNumber(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 {
		return fmt.Errorf("must be zero or greater")
	}
	return nil
}

// validateOptionalDate accepts a blank value or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("must be YYYY-MM-DD")
	}
	return nil
}

// parseValueOrZero converts a form input to a float, treating blank as 0.
// Inputs have already passed validation.
func parseValueOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	n, _ := strconv.ParseFloat(s, 64)
	return n
}
