package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// parseFloatField parses a form field as a number. Negative values are
// accepted: the layout tolerates degenerate settings.
func parseFloatField(s, fieldName string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s cannot be empty", fieldName)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", fieldName)
	}
	return val, nil
}

// formatFloat renders a setting for an entry field without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
