// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePrice strips currency symbols and thousands separators from a
// display price ("$1,234.56", "5,82€") and returns the plain decimal value.
// The decimal separator may be either '.' or ','; when both appear, the one
// occurring last is taken as the decimal point.
func NormalizePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	// Currency abbreviations like "pуб." leave a trailing separator behind;
	// a separator with no digits after it carries no meaning either way.
	s := strings.TrimRight(b.String(), ",.")
	if s == "" {
		return 0, fmt.Errorf("no numeric value in price %q", raw)
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European form: dots group thousands, comma is the decimal point.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by at most two digits is a decimal point;
		// anything else is a thousands separator.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price %q: %w", raw, err)
	}
	return value, nil
}
