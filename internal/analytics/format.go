package analytics

import (
	"fmt"
	"math"
)

// FormatUsd abbreviates a dollar amount: "K" at |v| >= 1,000 and "M" at
// |v| >= 1,000,000, two decimals, sign before the dollar sign.
func FormatUsd(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	abs := math.Abs(value)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s$%.2fK", sign, abs/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, abs)
	}
}

// FormatPercent renders a percentage with an explicit sign prefix for
// non-negative values.
func FormatPercent(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatDuration renders minutes under an hour, hours (one decimal) under a
// day, days (one decimal) otherwise.
func FormatDuration(minutes float64) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", int(math.Round(minutes)))
	case minutes < 1440:
		return fmt.Sprintf("%.1fh", minutes/60)
	default:
		return fmt.Sprintf("%.1fd", minutes/1440)
	}
}
