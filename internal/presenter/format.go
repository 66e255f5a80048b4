package presenter

import (
	"fmt"
	"strconv"
)

// FormatNumber renders a quota figure compactly: 1234 -> "1.2k",
// 250 -> "250", 12.34 -> "12.3".
func FormatNumber(n float64) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk", n/1000)
	}
	if n >= 100 {
		return fmt.Sprintf("%.0f", n)
	}
	return fmt.Sprintf("%.1f", n)
}

// FormatRaw renders n with the fewest digits that round-trip, for metadata
// consumers that want the exact value.
func FormatRaw(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatPercent renders a fraction in [0,1] as a percentage with one decimal.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f", fraction*100)
}
