package presenter

import "math"

// Color names understood by the output package.
const (
	ColorGreen  = "green"
	ColorCyan   = "cyan"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

const (
	WarningMarker = "⚠"
	BlockedMarker = "⛔"
	UnhealthyMark = "✗"
)

// Nerd Font battery glyphs, emptiest first. Index 0 is the alert glyph
// shown below 5% remaining.
var batteryIcons = [...]string{
	"\U000F0083", // battery-alert
	"\U000F007A", // 10
	"\U000F007B", // 20
	"\U000F007C", // 30
	"\U000F007D", // 40
	"\U000F007E", // 50
	"\U000F007F", // 60
	"\U000F0080", // 70
	"\U000F0081", // 80
	"\U000F0082", // 90
	"\U000F0079", // full
}

// Fraction returns remaining/total clamped to [0,1]. A non-positive total
// has no meaningful ratio and is treated as nothing remaining.
func Fraction(remaining, total float64) float64 {
	if total <= 0 {
		return 0
	}
	f := remaining / total
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// batteryBoundaries are the lower edges of icon buckets 1..10.
var batteryBoundaries = [...]float64{0.05, 0.15, 0.25, 0.35, 0.45, 0.55, 0.65, 0.75, 0.85, 0.95}

// BatteryIcon picks one of eleven glyphs; the bucket is the number of
// boundaries at or below fraction.
func BatteryIcon(fraction float64) string {
	return batteryIcons[batteryBucket(fraction)]
}

func batteryBucket(fraction float64) int {
	bucket := 0
	for _, boundary := range batteryBoundaries {
		if fraction >= boundary {
			bucket++
		}
	}
	return bucket
}

// ColorFor maps a remaining fraction onto the segment palette. The cut
// points sit on the 0.1 grid and widen toward full: red takes one step,
// yellow two, cyan three, green the top four.
func ColorFor(fraction float64) string {
	switch {
	case fraction < 0.10:
		return ColorRed
	case fraction < 0.30:
		return ColorYellow
	case fraction < 0.60:
		return ColorCyan
	default:
		return ColorGreen
	}
}

// Warning returns the warning marker when fraction is under threshold.
func Warning(fraction, threshold float64) string {
	if fraction < threshold {
		return WarningMarker
	}
	return ""
}

// Gauge is one labelled fraction for the status and monitor views.
type Gauge struct {
	Label    string
	Fraction float64
	Text     string
}
