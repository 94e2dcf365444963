package analytics

import (
	"math"
	"strconv"
)

// round2 and round1 round half up (toward +Inf).
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// formatNumber prints the shortest decimal form: 62.5, 80, 12.34.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
