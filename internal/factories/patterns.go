package factories

import "time"

// dayWeight is the relative order volume of a calendar day.
func dayWeight(t time.Time) float64 {
	switch t.Weekday() {
	case time.Friday:
		return 1.8
	case time.Saturday, time.Sunday:
		return 1.5
	default:
		return 1.0
	}
}

const maxDayWeight = 1.8
