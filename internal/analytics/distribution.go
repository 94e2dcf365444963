package analytics

import (
	"math"
	"sort"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// Quantile uses linear interpolation between closest ranks (R-7, the NumPy default).
// sorted must be ascending. An empty slice yields 0.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := float64(len(sorted)-1) * q
	base := int(math.Floor(pos))
	if base < 0 {
		return sorted[0]
	}
	if base >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	rest := pos - float64(base)
	return sorted[base] + rest*(sorted[base+1]-sorted[base])
}

// Distribution holds the relative thresholds derived from the current item set.
type Distribution struct {
	LowQuantity  float64 // P25 by default
	MidQuantity  float64 // P50
	HighQuantity float64 // P75
	LowMargin    float64 // P50
	HighMargin   float64 // P75
}

func Analyze(items []models.MenuItemAnalytics, t models.Thresholds) Distribution {
	quantities := make([]float64, 0, len(items))
	margins := make([]float64, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, float64(item.TotalQuantity))
		margins = append(margins, item.MarginPercent)
	}
	sort.Float64s(quantities)
	sort.Float64s(margins)

	return Distribution{
		LowQuantity:  Quantile(quantities, t.LowVolumeQuantile),
		MidQuantity:  Quantile(quantities, t.MidVolumeQuantile),
		HighQuantity: Quantile(quantities, t.HighVolumeQuantile),
		LowMargin:    Quantile(margins, t.LowMarginQuantile),
		HighMargin:   Quantile(margins, t.HighMarginQuantile),
	}
}
