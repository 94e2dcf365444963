package analytics

import "github.com/chrisdamba/menuprofit/internal/models"

// FilterOrders keeps the lines inside the filter window. The input slice is not modified.
func FilterOrders(orders []models.OrderLine, filter models.Filter) []models.OrderLine {
	f := filter.Normalize()
	if f == (models.Filter{}) {
		return orders
	}
	out := make([]models.OrderLine, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}
