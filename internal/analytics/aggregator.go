package analytics

import "github.com/chrisdamba/menuprofit/internal/models"

// Accumulator holds running totals for one item. TotalQuantity always equals
// PromoQuantity + NonPromoQuantity.
type Accumulator struct {
	TotalQuantity     int
	PromoQuantity     int
	PromoPaidQuantity int
	NonPromoQuantity  int
	PromoRevenue      float64 // net
	PromoListRevenue  float64 // gross
	NonPromoRevenue   float64
	PromoProfit       float64
	NonPromoProfit    float64
}

// Aggregation is the output of the fold over filtered order lines.
type Aggregation struct {
	Items map[string]*Accumulator
	// PromoLines and NonPromoLines count order lines, not baskets. Lines for unknown items are not counted.
	PromoLines    int
	NonPromoLines int
}

func (a Aggregation) Get(key string) Accumulator {
	if acc, ok := a.Items[key]; ok {
		return *acc
	}
	return Accumulator{}
}

// CatalogIndex maps the normalized item key to its catalog entry.
func CatalogIndex(items []models.MenuItem) map[string]models.MenuItem {
	index := make(map[string]models.MenuItem, len(items))
	for _, item := range items {
		index[item.Key()] = item
	}
	return index
}

// Aggregate folds order lines left to right. Lines referencing an unknown item are skipped.
func Aggregate(orders []models.OrderLine, catalog map[string]models.MenuItem) Aggregation {
	agg := Aggregation{Items: make(map[string]*Accumulator)}

	for _, order := range orders {
		key := models.ItemKey(order.ItemID)
		item, ok := catalog[key]
		if !ok {
			continue
		}

		acc, ok := agg.Items[key]
		if !ok {
			acc = &Accumulator{}
			agg.Items[key] = acc
		}

		line := priceLine(order.Quantity, order.IsPromo, item.SellingPrice, item.CostPrice)
		acc.TotalQuantity += order.Quantity

		if order.IsPromo {
			acc.PromoQuantity += order.Quantity
			acc.PromoPaidQuantity += line.paidUnits
			acc.PromoRevenue += line.netRevenue
			acc.PromoListRevenue += line.listRevenue
			acc.PromoProfit += line.profit()
			agg.PromoLines++
		} else {
			acc.NonPromoQuantity += order.Quantity
			acc.NonPromoRevenue += line.netRevenue
			acc.NonPromoProfit += line.profit()
			agg.NonPromoLines++
		}
	}

	return agg
}
