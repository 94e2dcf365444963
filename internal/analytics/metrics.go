package analytics

import "github.com/chrisdamba/menuprofit/internal/models"

// DeriveMetrics builds one record per catalog item, in catalog order, including items without orders.
// Values are rounded here; everything downstream reads the rounded record.
func DeriveMetrics(items []models.MenuItem, agg Aggregation) []models.MenuItemAnalytics {
	out := make([]models.MenuItemAnalytics, 0, len(items))
	for _, item := range items {
		out = append(out, deriveItem(item, agg.Get(item.Key())))
	}
	return out
}

func deriveItem(item models.MenuItem, acc Accumulator) models.MenuItemAnalytics {
	unitMargin := item.SellingPrice - item.CostPrice
	revenue := acc.PromoRevenue + acc.NonPromoRevenue
	listRevenue := float64(acc.TotalQuantity) * item.SellingPrice
	profit := acc.PromoProfit + acc.NonPromoProfit

	return models.MenuItemAnalytics{
		ItemID:               item.ItemID,
		ItemName:             item.ItemName,
		Category:             item.Category,
		CostPrice:            item.CostPrice,
		SellingPrice:         item.SellingPrice,
		MarginPercent:        round1(marginPercent(item)),
		UnitMargin:           round2(unitMargin),
		TotalQuantity:        acc.TotalQuantity,
		Revenue:              round2(revenue),
		ListRevenue:          round2(listRevenue),
		Profit:               round2(profit),
		PromoProfit:          round2(acc.PromoProfit),
		NonPromoProfit:       round2(acc.NonPromoProfit),
		PromoQuantity:        acc.PromoQuantity,
		PromoPaidQuantity:    acc.PromoPaidQuantity,
		NonPromoQuantity:     acc.NonPromoQuantity,
		PromoRevenue:         round2(acc.PromoRevenue),
		PromoListRevenue:     round2(acc.PromoListRevenue),
		NonPromoRevenue:      round2(acc.NonPromoRevenue),
		PromoDiscountPercent: round1(discountPercent(acc.PromoRevenue, acc.PromoListRevenue)),
		Recommendation:       models.RecommendationMaintain,
		Confidence:           models.ConfidenceLow,
	}
}

// marginPercent is 0 when the selling price is 0; the classifier notes it in the explanation.
func marginPercent(item models.MenuItem) float64 {
	if item.SellingPrice == 0 {
		return 0
	}
	return finite((item.SellingPrice - item.CostPrice) / item.SellingPrice * 100)
}

func discountPercent(net, list float64) float64 {
	if list <= 0 {
		return 0
	}
	return (1 - net/list) * 100
}
