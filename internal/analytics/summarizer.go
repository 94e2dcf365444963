package analytics

import "github.com/chrisdamba/menuprofit/internal/models"

// Summarize partitions classified items into recommendation groups and rolls up totals.
// Totals are sums of the rounded per-item values so they agree with the item list.
// totalLines is the number of filtered order lines, including lines whose item is not in the catalog.
func Summarize(items []models.MenuItemAnalytics, agg Aggregation, totalLines int) models.AnalyticsResult {
	result := models.AnalyticsResult{
		Items:         items,
		Promote:       make([]models.MenuItemAnalytics, 0),
		PriceOptimize: make([]models.MenuItemAnalytics, 0),
		RenameRemove:  make([]models.MenuItemAnalytics, 0),
		Maintain:      make([]models.MenuItemAnalytics, 0),
	}
	if result.Items == nil {
		result.Items = make([]models.MenuItemAnalytics, 0)
	}

	var (
		revenue, listRevenue, profit, marginSum float64
		promoRevenue, promoListRevenue          float64
		promoProfit, nonPromoRevenue            float64
		nonPromoProfit                          float64
	)

	for _, item := range items {
		switch item.Recommendation {
		case models.RecommendationPromote:
			result.Promote = append(result.Promote, item)
		case models.RecommendationPriceOptimize:
			result.PriceOptimize = append(result.PriceOptimize, item)
		case models.RecommendationRenameRemove:
			result.RenameRemove = append(result.RenameRemove, item)
		default:
			result.Maintain = append(result.Maintain, item)
		}

		revenue += item.Revenue
		listRevenue += item.ListRevenue
		profit += item.Profit
		marginSum += item.MarginPercent
		promoRevenue += item.PromoRevenue
		promoListRevenue += item.PromoListRevenue
		promoProfit += item.PromoProfit
		nonPromoRevenue += item.NonPromoRevenue
		nonPromoProfit += item.NonPromoProfit
	}

	result.Summary = models.Summary{
		TotalRevenue:     round2(revenue),
		TotalListRevenue: round2(listRevenue),
		TotalProfit:      round2(profit),
		TotalOrders:      totalLines,
	}
	if totalLines > 0 {
		result.Summary.PromoOrdersPercent = round1(float64(agg.PromoLines) / float64(totalLines) * 100)
	}
	if len(items) > 0 {
		result.Summary.AvgMargin = round1(marginSum / float64(len(items)))
	}

	result.PromoImpact = models.PromoImpact{
		PromoRevenue:         round2(promoRevenue),
		PromoListRevenue:     round2(promoListRevenue),
		PromoProfit:          round2(promoProfit),
		NonPromoRevenue:      round2(nonPromoRevenue),
		NonPromoProfit:       round2(nonPromoProfit),
		PromoOrderCount:      agg.PromoLines,
		NonPromoOrderCount:   agg.NonPromoLines,
		PromoDiscountPercent: round1(discountPercent(promoRevenue, promoListRevenue)),
	}
	if agg.PromoLines > 0 {
		result.PromoImpact.PromoAvgOrderValue = round2(promoRevenue / float64(agg.PromoLines))
	}
	if agg.NonPromoLines > 0 {
		result.PromoImpact.NonPromoAvgOrderValue = round2(nonPromoRevenue / float64(agg.NonPromoLines))
	}

	return result
}
