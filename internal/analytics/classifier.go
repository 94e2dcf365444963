package analytics

import (
	"fmt"
	"math"

	"github.com/chrisdamba/menuprofit/internal/models"
)

const (
	noSalesWhy   = "No sales in the selected period. Keep listed and monitor, or verify item availability/visibility."
	zeroPriceWhy = " Selling price is 0, so margin is reported as 0%."
)

type Classifier struct {
	thresholds models.Thresholds
}

func NewClassifier(t models.Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Confidence reflects sample size in delivered units.
func (c *Classifier) Confidence(totalQuantity int) models.Confidence {
	switch {
	case totalQuantity >= c.thresholds.MinUnitsHighConfidence:
		return models.ConfidenceHigh
	case totalQuantity >= c.thresholds.MinUnitsMediumConfidence:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Classify fills recommendation, explanation and confidence in place. The first matching rule wins.
func (c *Classifier) Classify(items []models.MenuItemAnalytics, dist Distribution) {
	for i := range items {
		c.classifyItem(&items[i], dist)
	}
}

func (c *Classifier) classifyItem(item *models.MenuItemAnalytics, dist Distribution) {
	item.Confidence = c.Confidence(item.TotalQuantity)

	qty := float64(item.TotalQuantity)
	isHighVolume := qty >= dist.HighQuantity
	isLowVolume := qty <= dist.LowQuantity
	isMidOrLowerVolume := qty <= dist.MidQuantity
	isHighMargin := item.MarginPercent >= dist.HighMargin
	isLowMargin := item.MarginPercent <= dist.LowMargin

	promoMix := 0.0
	if item.TotalQuantity > 0 {
		promoMix = float64(item.PromoQuantity) / qty * 100
	}
	promoProfitPerUnit := 0.0
	if item.PromoQuantity > 0 {
		promoProfitPerUnit = item.PromoProfit / float64(item.PromoQuantity)
	}
	// never promote an item whose promo loses money per delivered unit
	promoUnprofitable := item.PromoQuantity > 0 && promoProfitPerUnit < 0

	switch {
	case isHighMargin && isMidOrLowerVolume && !promoUnprofitable:
		item.Recommendation = models.RecommendationPromote
		item.RecommendationWhy = fmt.Sprintf("High unit margin (%s%%) with lower-than-typical volume (%d units).",
			formatNumber(item.MarginPercent), item.TotalQuantity)
		if item.PromoQuantity > 0 {
			item.RecommendationWhy += fmt.Sprintf(" Promo mix %s%% and promo profit/unit %s.",
				formatNumber(round1(promoMix)), formatNumber(round2(promoProfitPerUnit)))
		} else {
			item.RecommendationWhy += " Not currently driven by promos."
		}
	case isHighVolume && isLowMargin:
		item.Recommendation = models.RecommendationPriceOptimize
		item.RecommendationWhy = fmt.Sprintf("High volume (%d units) but below-median unit margin (%s%%).", item.TotalQuantity, formatNumber(item.MarginPercent)) +
			" Consider small price tests or cost reduction to improve contribution without losing demand."
	case isLowVolume && isLowMargin && item.TotalQuantity > 0:
		item.Recommendation = models.RecommendationRenameRemove
		item.RecommendationWhy = fmt.Sprintf("Low demand (%d units) and weak unit margin (%s%%).", item.TotalQuantity, formatNumber(item.MarginPercent)) +
			" Candidate for rename/repositioning or removal if it adds menu complexity."
	case item.TotalQuantity == 0:
		item.Recommendation = models.RecommendationMaintain
		item.RecommendationWhy = noSalesWhy
	default:
		item.Recommendation = models.RecommendationMaintain
		item.RecommendationWhy = fmt.Sprintf("Balanced performance versus peers (volume around P50=%s, margin P50=%s%%).",
			formatNumber(math.Floor(dist.MidQuantity+0.5)), formatNumber(round1(dist.LowMargin)))
	}

	if item.SellingPrice == 0 {
		item.RecommendationWhy += zeroPriceWhy
	}
}
