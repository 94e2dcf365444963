package analytics

import (
	"strings"
	"testing"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// P25 qty 4.25, P50 qty 7.5, P75 qty 12.5, P50 margin 25, P75 margin 32.5
var peerDistribution = Distribution{LowQuantity: 4.25, MidQuantity: 7.5, HighQuantity: 12.5, LowMargin: 25, HighMargin: 32.5}

func TestConfidence(t *testing.T) {
	c := NewClassifier(models.DefaultThresholds())
	cases := []struct {
		units    int
		expected models.Confidence
	}{
		{0, models.ConfidenceLow},
		{14, models.ConfidenceLow},
		{15, models.ConfidenceMedium},
		{39, models.ConfidenceMedium},
		{40, models.ConfidenceHigh},
		{400, models.ConfidenceHigh},
	}
	for _, tc := range cases {
		if got := c.Confidence(tc.units); got != tc.expected {
			t.Fatalf("Confidence(%d): expected %s, got %s", tc.units, tc.expected, got)
		}
	}
}

func TestConfidenceUsesConfiguredThresholds(t *testing.T) {
	th := models.DefaultThresholds()
	th.MinUnitsMediumConfidence = 2
	th.MinUnitsHighConfidence = 5
	c := NewClassifier(th)
	if got := c.Confidence(5); got != models.ConfidenceHigh {
		t.Fatalf("expected high, got %s", got)
	}
	if got := c.Confidence(3); got != models.ConfidenceMedium {
		t.Fatalf("expected medium, got %s", got)
	}
}

func TestClassifyRules(t *testing.T) {
	cases := []struct {
		name     string
		item     models.MenuItemAnalytics
		expected models.Recommendation
		why      string
	}{
		{
			name:     "promote without promos",
			item:     models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 40, TotalQuantity: 2, NonPromoQuantity: 2},
			expected: models.RecommendationPromote,
			why:      "High unit margin (40%) with lower-than-typical volume (2 units). Not currently driven by promos.",
		},
		{
			name: "promote with profitable promos",
			item: models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 80, TotalQuantity: 4, PromoQuantity: 4,
				PromoProfit: 12},
			expected: models.RecommendationPromote,
			why:      "High unit margin (80%) with lower-than-typical volume (4 units). Promo mix 100% and promo profit/unit 3.",
		},
		{
			name: "guardrail blocks promote",
			item: models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 40, TotalQuantity: 2, PromoQuantity: 2,
				PromoProfit: -2},
			expected: models.RecommendationMaintain,
			why:      "Balanced performance versus peers (volume around P50=8, margin P50=25%).",
		},
		{
			name:     "price optimize",
			item:     models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 10, TotalQuantity: 20},
			expected: models.RecommendationPriceOptimize,
			why:      "High volume (20 units) but below-median unit margin (10%). Consider small price tests or cost reduction to improve contribution without losing demand.",
		},
		{
			name:     "rename or remove",
			item:     models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 12.5, TotalQuantity: 3},
			expected: models.RecommendationRenameRemove,
			why:      "Low demand (3 units) and weak unit margin (12.5%). Candidate for rename/repositioning or removal if it adds menu complexity.",
		},
		{
			name:     "no sales is maintain",
			item:     models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 12.5},
			expected: models.RecommendationMaintain,
			why:      noSalesWhy,
		},
		{
			name:     "balanced is maintain",
			item:     models.MenuItemAnalytics{SellingPrice: 10, MarginPercent: 20, TotalQuantity: 10},
			expected: models.RecommendationMaintain,
			why:      "Balanced performance versus peers (volume around P50=8, margin P50=25%).",
		},
		{
			name:     "zero price is noted",
			item:     models.MenuItemAnalytics{SellingPrice: 0, MarginPercent: 0, TotalQuantity: 10},
			expected: models.RecommendationMaintain,
			why:      "Balanced performance versus peers (volume around P50=8, margin P50=25%)." + zeroPriceWhy,
		},
	}

	c := NewClassifier(models.DefaultThresholds())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := []models.MenuItemAnalytics{tc.item}
			c.Classify(items, peerDistribution)
			if items[0].Recommendation != tc.expected {
				t.Fatalf("expected %s, got %s (%s)", tc.expected, items[0].Recommendation, items[0].RecommendationWhy)
			}
			if items[0].RecommendationWhy != tc.why {
				t.Fatalf("expected why %q, got %q", tc.why, items[0].RecommendationWhy)
			}
		})
	}
}

func TestClassifyPromoteWinsOverPriceOptimize(t *testing.T) {
	// a flat distribution makes every rule's volume test true at once
	dist := Distribution{LowQuantity: 5, MidQuantity: 5, HighQuantity: 5, LowMargin: 50, HighMargin: 50}
	items := []models.MenuItemAnalytics{{SellingPrice: 10, MarginPercent: 50, TotalQuantity: 5}}
	NewClassifier(models.DefaultThresholds()).Classify(items, dist)
	if items[0].Recommendation != models.RecommendationPromote {
		t.Fatalf("expected promote to take priority, got %s", items[0].Recommendation)
	}
}

func TestClassifyPromoteReportsPromoEconomics(t *testing.T) {
	items := []models.MenuItemAnalytics{{SellingPrice: 10, MarginPercent: 60, TotalQuantity: 6, PromoQuantity: 2, NonPromoQuantity: 4, PromoProfit: 3}}
	NewClassifier(models.DefaultThresholds()).Classify(items, peerDistribution)
	if !strings.Contains(items[0].RecommendationWhy, "Promo mix 33.3% and promo profit/unit 1.5.") {
		t.Fatalf("unexpected why: %q", items[0].RecommendationWhy)
	}
}
