package analytics

import (
	"testing"

	"github.com/chrisdamba/menuprofit/internal/models"
)

var burger = models.MenuItem{ItemID: 1, ItemName: "Burger", Category: "Mains", CostPrice: 2, SellingPrice: 10}

func TestAggregatePromoLine(t *testing.T) {
	agg := Aggregate([]models.OrderLine{
		{OrderID: "o1", ItemID: "1", Quantity: 4, IsPromo: true, Platform: "ubereats", Timestamp: "2024-01-01"},
	}, CatalogIndex([]models.MenuItem{burger}))

	acc := agg.Get("1")
	if acc.PromoQuantity != 4 || acc.PromoPaidQuantity != 2 {
		t.Fatalf("unexpected promo quantities: %+v", acc)
	}
	if acc.PromoRevenue != 20 || acc.PromoListRevenue != 40 {
		t.Fatalf("unexpected promo revenue: %+v", acc)
	}
	if acc.PromoProfit != 12 {
		t.Fatalf("expected promo profit 12 (20 net - 8 COGS), got %v", acc.PromoProfit)
	}
	if agg.PromoLines != 1 || agg.NonPromoLines != 0 {
		t.Fatalf("unexpected line counts: promo=%d nonPromo=%d", agg.PromoLines, agg.NonPromoLines)
	}
}

func TestAggregateNonPromoLine(t *testing.T) {
	agg := Aggregate([]models.OrderLine{
		{ItemID: "1", Quantity: 5, Timestamp: "2024-01-01"},
	}, CatalogIndex([]models.MenuItem{burger}))

	acc := agg.Get("1")
	if acc.NonPromoRevenue != 50 || acc.NonPromoProfit != 40 || acc.NonPromoQuantity != 5 {
		t.Fatalf("unexpected accumulator: %+v", acc)
	}
	if agg.NonPromoLines != 1 {
		t.Fatalf("expected 1 non-promo line, got %d", agg.NonPromoLines)
	}
}

func TestAggregateAppliesPromoPerLine(t *testing.T) {
	// two single-unit promo lines pay for two units, not ceil(2/2)
	agg := Aggregate([]models.OrderLine{
		{ItemID: "1", Quantity: 1, IsPromo: true},
		{ItemID: "1", Quantity: 1, IsPromo: true},
	}, CatalogIndex([]models.MenuItem{burger}))

	acc := agg.Get("1")
	if acc.PromoPaidQuantity != 2 || acc.PromoRevenue != 20 {
		t.Fatalf("expected per-line promo accounting, got %+v", acc)
	}
}

func TestAggregateSkipsUnknownItems(t *testing.T) {
	agg := Aggregate([]models.OrderLine{
		{ItemID: "99", Quantity: 3},
		{ItemID: " 1 ", Quantity: 2},
		{ItemID: "abc", Quantity: 1, IsPromo: true},
	}, CatalogIndex([]models.MenuItem{burger}))

	if len(agg.Items) != 1 {
		t.Fatalf("expected only the known item to be aggregated, got %d", len(agg.Items))
	}
	if agg.Get("1").TotalQuantity != 2 {
		t.Fatalf("expected normalized id to match, got %+v", agg.Get("1"))
	}
	if agg.PromoLines != 0 || agg.NonPromoLines != 1 {
		t.Fatalf("unknown lines must not be counted: promo=%d nonPromo=%d", agg.PromoLines, agg.NonPromoLines)
	}
	if got := agg.Get("99"); got != (Accumulator{}) {
		t.Fatalf("expected zero accumulator for missing item, got %+v", got)
	}
}

func TestAggregateQuantityInvariant(t *testing.T) {
	catalog := CatalogIndex([]models.MenuItem{
		burger,
		{ItemID: 2, ItemName: "Fries", CostPrice: 0.5, SellingPrice: 3.25},
	})
	var orders []models.OrderLine
	for i := 1; i <= 30; i++ {
		orders = append(orders, models.OrderLine{ItemID: []string{"1", "2"}[i%2], Quantity: i%4 + 1, IsPromo: i%3 == 0})
	}

	agg := Aggregate(orders, catalog)
	for key, acc := range agg.Items {
		if acc.TotalQuantity != acc.PromoQuantity+acc.NonPromoQuantity {
			t.Fatalf("item %s: total %d != promo %d + nonPromo %d", key, acc.TotalQuantity, acc.PromoQuantity, acc.NonPromoQuantity)
		}
	}
	if agg.PromoLines+agg.NonPromoLines != len(orders) {
		t.Fatalf("expected %d counted lines, got %d", len(orders), agg.PromoLines+agg.NonPromoLines)
	}
}
