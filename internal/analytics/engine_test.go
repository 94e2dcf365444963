package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/chrisdamba/menuprofit/internal/models"
)

func newTestEngine() *Engine {
	return NewEngine(models.DefaultThresholds(), nil)
}

func peerCatalog() []models.MenuItem {
	return []models.MenuItem{
		{ItemID: 1, ItemName: "Truffle Fries", Category: "Sides", CostPrice: 6, SellingPrice: 10},
		{ItemID: 2, ItemName: "Chicken Wrap", Category: "Mains", CostPrice: 8, SellingPrice: 10},
		{ItemID: 3, ItemName: "Cola", Category: "Drinks", CostPrice: 9, SellingPrice: 10},
		{ItemID: 4, ItemName: "Brownie", Category: "Desserts", CostPrice: 7, SellingPrice: 10},
		{ItemID: 5, ItemName: "Seasonal Soup", Category: "Starters", CostPrice: 2, SellingPrice: 8},
	}
}

func TestComputePromoScenario(t *testing.T) {
	result := newTestEngine().Compute(
		[]models.MenuItem{burger},
		[]models.OrderLine{{ItemID: "1", Quantity: 4, IsPromo: true, Timestamp: "2024-01-01"}},
		models.Filter{},
	)

	item := result.Items[0]
	if item.PromoQuantity != 4 || item.PromoPaidQuantity != 2 || item.PromoRevenue != 20 || item.PromoListRevenue != 40 {
		t.Fatalf("unexpected promo fields: %+v", item)
	}
	if item.PromoProfit != 12 || item.PromoDiscountPercent != 50 {
		t.Fatalf("unexpected promo economics: %+v", item)
	}
	if result.PromoImpact.PromoDiscountPercent != 50 || result.PromoImpact.PromoAvgOrderValue != 20 {
		t.Fatalf("unexpected promo impact: %+v", result.PromoImpact)
	}
	if result.Summary.PromoOrdersPercent != 100 {
		t.Fatalf("expected 100%% promo lines, got %v", result.Summary.PromoOrdersPercent)
	}
}

func TestComputeNonPromoScenario(t *testing.T) {
	result := newTestEngine().Compute(
		[]models.MenuItem{burger},
		[]models.OrderLine{{ItemID: "1", Quantity: 5, Timestamp: "2024-01-01"}},
		models.Filter{},
	)

	item := result.Items[0]
	if item.NonPromoRevenue != 50 || item.NonPromoProfit != 40 {
		t.Fatalf("unexpected non-promo fields: %+v", item)
	}
	if item.Revenue != 50 || item.ListRevenue != 50 {
		t.Fatalf("expected revenue == listRevenue == 50, got %v / %v", item.Revenue, item.ListRevenue)
	}
	if result.PromoImpact.PromoDiscountPercent != 0 || result.PromoImpact.NonPromoAvgOrderValue != 50 {
		t.Fatalf("unexpected promo impact: %+v", result.PromoImpact)
	}
}

func TestComputeDateFilterExcludesOutOfWindowLines(t *testing.T) {
	orders := []models.OrderLine{
		{ItemID: "1", Quantity: 7, IsPromo: true, Platform: "ubereats", Timestamp: "2024-01-09"},
		{ItemID: "1", Quantity: 3, Platform: "ubereats", Timestamp: "2024-01-10"},
		{ItemID: "1", Quantity: 2, Platform: "deliveroo", Timestamp: "2024-01-31"},
		{ItemID: "1", Quantity: 9, Platform: "ubereats", Timestamp: "2024-02-01"},
	}
	result := newTestEngine().Compute([]models.MenuItem{burger}, orders, models.Filter{StartDate: "2024-01-10", EndDate: "2024-01-31"})

	item := result.Items[0]
	if item.TotalQuantity != 5 || item.PromoQuantity != 0 {
		t.Fatalf("expected only in-window units, got %+v", item)
	}
	if result.Summary.TotalOrders != 2 || result.PromoImpact.PromoOrderCount != 0 || result.PromoImpact.NonPromoOrderCount != 2 {
		t.Fatalf("unexpected line counts: %+v / %+v", result.Summary, result.PromoImpact)
	}

	byPlatform := newTestEngine().Compute([]models.MenuItem{burger}, orders, models.Filter{StartDate: "2024-01-10", EndDate: "2024-01-31", Platform: "deliveroo"})
	if byPlatform.Items[0].TotalQuantity != 2 || byPlatform.Summary.TotalOrders != 1 {
		t.Fatalf("expected platform filter to apply, got %+v", byPlatform.Summary)
	}

	all := newTestEngine().Compute([]models.MenuItem{burger}, orders, models.Filter{Platform: models.PlatformAll})
	if all.Summary.TotalOrders != 4 {
		t.Fatalf("expected platform=all to keep every line, got %d", all.Summary.TotalOrders)
	}
}

func TestComputeGuardrailEndToEnd(t *testing.T) {
	orders := []models.OrderLine{
		{ItemID: "1", Quantity: 2, IsPromo: true},
		{ItemID: "2", Quantity: 10},
		{ItemID: "3", Quantity: 20},
		{ItemID: "4", Quantity: 5},
	}
	result := newTestEngine().Compute(peerCatalog()[:4], orders, models.Filter{})

	fries := result.Items[0]
	if fries.PromoProfit != -2 {
		t.Fatalf("expected promo loss of 2, got %v", fries.PromoProfit)
	}
	if fries.Recommendation == models.RecommendationPromote {
		t.Fatalf("item with loss-making promo must not be promoted")
	}
	if result.Items[2].Recommendation != models.RecommendationPriceOptimize {
		t.Fatalf("expected high-volume low-margin item to be price_optimize, got %s", result.Items[2].Recommendation)
	}
}

func TestComputeGroupsPartitionItems(t *testing.T) {
	orders := []models.OrderLine{
		{ItemID: "1", Quantity: 2},
		{ItemID: "2", Quantity: 10},
		{ItemID: "3", Quantity: 20, IsPromo: true},
		{ItemID: "4", Quantity: 1},
		{ItemID: "404", Quantity: 3},
	}
	result := newTestEngine().Compute(peerCatalog(), orders, models.Filter{})

	groups := [][]models.MenuItemAnalytics{result.Promote, result.PriceOptimize, result.RenameRemove, result.Maintain}
	seen := map[int]bool{}
	total := 0
	for _, group := range groups {
		for _, item := range group {
			if seen[item.ItemID] {
				t.Fatalf("item %d appears in more than one group", item.ItemID)
			}
			seen[item.ItemID] = true
			total++
		}
	}
	if total != len(result.Items) || len(result.Items) != 5 {
		t.Fatalf("groups hold %d items, expected %d", total, len(result.Items))
	}

	// the unknown item line counts toward totalOrders but not toward promo/non-promo counts
	if result.Summary.TotalOrders != 5 || result.PromoImpact.PromoOrderCount+result.PromoImpact.NonPromoOrderCount != 4 {
		t.Fatalf("unexpected line counts: %+v / %+v", result.Summary, result.PromoImpact)
	}
	if result.Summary.PromoOrdersPercent != 20 {
		t.Fatalf("expected 20%% promo lines, got %v", result.Summary.PromoOrdersPercent)
	}
}

func TestComputeSummaryTotals(t *testing.T) {
	orders := []models.OrderLine{
		{ItemID: "1", Quantity: 3, IsPromo: true},
		{ItemID: "2", Quantity: 4},
		{ItemID: "5", Quantity: 1, IsPromo: true},
	}
	result := newTestEngine().Compute(peerCatalog(), orders, models.Filter{})

	var revenue, profit float64
	var margin float64
	for _, item := range result.Items {
		revenue += item.Revenue
		profit += item.Profit
		margin += item.MarginPercent
	}
	if result.Summary.TotalRevenue != round2(revenue) || result.Summary.TotalProfit != round2(profit) {
		t.Fatalf("summary totals must be sums of item values: %+v", result.Summary)
	}
	if result.Summary.AvgMargin != round1(margin/float64(len(result.Items))) {
		t.Fatalf("avgMargin must be the unweighted item mean, got %v", result.Summary.AvgMargin)
	}
	// promo: fries 3 units pay 2 (20 of 30), soup 1 unit pays 1 (8 of 8)
	if result.PromoImpact.PromoRevenue != 28 || result.PromoImpact.PromoListRevenue != 38 {
		t.Fatalf("unexpected promo totals: %+v", result.PromoImpact)
	}
	if result.PromoImpact.PromoDiscountPercent != 26.3 {
		t.Fatalf("expected effective discount 26.3%%, got %v", result.PromoImpact.PromoDiscountPercent)
	}
	if result.PromoImpact.PromoAvgOrderValue != 14 {
		t.Fatalf("expected promo average line value 14, got %v", result.PromoImpact.PromoAvgOrderValue)
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	result := newTestEngine().Compute(nil, nil, models.Filter{})
	if result.Items == nil || result.Promote == nil || result.Maintain == nil {
		t.Fatalf("expected empty, non-nil slices")
	}
	if result.Summary != (models.Summary{}) || result.PromoImpact != (models.PromoImpact{}) {
		t.Fatalf("expected zero summary, got %+v / %+v", result.Summary, result.PromoImpact)
	}

	noOrders := newTestEngine().Compute(peerCatalog(), nil, models.Filter{})
	grouped := len(noOrders.Promote) + len(noOrders.PriceOptimize) + len(noOrders.RenameRemove) + len(noOrders.Maintain)
	if len(noOrders.Items) != len(peerCatalog()) || grouped != len(noOrders.Items) {
		t.Fatalf("expected every catalog item to be reported and grouped, got %d/%d", len(noOrders.Items), grouped)
	}
	for _, item := range noOrders.Items {
		if item.Confidence != models.ConfidenceLow || item.Revenue != 0 {
			t.Fatalf("unexpected unsold item: %+v", item)
		}
	}
	if len(noOrders.RenameRemove) != 0 {
		t.Fatalf("items without sales are never rename_remove")
	}
}

func TestComputeUnsoldItemAmongPeers(t *testing.T) {
	catalog := append(peerCatalog()[:4], models.MenuItem{ItemID: 6, ItemName: "Lemon Tart", Category: "Desserts", CostPrice: 7.5, SellingPrice: 10})
	orders := []models.OrderLine{
		{ItemID: "1", Quantity: 2},
		{ItemID: "2", Quantity: 10},
		{ItemID: "3", Quantity: 20},
		{ItemID: "4", Quantity: 5},
	}
	result := newTestEngine().Compute(catalog, orders, models.Filter{})

	tart := result.Items[4]
	if tart.Recommendation != models.RecommendationMaintain || tart.RecommendationWhy != noSalesWhy {
		t.Fatalf("expected unsold item to be maintain with the no-sales note, got %s %q", tart.Recommendation, tart.RecommendationWhy)
	}
	if result.Items[0].Recommendation != models.RecommendationPromote {
		t.Fatalf("expected high-margin low-volume item to be promoted, got %s", result.Items[0].Recommendation)
	}
}

type stubCatalog struct {
	items []models.MenuItem
	err   error
	calls int
}

func (s *stubCatalog) GetAll(context.Context) ([]models.MenuItem, error) {
	s.calls++
	return s.items, s.err
}

type stubOrders struct {
	lines   []models.OrderLine
	err     error
	filters []models.Filter
}

func (s *stubOrders) Find(_ context.Context, filter models.Filter) ([]models.OrderLine, error) {
	s.filters = append(s.filters, filter)
	return s.lines, s.err
}

func TestRun(t *testing.T) {
	catalog := &stubCatalog{items: []models.MenuItem{burger}}
	orders := &stubOrders{lines: []models.OrderLine{
		{ItemID: "1", Quantity: 5, Platform: "ubereats", Timestamp: "2024-01-02"},
		{ItemID: "1", Quantity: 5, Platform: "justeat", Timestamp: "2024-01-02"},
	}}

	result, err := newTestEngine().Run(context.Background(), catalog, orders, models.Filter{Platform: " ubereats "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Items[0].TotalQuantity != 5 {
		t.Fatalf("expected engine to filter unfiltered source data, got %d units", result.Items[0].TotalQuantity)
	}
	if orders.filters[0].Platform != "ubereats" {
		t.Fatalf("expected normalized filter to reach the source, got %+v", orders.filters[0])
	}
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := newTestEngine().Run(context.Background(), &stubCatalog{err: boom}, &stubOrders{}, models.Filter{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected catalog error to be wrapped, got %v", err)
	}

	_, err = newTestEngine().Run(context.Background(), &stubCatalog{}, &stubOrders{err: boom}, models.Filter{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected orders error to be wrapped, got %v", err)
	}

	_, err = newTestEngine().Run(context.Background(), &stubCatalog{}, &stubOrders{}, models.Filter{StartDate: "01/02/2024"})
	if !errors.Is(err, models.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}
