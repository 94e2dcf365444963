package output

import (
	"strconv"

	"github.com/chrisdamba/menuprofit/internal/models"
)

// itemRow is the flat per-item record written to CSV and Parquet.
type itemRow struct {
	ItemID               int64   `parquet:"name=item_id,type=INT64"`
	ItemName             string  `parquet:"name=item_name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category             string  `parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	CostPrice            float64 `parquet:"name=cost_price,type=DOUBLE"`
	SellingPrice         float64 `parquet:"name=selling_price,type=DOUBLE"`
	MarginPercent        float64 `parquet:"name=margin_percent,type=DOUBLE"`
	UnitMargin           float64 `parquet:"name=unit_margin,type=DOUBLE"`
	TotalQuantity        int64   `parquet:"name=total_quantity,type=INT64"`
	Revenue              float64 `parquet:"name=revenue,type=DOUBLE"`
	ListRevenue          float64 `parquet:"name=list_revenue,type=DOUBLE"`
	Profit               float64 `parquet:"name=profit,type=DOUBLE"`
	PromoQuantity        int64   `parquet:"name=promo_quantity,type=INT64"`
	PromoPaidQuantity    int64   `parquet:"name=promo_paid_quantity,type=INT64"`
	NonPromoQuantity     int64   `parquet:"name=non_promo_quantity,type=INT64"`
	PromoRevenue         float64 `parquet:"name=promo_revenue,type=DOUBLE"`
	PromoListRevenue     float64 `parquet:"name=promo_list_revenue,type=DOUBLE"`
	PromoProfit          float64 `parquet:"name=promo_profit,type=DOUBLE"`
	NonPromoRevenue      float64 `parquet:"name=non_promo_revenue,type=DOUBLE"`
	NonPromoProfit       float64 `parquet:"name=non_promo_profit,type=DOUBLE"`
	PromoDiscountPercent float64 `parquet:"name=promo_discount_percent,type=DOUBLE"`
	Recommendation       string  `parquet:"name=recommendation,type=BYTE_ARRAY,convertedtype=UTF8"`
	Confidence           string  `parquet:"name=confidence,type=BYTE_ARRAY,convertedtype=UTF8"`
	RecommendationWhy    string  `parquet:"name=recommendation_why,type=BYTE_ARRAY,convertedtype=UTF8"`
}

var csvHeader = []string{
	"item_id", "item_name", "category", "cost_price", "selling_price",
	"margin_percent", "unit_margin", "total_quantity", "revenue", "list_revenue", "profit",
	"promo_quantity", "promo_paid_quantity", "non_promo_quantity",
	"promo_revenue", "promo_list_revenue", "promo_profit", "non_promo_revenue", "non_promo_profit",
	"promo_discount_percent", "recommendation", "confidence", "recommendation_why",
}

func newItemRow(a models.MenuItemAnalytics) itemRow {
	return itemRow{
		ItemID:               int64(a.ItemID),
		ItemName:             a.ItemName,
		Category:             a.Category,
		CostPrice:            a.CostPrice,
		SellingPrice:         a.SellingPrice,
		MarginPercent:        a.MarginPercent,
		UnitMargin:           a.UnitMargin,
		TotalQuantity:        int64(a.TotalQuantity),
		Revenue:              a.Revenue,
		ListRevenue:          a.ListRevenue,
		Profit:               a.Profit,
		PromoQuantity:        int64(a.PromoQuantity),
		PromoPaidQuantity:    int64(a.PromoPaidQuantity),
		NonPromoQuantity:     int64(a.NonPromoQuantity),
		PromoRevenue:         a.PromoRevenue,
		PromoListRevenue:     a.PromoListRevenue,
		PromoProfit:          a.PromoProfit,
		NonPromoRevenue:      a.NonPromoRevenue,
		NonPromoProfit:       a.NonPromoProfit,
		PromoDiscountPercent: a.PromoDiscountPercent,
		Recommendation:       string(a.Recommendation),
		Confidence:           string(a.Confidence),
		RecommendationWhy:    a.RecommendationWhy,
	}
}

func (r itemRow) csvRecord() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	i := func(v int64) string { return strconv.FormatInt(v, 10) }
	return []string{
		i(r.ItemID), r.ItemName, r.Category, f(r.CostPrice), f(r.SellingPrice),
		f(r.MarginPercent), f(r.UnitMargin), i(r.TotalQuantity), f(r.Revenue), f(r.ListRevenue), f(r.Profit),
		i(r.PromoQuantity), i(r.PromoPaidQuantity), i(r.NonPromoQuantity),
		f(r.PromoRevenue), f(r.PromoListRevenue), f(r.PromoProfit), f(r.NonPromoRevenue), f(r.NonPromoProfit),
		f(r.PromoDiscountPercent), r.Recommendation, r.Confidence, r.RecommendationWhy,
	}
}
