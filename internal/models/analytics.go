package models

// MenuItemAnalytics is the per-item output record. Monetary fields are rounded to 2 decimals and
// percentages to 1 decimal.
type MenuItemAnalytics struct {
	ItemID       int     `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`

	// MarginPercent is the unit margin at list price and ignores promos.
	MarginPercent float64 `json:"marginPercent"`
	UnitMargin    float64 `json:"unitMargin"`
	TotalQuantity int     `json:"totalQuantity"`
	// Revenue is net realized revenue; a 2-for-1 line pays for ceil(delivered/2) units.
	Revenue float64 `json:"revenue"`
	// ListRevenue is delivered units at list price, used for discount impact only.
	ListRevenue float64 `json:"listRevenue"`
	// Profit is net revenue minus COGS on every delivered unit.
	Profit               float64 `json:"profit"`
	PromoProfit          float64 `json:"promoProfit"`
	NonPromoProfit       float64 `json:"nonPromoProfit"`
	PromoQuantity        int     `json:"promoQuantity"`
	PromoPaidQuantity    int     `json:"promoPaidQuantity"`
	NonPromoQuantity     int     `json:"nonPromoQuantity"`
	PromoRevenue         float64 `json:"promoRevenue"`
	PromoListRevenue     float64 `json:"promoListRevenue"`
	NonPromoRevenue      float64 `json:"nonPromoRevenue"`
	PromoDiscountPercent float64 `json:"promoDiscountPercent"`

	Recommendation    Recommendation `json:"recommendation"`
	RecommendationWhy string         `json:"recommendationWhy"`
	Confidence        Confidence     `json:"confidence"`
}

type Summary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalListRevenue float64 `json:"totalListRevenue"`
	TotalProfit      float64 `json:"totalProfit"`
	// TotalOrders counts filtered order lines, not baskets.
	TotalOrders        int     `json:"totalOrders"`
	PromoOrdersPercent float64 `json:"promoOrdersPercent"`
	// AvgMargin is the unweighted mean of per-item marginPercent.
	AvgMargin float64 `json:"avgMargin"`
}

type PromoImpact struct {
	PromoRevenue     float64 `json:"promoRevenue"`
	PromoListRevenue float64 `json:"promoListRevenue"`
	PromoProfit      float64 `json:"promoProfit"`
	NonPromoRevenue  float64 `json:"nonPromoRevenue"`
	NonPromoProfit   float64 `json:"nonPromoProfit"`
	// PromoOrderCount counts order lines in this dataset, not basket-level orders.
	PromoOrderCount int `json:"promoOrderCount"`
	// NonPromoOrderCount counts order lines in this dataset, not basket-level orders.
	NonPromoOrderCount    int     `json:"nonPromoOrderCount"`
	PromoAvgOrderValue    float64 `json:"promoAvgOrderValue"`
	NonPromoAvgOrderValue float64 `json:"nonPromoAvgOrderValue"`
	// PromoDiscountPercent is the overall effective discount on promo units.
	PromoDiscountPercent float64 `json:"promoDiscountPercent"`
}

type AnalyticsResult struct {
	Items         []MenuItemAnalytics `json:"items"`
	Promote       []MenuItemAnalytics `json:"promote"`
	PriceOptimize []MenuItemAnalytics `json:"priceOptimize"`
	RenameRemove  []MenuItemAnalytics `json:"renameRemove"`
	Maintain      []MenuItemAnalytics `json:"maintain"`
	Summary       Summary             `json:"summary"`
	PromoImpact   PromoImpact         `json:"promoImpact"`
}
