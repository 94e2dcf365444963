package models

// OrderLine is one row of purchase data for one item. It is not a customer basket.
type OrderLine struct {
	OrderID   string `json:"order_id"`
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"` // delivered units
	IsPromo   bool   `json:"is_promo"`
	Platform  string `json:"platform"`
	Timestamp string `json:"timestamp"` // YYYY-MM-DD
}
