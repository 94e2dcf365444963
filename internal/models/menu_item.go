package models

import (
	"strconv"
	"strings"
)

// MenuItem is a static catalog entry.
type MenuItem struct {
	ItemID       int     `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
}

// Key returns the identity used to match order lines against the catalog.
func (m MenuItem) Key() string {
	return strconv.Itoa(m.ItemID)
}

// ItemKey normalizes an order line item reference so that " 7" and "7" resolve to the same item.
func ItemKey(raw string) string {
	key := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(key); err == nil {
		return strconv.Itoa(n)
	}
	return key
}
