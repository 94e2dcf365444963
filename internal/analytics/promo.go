package analytics

// PaidUnits applies the 2-for-1 assumption: the customer pays for ceil(delivered/2) units.
func PaidUnits(delivered int) int {
	if delivered <= 0 {
		return 0
	}
	return (delivered + 1) / 2
}

// lineEconomics is the money side of a single order line.
type lineEconomics struct {
	paidUnits   int
	netRevenue  float64
	listRevenue float64
	cogs        float64
}

func (l lineEconomics) profit() float64 {
	return l.netRevenue - l.cogs
}

// priceLine values one order line. COGS covers every delivered unit, including the free promo ones.
func priceLine(quantity int, isPromo bool, sellingPrice, costPrice float64) lineEconomics {
	list := float64(quantity) * sellingPrice
	line := lineEconomics{
		paidUnits:   quantity,
		netRevenue:  list,
		listRevenue: list,
		cogs:        float64(quantity) * costPrice,
	}
	if isPromo {
		line.paidUnits = PaidUnits(quantity)
		line.netRevenue = float64(line.paidUnits) * sellingPrice
	}
	return line
}
