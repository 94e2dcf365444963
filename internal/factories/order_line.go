package factories

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/lucsky/cuid"
)

// OrderLineFactory draws baskets of order lines. Item popularity follows a Zipf-like curve so that
// generated datasets have clear bestsellers and a long tail.
type OrderLineFactory struct {
	rng        *rand.Rand
	items      []models.MenuItem
	cumWeights []float64
	platforms  []string
	start      time.Time
	days       int
	promoRatio float64
	newID      func() string
}

func NewOrderLineFactory(seed int64, items []models.MenuItem, cfg models.SeedConfig) (*OrderLineFactory, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no menu items to order from")
	}
	start, err := time.Parse(models.DateLayout, cfg.StartDate)
	if err != nil {
		return nil, fmt.Errorf("seed start date: %w", err)
	}
	end, err := time.Parse(models.DateLayout, cfg.EndDate)
	if err != nil {
		return nil, fmt.Errorf("seed end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("seed end date %s is before start date %s", cfg.EndDate, cfg.StartDate)
	}
	if cfg.PromoRatio < 0 || cfg.PromoRatio > 1 {
		return nil, fmt.Errorf("promo ratio %v outside [0, 1]", cfg.PromoRatio)
	}
	platforms := cfg.Platforms
	if len(platforms) == 0 {
		platforms = []string{"direct"}
	}

	rng := rand.New(rand.NewSource(seed))
	cum := make([]float64, len(items))
	total := 0.0
	for i, rank := range rng.Perm(len(items)) {
		total += 1 / math.Pow(float64(rank+1), 0.9)
		cum[i] = total
	}
	for i := range cum {
		cum[i] /= total
	}

	return &OrderLineFactory{
		rng:        rng,
		items:      items,
		cumWeights: cum,
		platforms:  platforms,
		start:      start,
		days:       int(end.Sub(start).Hours()/24) + 1,
		promoRatio: cfg.PromoRatio,
		newID:      cuid.New,
	}, nil
}

func (of *OrderLineFactory) pickItem() models.MenuItem {
	r := of.rng.Float64()
	i := sort.SearchFloat64s(of.cumWeights, r)
	if i >= len(of.items) {
		i = len(of.items) - 1
	}
	return of.items[i]
}

// pickDay samples a date in the window, favouring weekends.
func (of *OrderLineFactory) pickDay() time.Time {
	for {
		d := of.start.AddDate(0, 0, of.rng.Intn(of.days))
		if of.rng.Float64()*maxDayWeight < dayWeight(d) {
			return d
		}
	}
}

// CreateBasket returns one to three lines sharing an order id, platform and date.
func (of *OrderLineFactory) CreateBasket() []models.OrderLine {
	orderID := of.newID()
	platform := of.platforms[of.rng.Intn(len(of.platforms))]
	day := of.pickDay().Format(models.DateLayout)

	n := 1 + of.rng.Intn(3)
	lines := make([]models.OrderLine, 0, n)
	for i := 0; i < n; i++ {
		item := of.pickItem()
		promo := of.rng.Float64() < of.promoRatio
		qty := 1 + of.rng.Intn(3)
		if promo {
			// 2-for-1 deals are usually taken in pairs
			qty = 2 * (1 + of.rng.Intn(2))
			if of.rng.Intn(5) == 0 {
				qty++
			}
		}
		lines = append(lines, models.OrderLine{
			OrderID:   orderID,
			ItemID:    item.Key(),
			Quantity:  qty,
			IsPromo:   promo,
			Platform:  platform,
			Timestamp: day,
		})
	}
	return lines
}
