package factories

import (
	"fmt"

	"github.com/chrisdamba/menuprofit/internal/models"
)

type Dataset struct {
	MenuItems  []models.MenuItem
	OrderLines []models.OrderLine
}

// Generate builds a catalog of cfg.Items entries and exactly cfg.OrderLines order lines.
// progress, when set, is called with the number of order lines added since the last call.
func Generate(cfg models.SeedConfig, progress func(n int)) (*Dataset, error) {
	if cfg.Items <= 0 {
		return nil, fmt.Errorf("seed items must be positive, got %d", cfg.Items)
	}
	if cfg.OrderLines < 0 {
		return nil, fmt.Errorf("seed order lines must not be negative, got %d", cfg.OrderLines)
	}

	mf := NewMenuItemFactory(cfg.Seed)
	items := make([]models.MenuItem, 0, cfg.Items)
	for i := 1; i <= cfg.Items; i++ {
		items = append(items, mf.CreateMenuItem(i))
	}

	of, err := NewOrderLineFactory(cfg.Seed, items, cfg)
	if err != nil {
		return nil, err
	}
	lines := make([]models.OrderLine, 0, cfg.OrderLines)
	for len(lines) < cfg.OrderLines {
		basket := of.CreateBasket()
		if room := cfg.OrderLines - len(lines); len(basket) > room {
			basket = basket[:room]
		}
		lines = append(lines, basket...)
		if progress != nil {
			progress(len(basket))
		}
	}
	return &Dataset{MenuItems: items, OrderLines: lines}, nil
}
