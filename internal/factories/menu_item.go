package factories

import (
	"math"
	"math/rand"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/jaswdr/faker"
)

var menuByCategory = map[string][]string{
	"Pizza":    {"Margherita", "Pepperoni", "Hawaiian", "Veggie Supreme", "Four Cheese"},
	"Curry":    {"Chicken Tikka Masala", "Vegetable Curry", "Beef Madras", "Paneer Butter Masala"},
	"Burgers":  {"Classic Cheeseburger", "Veggie Burger", "BBQ Bacon Burger", "Mushroom Swiss Burger"},
	"Grill":    {"Grilled Chicken", "BBQ Ribs", "Grilled Salmon", "Mixed Grill Platter"},
	"Salad":    {"Caesar Salad", "Greek Salad", "Cobb Salad", "Quinoa Salad"},
	"Desserts": {"Tiramisu", "Apple Pie", "Baklava", "Mango Sticky Rice", "Crème Brûlée"},
	"Drinks":   {"Chocolate Shake", "Vanilla Shake", "Lemonade", "Iced Tea"},
	"Sides":    {"Fries", "Garlic Bread", "Onion Rings", "Naan Bread", "Miso Soup"},
}

var categories = []string{"Pizza", "Curry", "Burgers", "Grill", "Salad", "Desserts", "Drinks", "Sides"}

// MenuItemFactory builds catalog entries with plausible cost and markup.
type MenuItemFactory struct {
	fake faker.Faker
	rng  *rand.Rand
	used map[string]int
}

func NewMenuItemFactory(seed int64) *MenuItemFactory {
	return &MenuItemFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed + 1)),
		used: make(map[string]int),
	}
}

func (mf *MenuItemFactory) CreateMenuItem(id int) models.MenuItem {
	category := categories[mf.rng.Intn(len(categories))]
	cost := roundCents(mf.fake.Float64(2, 50, 1200) / 100)
	markup := 1.3 + mf.rng.Float64()*2.7 // 1.3x to 4x

	return models.MenuItem{
		ItemID:       id,
		ItemName:     mf.uniqueName(category),
		Category:     category,
		CostPrice:    cost,
		SellingPrice: roundToNickel(cost * markup),
	}
}

func (mf *MenuItemFactory) uniqueName(category string) string {
	options := menuByCategory[category]
	name := options[mf.rng.Intn(len(options))]
	mf.used[name]++
	if n := mf.used[name]; n > 1 {
		return name + " " + mf.fake.Lorem().Word() + " " + string(rune('A'+(n-2)%26))
	}
	return name
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundToNickel snaps prices to .x0 or .x5 the way menus print them.
func roundToNickel(v float64) float64 {
	return math.Round(v*20) / 20
}
