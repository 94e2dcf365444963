package repositories

import (
	"context"

	"github.com/chrisdamba/menuprofit/internal/models"
)

type MenuItemRepository interface {
	BulkCreate(ctx context.Context, items []models.MenuItem) error
	Create(ctx context.Context, item *models.MenuItem) error
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// OrderRepository stores order lines. Find applies the inclusive date range and exact platform
// match of the filter; empty filter fields match everything.
type OrderRepository interface {
	BulkCreate(ctx context.Context, lines []models.OrderLine) error
	Find(ctx context.Context, filter models.Filter) ([]models.OrderLine, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// Versioner reports a token that changes whenever catalog or order data changes.
type Versioner interface {
	DataVersion(ctx context.Context) (string, error)
}

// Store groups the repositories behind one data source.
type Store struct {
	MenuItems MenuItemRepository
	Orders    OrderRepository
	Versioner Versioner
	closer    func()
}

func NewStore(items MenuItemRepository, orders OrderRepository, versioner Versioner, closer func()) *Store {
	return &Store{MenuItems: items, Orders: orders, Versioner: versioner, closer: closer}
}

func (s *Store) Close() {
	if s.closer != nil {
		s.closer()
	}
}
