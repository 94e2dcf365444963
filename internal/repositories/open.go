package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/chrisdamba/menuprofit/internal/repositories/file"
	"github.com/chrisdamba/menuprofit/internal/repositories/postgres"
)

var ErrUnknownSource = errors.New("unknown data source")

// Open connects to the configured catalog and order source. Postgres sources get their schema
// created on first use.
func Open(ctx context.Context, cfg *models.Config) (*Store, error) {
	switch cfg.Source {
	case models.SourceFile, "":
		fs := file.NewStore(cfg.CatalogFile, cfg.OrdersFile)
		return NewStore(fs.MenuItems(), fs.Orders(), fs, nil), nil
	case models.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return NewStore(
			postgres.NewMenuItemRepository(pool),
			postgres.NewOrderRepository(pool),
			postgres.NewVersionReader(pool),
			pool.Close,
		), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
