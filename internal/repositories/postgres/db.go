package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS menu_items (
    item_id       INTEGER PRIMARY KEY,
    item_name     TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    cost_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
    selling_price DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    id          BIGSERIAL PRIMARY KEY,
    order_id    TEXT NOT NULL,
    item_id     TEXT NOT NULL,
    quantity    INTEGER NOT NULL CHECK (quantity >= 0),
    is_promo    BOOLEAN NOT NULL DEFAULT false,
    platform    TEXT NOT NULL DEFAULT '',
    "timestamp" TEXT COLLATE "C" NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_by_item_id ON orders (item_id);
CREATE INDEX IF NOT EXISTS orders_by_platform ON orders (platform);
CREATE INDEX IF NOT EXISTS orders_by_timestamp ON orders ("timestamp");

CREATE OR REPLACE FUNCTION touch_updated_at() RETURNS trigger AS $$
BEGIN
    NEW.updated_at = clock_timestamp();
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS menu_items_touch_updated_at ON menu_items;
CREATE TRIGGER menu_items_touch_updated_at BEFORE UPDATE ON menu_items
    FOR EACH ROW EXECUTE FUNCTION touch_updated_at();

DROP TRIGGER IF EXISTS orders_touch_updated_at ON orders;
CREATE TRIGGER orders_touch_updated_at BEFORE UPDATE ON orders
    FOR EACH ROW EXECUTE FUNCTION touch_updated_at();
`

func NewPool(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// VersionReader derives a data version from row counts and the latest update times.
type VersionReader struct {
	pool *pgxpool.Pool
}

func NewVersionReader(pool *pgxpool.Pool) *VersionReader {
	return &VersionReader{pool: pool}
}

func (v *VersionReader) DataVersion(ctx context.Context) (string, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM menu_items),
            (SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM menu_items),
            (SELECT COUNT(*) FROM orders),
            (SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM orders)
    `
	var (
		itemCount, orderCount     int64
		itemUpdated, orderUpdated time.Time
	)
	if err := v.pool.QueryRow(ctx, query).Scan(&itemCount, &itemUpdated, &orderCount, &orderUpdated); err != nil {
		return "", err
	}
	return formatVersion(itemCount, itemUpdated, orderCount, orderUpdated), nil
}

// formatVersion keeps microsecond precision, the resolution of timestamptz.
func formatVersion(itemCount int64, itemUpdated time.Time, orderCount int64, orderUpdated time.Time) string {
	return fmt.Sprintf("pg:%d:%d:%d:%d", itemCount, itemUpdated.UnixMicro(), orderCount, orderUpdated.UnixMicro())
}
