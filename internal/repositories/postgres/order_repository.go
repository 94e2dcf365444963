package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, lines []models.OrderLine) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		[]string{"order_id", "item_id", "quantity", "is_promo", "platform", "timestamp"},
		pgx.CopyFromSlice(len(lines), func(i int) ([]interface{}, error) {
			return []interface{}{
				lines[i].OrderID,
				lines[i].ItemID,
				lines[i].Quantity,
				lines[i].IsPromo,
				lines[i].Platform,
				lines[i].Timestamp,
			}, nil
		}),
	)
	return err
}

func (r *OrderRepository) Find(ctx context.Context, filter models.Filter) ([]models.OrderLine, error) {
	query, args := buildFindQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(
			&line.OrderID,
			&line.ItemID,
			&line.Quantity,
			&line.IsPromo,
			&line.Platform,
			&line.Timestamp,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// buildFindQuery pushes the date range and platform match down to SQL. "timestamp" is compared
// under the C collation so the bounds match the in-memory filter byte for byte.
func buildFindQuery(filter models.Filter) (string, []any) {
	f := filter.Normalize()
	var (
		where []string
		args  []any
	)
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		where = append(where, fmt.Sprintf(`"timestamp" COLLATE "C" >= $%d`, len(args)))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		where = append(where, fmt.Sprintf(`"timestamp" COLLATE "C" <= $%d`, len(args)))
	}
	if f.Platform != "" {
		args = append(args, f.Platform)
		where = append(where, fmt.Sprintf(`platform = $%d`, len(args)))
	}

	query := `SELECT order_id, item_id, quantity, is_promo, platform, "timestamp" FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY id", args
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders")
	return err
}
