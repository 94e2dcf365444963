package postgres

import (
	"context"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuItemRepository struct {
	pool *pgxpool.Pool
}

func NewMenuItemRepository(pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{pool: pool}
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []models.MenuItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{"item_id", "item_name", "category", "cost_price", "selling_price"},
		pgx.CopyFromSlice(len(menuItems), func(i int) ([]interface{}, error) {
			return []interface{}{
				menuItems[i].ItemID,
				menuItems[i].ItemName,
				menuItems[i].Category,
				menuItems[i].CostPrice,
				menuItems[i].SellingPrice,
			}, nil
		}),
	)
	return err
}

func (r *MenuItemRepository) Create(ctx context.Context, menuItem *models.MenuItem) error {
	query := `
        INSERT INTO menu_items (item_id, item_name, category, cost_price, selling_price)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (item_id) DO UPDATE SET
            item_name = EXCLUDED.item_name,
            category = EXCLUDED.category,
            cost_price = EXCLUDED.cost_price,
            selling_price = EXCLUDED.selling_price,
            updated_at = now()
    `

	_, err := r.pool.Exec(ctx, query,
		menuItem.ItemID,
		menuItem.ItemName,
		menuItem.Category,
		menuItem.CostPrice,
		menuItem.SellingPrice,
	)
	return err
}

func (r *MenuItemRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	query := `
        SELECT item_id, item_name, category, cost_price, selling_price
        FROM menu_items
        ORDER BY item_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menuItems []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(
			&item.ItemID,
			&item.ItemName,
			&item.Category,
			&item.CostPrice,
			&item.SellingPrice,
		)
		if err != nil {
			return nil, err
		}
		menuItems = append(menuItems, item)
	}
	return menuItems, rows.Err()
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&count)
	return count, err
}

func (r *MenuItemRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE menu_items CASCADE")
	return err
}
