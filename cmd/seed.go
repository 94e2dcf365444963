package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/chrisdamba/menuprofit/internal/factories"
	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/chrisdamba/menuprofit/internal/repositories"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const seedBatchSize = 1000

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic menu catalog and order lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sc := cfg.Seed

		gen := newProgressBar(sc.OrderLines, "generating order lines")
		ds, err := factories.Generate(sc, func(n int) { _ = gen.Add(n) })
		_ = gen.Finish()
		if err != nil {
			return err
		}

		target := *cfg
		target.Source = sc.Target
		store, err := repositories.Open(ctx, &target)
		if err != nil {
			return err
		}
		defer store.Close()

		if sc.Truncate {
			if err := truncate(ctx, store); err != nil {
				return err
			}
		}
		if err := store.MenuItems.BulkCreate(ctx, ds.MenuItems); err != nil {
			return fmt.Errorf("failed to insert menu items: %w", err)
		}
		if err := insertOrderLines(ctx, store, ds.OrderLines); err != nil {
			return err
		}

		log.Info("seed complete",
			zap.String("target", sc.Target),
			zap.Int64("seed", sc.Seed),
			zap.Int("menuItems", len(ds.MenuItems)),
			zap.Int("orderLines", len(ds.OrderLines)))
		return nil
	},
}

func truncate(ctx context.Context, store *repositories.Store) error {
	if err := store.Orders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}
	if err := store.MenuItems.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete menu items: %w", err)
	}
	return nil
}

func insertOrderLines(ctx context.Context, store *repositories.Store, lines []models.OrderLine) error {
	if cfg.Seed.Target != models.SourcePostgres {
		// the file store rewrites the whole file on every call
		if err := store.Orders.BulkCreate(ctx, lines); err != nil {
			return fmt.Errorf("failed to write order lines: %w", err)
		}
		return nil
	}

	bar := newProgressBar(len(lines), "inserting order lines")
	defer bar.Finish()
	for start := 0; start < len(lines); start += seedBatchSize {
		end := min(start+seedBatchSize, len(lines))
		if err := store.Orders.BulkCreate(ctx, lines[start:end]); err != nil {
			return fmt.Errorf("failed to insert order lines %d-%d: %w", start, end, err)
		}
		_ = bar.Add(end - start)
	}
	return nil
}

func newProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	f := seedCmd.Flags()
	f.Int64("seed", 42, "Random seed")
	f.Int("items", 40, "Number of menu items")
	f.Int("order-lines", 5000, "Number of order lines")
	f.Float64("promo-ratio", 0.2, "Share of order lines under the 2-for-1 promo")
	f.StringSlice("platforms", []string{"ubereats", "deliveroo", "justeat"}, "Delivery platforms")
	f.String("start-date", "2024-01-01", "First order date (YYYY-MM-DD)")
	f.String("end-date", "2024-03-31", "Last order date (YYYY-MM-DD)")
	f.String("target", "file", "Where to write (file, postgres)")
	f.Bool("truncate", false, "Delete existing data first")
	f.String("catalog-file", "data/menu_items.json", "Menu catalog file to write")
	f.String("orders-file", "data/orders.json", "Order lines file to write")
	rootCmd.AddCommand(seedCmd)
}
