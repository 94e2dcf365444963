package cmd

import (
	"fmt"

	"github.com/chrisdamba/menuprofit/internal/analytics"
	"github.com/chrisdamba/menuprofit/internal/output"
	"github.com/chrisdamba/menuprofit/internal/repositories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute menu analytics once and write the report to the configured outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := repositories.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		filter := cfg.Filter()
		engine := analytics.NewEngine(cfg.Thresholds, log)
		result, err := engine.Run(ctx, store.MenuItems, store.Orders, filter)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}

		destinations, err := output.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer destinations.Close()

		if err := destinations.WriteResult(ctx, output.NewReport(filter, result)); err != nil {
			return err
		}

		log.Info("menu analytics complete",
			zap.String("source", cfg.Source),
			zap.Int("items", len(result.Items)),
			zap.Int("promote", len(result.Promote)),
			zap.Int("priceOptimize", len(result.PriceOptimize)),
			zap.Int("renameRemove", len(result.RenameRemove)),
			zap.Int("maintain", len(result.Maintain)),
			zap.Int("orderLines", result.Summary.TotalOrders),
			zap.Float64("totalProfit", result.Summary.TotalProfit),
		)
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.String("start-date", "", "Inclusive start date (YYYY-MM-DD)")
	f.String("end-date", "", "Inclusive end date (YYYY-MM-DD)")
	f.String("platform", "all", "Delivery platform, or all")
	f.String("source", "file", "Data source (file, postgres)")
	f.String("catalog-file", "data/menu_items.json", "Menu catalog file (JSON or CSV)")
	f.String("orders-file", "data/orders.json", "Order lines file (JSON or CSV)")
	f.StringSlice("output", []string{"console"}, "Outputs (console, json, csv, parquet, kafka, rabbitmq)")
	f.String("output-path", ".", "Base directory for file outputs")
	rootCmd.AddCommand(analyzeCmd)
}
