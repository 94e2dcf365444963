package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/menuprofit/internal/analytics"
	"github.com/chrisdamba/menuprofit/internal/repositories"
	"github.com/chrisdamba/menuprofit/internal/server"
	"github.com/chrisdamba/menuprofit/internal/trace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve menu analytics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := repositories.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cache := analytics.NewCache(cfg.CacheTTL, cfg.CacheMaxEntries)
		svc := analytics.NewService(
			analytics.NewEngine(cfg.Thresholds, log),
			store.MenuItems,
			store.Orders,
			store.Versioner,
			cache,
			log,
		)
		router := server.NewRouter(svc, log, server.RouterConfig{
			Env:                cfg.Env,
			CorsAllowedOrigins: cfg.CorsAllowedOrigins,
		})

		hangup := make(chan os.Signal, 1)
		signal.Notify(hangup, syscall.SIGHUP)
		defer signal.Stop(hangup)
		go invalidateOnSignal(ctx, hangup, cache)

		log.Info("starting menu analytics API",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("source", cfg.Source),
			zap.Duration("cacheTTL", cfg.CacheTTL),
			zap.Bool("tracing", trace.Enabled()))
		return server.New(cfg.HTTPAddr, router, log).Run(ctx, nil)
	},
}

// invalidateOnSignal drops cached results each time a signal arrives, so data loaded
// outside the store's versioning is picked up without a restart.
func invalidateOnSignal(ctx context.Context, sigs <-chan os.Signal, cache *analytics.Cache) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			cache.Invalidate()
			log.Info("analytics cache invalidated")
		}
	}
}

func init() {
	f := serveCmd.Flags()
	f.String("http-addr", ":8086", "HTTP listen address")
	f.String("source", "file", "Data source (file, postgres)")
	f.String("catalog-file", "data/menu_items.json", "Menu catalog file (JSON or CSV)")
	f.String("orders-file", "data/orders.json", "Order lines file (JSON or CSV)")
	f.Duration("cache-ttl", 0, "Result cache TTL (0 uses the configured default)")
	rootCmd.AddCommand(serveCmd)
}
