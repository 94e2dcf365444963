package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chrisdamba/menuprofit/internal/logger"
	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/chrisdamba/menuprofit/internal/trace"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	cfgFile string
	cfg     *models.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "menuprofit",
	Short: "Menu profitability analytics for delivery restaurants",
	Long: `menuprofit turns a menu catalog and delivery-platform order lines into per-item profitability
metrics, 2-for-1 promo impact and a recommendation (promote, price_optimize, rename_remove or maintain)
for every item on the menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(ctx)
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./menuprofit.yaml)")
	rootCmd.PersistentFlags().String("env", "development", "Runtime environment (development, production)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")
	rootCmd.PersistentFlags().Bool("tracing-enabled", false, "Export spans to stdout")
}

func initConfig(cmd *cobra.Command) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags(), flagKeys(cmd)); err != nil {
		return err
	}

	var err error
	cfg, err = models.LoadConfig(v, cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log, err = logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}

	if err := trace.Init(cfg.TracingEnabled, Version); err != nil {
		return fmt.Errorf("error initialising tracing: %w", err)
	}
	return nil
}

// flagKeys maps flag names whose config key is not the flag name with dashes replaced.
func flagKeys(cmd *cobra.Command) map[string]string {
	keys := map[string]string{"output": "outputs"}
	if cmd.Name() == "seed" {
		for _, name := range []string{"seed", "items", "order-lines", "promo-ratio", "platforms", "start-date", "end-date", "target", "truncate"} {
			keys[name] = "seed." + strings.ReplaceAll(name, "-", "_")
		}
	}
	return keys
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || bindErr != nil {
			return
		}
		key, ok := keys[f.Name]
		if !ok {
			key = strings.ReplaceAll(f.Name, "-", "_")
		}
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
