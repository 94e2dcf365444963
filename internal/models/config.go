package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Thresholds drive the recommendation classifier. Quantile fields are fractions in [0, 1].
type Thresholds struct {
	MinUnitsMediumConfidence int     `mapstructure:"min_units_medium_confidence"`
	MinUnitsHighConfidence   int     `mapstructure:"min_units_high_confidence"`
	LowVolumeQuantile        float64 `mapstructure:"low_volume_quantile"`
	MidVolumeQuantile        float64 `mapstructure:"mid_volume_quantile"`
	HighVolumeQuantile       float64 `mapstructure:"high_volume_quantile"`
	LowMarginQuantile        float64 `mapstructure:"low_margin_quantile"`
	HighMarginQuantile       float64 `mapstructure:"high_margin_quantile"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinUnitsMediumConfidence: 15,
		MinUnitsHighConfidence:   40,
		LowVolumeQuantile:        0.25,
		MidVolumeQuantile:        0.5,
		HighVolumeQuantile:       0.75,
		LowMarginQuantile:        0.5,
		HighMarginQuantile:       0.75,
	}
}

func (t Thresholds) Validate() error {
	for _, q := range []float64{t.LowVolumeQuantile, t.MidVolumeQuantile, t.HighVolumeQuantile, t.LowMarginQuantile, t.HighMarginQuantile} {
		if q < 0 || q > 1 {
			return fmt.Errorf("quantile %v outside [0, 1]", q)
		}
	}
	if t.MinUnitsMediumConfidence > t.MinUnitsHighConfidence {
		return errors.New("medium confidence units exceed high confidence units")
	}
	return nil
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type SeedConfig struct {
	Seed       int64    `mapstructure:"seed"`
	Items      int      `mapstructure:"items"`
	OrderLines int      `mapstructure:"order_lines"`
	PromoRatio float64  `mapstructure:"promo_ratio"`
	Platforms  []string `mapstructure:"platforms"`
	StartDate  string   `mapstructure:"start_date"`
	EndDate    string   `mapstructure:"end_date"`
	Target     string   `mapstructure:"target"` // file or postgres
	Truncate   bool     `mapstructure:"truncate"`
}

type Config struct {
	Env            string `mapstructure:"env"`
	LogLevel       string `mapstructure:"log_level"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`

	Source      string         `mapstructure:"source"`
	CatalogFile string         `mapstructure:"catalog_file"`
	OrdersFile  string         `mapstructure:"orders_file"`
	Database    DatabaseConfig `mapstructure:"database"`

	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
	Platform  string `mapstructure:"platform"`

	Outputs            []string           `mapstructure:"outputs"`
	OutputPath         string             `mapstructure:"output_path"`
	OutputFolder       string             `mapstructure:"output_folder"`
	OutputDestination  string             `mapstructure:"output_destination"` // local or cloud, parquet only
	CloudStorage       CloudStorageConfig `mapstructure:"cloud_storage"`
	KafkaBrokerList    string             `mapstructure:"kafka_broker_list"`
	KafkaTopic         string             `mapstructure:"kafka_topic"`
	SessionTimeoutMs   int                `mapstructure:"session_timeout_ms"`
	RabbitMQURL        string             `mapstructure:"rabbitmq_url"`
	RabbitMQExchange   string             `mapstructure:"rabbitmq_exchange"`
	RabbitMQRoutingKey string             `mapstructure:"rabbitmq_routing_key"`

	HTTPAddr           string        `mapstructure:"http_addr"`
	CorsAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl"`
	CacheMaxEntries    int           `mapstructure:"cache_max_entries"`

	Thresholds Thresholds `mapstructure:"thresholds"`
	Seed       SeedConfig `mapstructure:"seed"`
}

// Filter returns the order filter configured for batch runs.
func (cfg *Config) Filter() Filter {
	return Filter{StartDate: cfg.StartDate, EndDate: cfg.EndDate, Platform: cfg.Platform}.Normalize()
}

func SetDefaults(v *viper.Viper) {
	d := DefaultThresholds()
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("source", SourceFile)
	v.SetDefault("catalog_file", "data/menu_items.json")
	v.SetDefault("orders_file", "data/orders.json")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("platform", PlatformAll)
	v.SetDefault("outputs", []string{"console"})
	v.SetDefault("output_path", ".")
	v.SetDefault("output_folder", "output")
	v.SetDefault("output_destination", "local")
	v.SetDefault("cloud_storage.provider", "s3")
	v.SetDefault("cloud_storage.region", "us-east-1")
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", "menu_analytics")
	v.SetDefault("rabbitmq_exchange", "menuprofit.events")
	v.SetDefault("rabbitmq_routing_key", "analytics.menu.computed")
	v.SetDefault("http_addr", ":8086")
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("cache_max_entries", 500)
	v.SetDefault("thresholds.min_units_medium_confidence", d.MinUnitsMediumConfidence)
	v.SetDefault("thresholds.min_units_high_confidence", d.MinUnitsHighConfidence)
	v.SetDefault("thresholds.low_volume_quantile", d.LowVolumeQuantile)
	v.SetDefault("thresholds.mid_volume_quantile", d.MidVolumeQuantile)
	v.SetDefault("thresholds.high_volume_quantile", d.HighVolumeQuantile)
	v.SetDefault("thresholds.low_margin_quantile", d.LowMarginQuantile)
	v.SetDefault("thresholds.high_margin_quantile", d.HighMarginQuantile)
	v.SetDefault("seed.seed", 42)
	v.SetDefault("seed.items", 40)
	v.SetDefault("seed.order_lines", 5000)
	v.SetDefault("seed.promo_ratio", 0.2)
	v.SetDefault("seed.platforms", []string{"ubereats", "deliveroo", "justeat"})
	v.SetDefault("seed.start_date", "2024-01-01")
	v.SetDefault("seed.end_date", "2024-03-31")
	v.SetDefault("seed.target", SourceFile)
}

// LoadConfig reads the config file (when present), the environment and any bound flags from v.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.SetConfigName("menuprofit")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("MENUPROFIT")
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}
	if err := config.Filter().Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
