package output

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chrisdamba/menuprofit/internal/cloudwriter"
	"github.com/chrisdamba/menuprofit/internal/models"
	"go.uber.org/zap"
)

const (
	Console  = "console"
	JSON     = "json"
	CSV      = "csv"
	Parquet  = "parquet"
	Kafka    = "kafka"
	RabbitMQ = "rabbitmq"
)

// Multi fans a report out to several destinations.
type Multi struct {
	names        []string
	destinations []Destination
	logger       *zap.Logger
}

func NewMulti(logger *zap.Logger) *Multi {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Multi{logger: logger}
}

func (m *Multi) Add(name string, d Destination) {
	m.names = append(m.names, name)
	m.destinations = append(m.destinations, d)
}

func (m *Multi) Len() int { return len(m.destinations) }

// WriteResult writes to every destination and joins the failures.
func (m *Multi) WriteResult(ctx context.Context, report Report) error {
	var errs []error
	for i, d := range m.destinations {
		if err := d.WriteResult(ctx, report); err != nil {
			m.logger.Error("failed to write report", zap.String("destination", m.names[i]), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", m.names[i], err))
			continue
		}
		m.logger.Info("report written",
			zap.String("destination", m.names[i]),
			zap.Int("items", len(report.Result.Items)))
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for i, d := range m.destinations {
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.names[i], err))
		}
	}
	return errors.Join(errs...)
}

// New builds the destinations listed in cfg.Outputs.
func New(ctx context.Context, cfg *models.Config, logger *zap.Logger) (*Multi, error) {
	multi := NewMulti(logger)
	for _, raw := range cfg.Outputs {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		d, err := newDestination(ctx, name, cfg)
		if err != nil {
			_ = multi.Close()
			return nil, err
		}
		multi.Add(name, d)
	}
	if multi.Len() == 0 {
		multi.Add(Console, NewConsoleOutput(nil))
	}
	return multi, nil
}

func newDestination(ctx context.Context, name string, cfg *models.Config) (Destination, error) {
	switch name {
	case Console:
		return NewConsoleOutput(nil), nil
	case JSON:
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case CSV:
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case Parquet:
		if cfg.OutputDestination == "" || cfg.OutputDestination == "local" {
			return NewParquetOutput(cfg.OutputPath, cfg.OutputFolder), nil
		}
		factory, err := newCloudWriterFactory(ctx, cfg.CloudStorage)
		if err != nil {
			return nil, err
		}
		return NewCloudParquetOutput(cfg.OutputFolder, factory, cfg.CloudStorage.BucketName), nil
	case Kafka:
		return NewKafkaOutput(cfg.KafkaBrokerList, cfg.KafkaTopic, cfg.SessionTimeoutMs)
	case RabbitMQ:
		return NewRabbitMQOutput(cfg.RabbitMQURL, cfg.RabbitMQExchange, cfg.RabbitMQRoutingKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDestination, name)
	}
}

func newCloudWriterFactory(ctx context.Context, cs models.CloudStorageConfig) (cloudwriter.CloudWriterFactory, error) {
	switch cs.Provider {
	case "s3":
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cs.Region, "application/vnd.apache.parquet")
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		return factory, nil
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", cs.Provider)
	}
}
