package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/chrisdamba/menuprofit/internal/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CatalogReader supplies the full catalog.
type CatalogReader interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
}

// OrderReader supplies order lines. Implementations may push the filter down or ignore it;
// the engine filters again either way.
type OrderReader interface {
	Find(ctx context.Context, filter models.Filter) ([]models.OrderLine, error)
}

// Engine runs filter -> aggregate -> derive -> distribution -> classify -> summarize.
// It keeps no state between calls and is safe for concurrent use.
type Engine struct {
	thresholds models.Thresholds
	classifier *Classifier
	logger     *zap.Logger
}

func NewEngine(t models.Thresholds, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{thresholds: t, classifier: NewClassifier(t), logger: logger}
}

// Compute is the pure pipeline over materialized inputs. It never fails.
func (e *Engine) Compute(items []models.MenuItem, orders []models.OrderLine, filter models.Filter) models.AnalyticsResult {
	return e.compute(context.Background(), items, orders, filter)
}

func (e *Engine) compute(ctx context.Context, items []models.MenuItem, orders []models.OrderLine, filter models.Filter) models.AnalyticsResult {
	filtered := FilterOrders(orders, filter)

	_, span := trace.StartSpan(ctx, "analytics.aggregate")
	agg := Aggregate(filtered, CatalogIndex(items))
	span.SetAttributes(attribute.Int("order_lines", len(filtered)), attribute.Int("items_with_sales", len(agg.Items)))
	span.End()

	_, span = trace.StartSpan(ctx, "analytics.classify")
	records := DeriveMetrics(items, agg)
	dist := Analyze(records, e.thresholds)
	e.classifier.Classify(records, dist)
	span.End()

	_, span = trace.StartSpan(ctx, "analytics.summarize")
	result := Summarize(records, agg, len(filtered))
	span.End()

	e.logger.Debug("menu analytics computed",
		zap.Int("items", len(records)),
		zap.Int("orderLines", len(filtered)),
		zap.Int("skippedLines", len(filtered)-agg.PromoLines-agg.NonPromoLines),
		zap.Float64("p50Quantity", dist.MidQuantity),
		zap.Float64("p75Margin", dist.HighMargin),
	)
	return result
}

// Run loads the catalog and the order lines, then computes.
func (e *Engine) Run(ctx context.Context, catalog CatalogReader, orders OrderReader, filter models.Filter) (models.AnalyticsResult, error) {
	ctx, span := trace.StartSpan(ctx, "analytics.run")
	defer span.End()

	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return models.AnalyticsResult{}, err
	}

	start := time.Now()
	items, err := catalog.GetAll(ctx)
	if err != nil {
		return models.AnalyticsResult{}, fmt.Errorf("load menu items: %w", err)
	}
	lines, err := orders.Find(ctx, filter)
	if err != nil {
		return models.AnalyticsResult{}, fmt.Errorf("load order lines: %w", err)
	}
	e.logger.Debug("analytics inputs loaded",
		zap.Int("menuItems", len(items)),
		zap.Int("orderLines", len(lines)),
		zap.Duration("duration", time.Since(start)),
	)

	return e.compute(ctx, items, lines, filter), nil
}
