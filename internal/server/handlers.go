package server

import (
	"errors"
	"net/http"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/chrisdamba/menuprofit/internal/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type handler struct {
	svc    AnalyticsService
	logger *zap.Logger
}

func (h *handler) menuAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "http.menu_analytics")
	defer span.End()

	q := r.URL.Query()
	filter := models.Filter{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Platform:  q.Get("platform"),
	}.Normalize()
	span.SetAttributes(
		attribute.String("filter.start_date", filter.StartDate),
		attribute.String("filter.end_date", filter.EndDate),
		attribute.String("filter.platform", filter.Platform),
	)

	result, err := h.svc.MenuAnalytics(ctx, filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidFilter) {
			failure(w, http.StatusBadRequest, CodeInvalidFilter, err.Error())
			return
		}
		span.RecordError(err)
		fields := []zap.Field{zap.Error(err), zap.String("requestId", r.Header.Get(requestIDHeader))}
		if traceID, ok := trace.TraceID(ctx); ok {
			fields = append(fields, zap.String("traceId", traceID))
		}
		h.logger.Error("menu analytics failed", fields...)
		failure(w, http.StatusInternalServerError, CodeInternal, "failed to compute menu analytics")
		return
	}
	success(w, result)
}
