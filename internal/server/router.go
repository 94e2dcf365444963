package server

import (
	"context"
	"net/http"

	"github.com/chrisdamba/menuprofit/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// AnalyticsService computes menu analytics for a filter.
type AnalyticsService interface {
	MenuAnalytics(ctx context.Context, filter models.Filter) (models.AnalyticsResult, error)
}

type RouterConfig struct {
	Env                string
	CorsAllowedOrigins []string
}

func NewRouter(svc AnalyticsService, logger *zap.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(requestID())
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", "Cache-Control"},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}
		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}
		r.Use(cors.Handler(options))
	}

	h := &handler{svc: svc, logger: logger}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Get("/menu", h.menuAnalytics)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		failure(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	return r
}
