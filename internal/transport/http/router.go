package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"doppel/internal/platform/middleware"
	"doppel/internal/twin/handler"
	"doppel/pkg/platform/httputil"
)

// NewRouter assembles the public surface: the lookup endpoint plus health and
// metrics. Transport concerns stay here so handlers remain thin.
func NewRouter(twins handler.Service, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(middleware.Timeout(requestTimeout))

	handler.New(twins, logger).Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
