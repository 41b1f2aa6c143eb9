package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/bikeshop-backend/internal/infrastructure/metrics"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// metricsMiddleware пишет длительность и количество запросов по шаблону маршрута.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())

		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// loggingMiddleware логирует завершённые запросы. 5xx пишутся как предупреждения.
func loggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			reqID := middleware.GetReqID(r.Context())
			if ww.Status() >= http.StatusInternalServerError {
				log.Warnf("%s %s -> %d (%s) req_id=%s", r.Method, r.URL.Path, ww.Status(), time.Since(start), reqID)
				return
			}
			log.Debugf("%s %s -> %d (%s) req_id=%s", r.Method, r.URL.Path, ww.Status(), time.Since(start), reqID)
		})
	}
}
