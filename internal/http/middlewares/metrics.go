package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gymcore/internal/metrics"
)

// WithMetrics registra contador, latencia e inflight por route pattern de chi.
// Sin pattern (404) se usa el path normalizado.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			metrics.HTTPInflight.Inc()
			defer metrics.HTTPInflight.Dec()

			rec := recorder(w)
			next.ServeHTTP(rec, r)

			path := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				path = rc.RoutePattern()
			}
			if path == "" {
				path = metrics.NormalizePath(r.URL.Path)
			}
			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
