package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records request counts and durations per path.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		HttpRequestsTotal.WithLabelValues(path).Inc()

		timer := prometheus.NewTimer(HttpRequestDuration.WithLabelValues(path))
		next.ServeHTTP(w, r)
		timer.ObserveDuration()
	})
}
