package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for HTTP traffic. Instruments
// register against the default registry, which /metrics serves.
type Metrics struct {
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	requestsInFlight prometheus.Gauge
	responseSize     *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with registered instruments.
func NewMetrics() *Metrics {
	return &Metrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trafficadvisor_http_request_duration_seconds",
			Help:    "Duration of HTTP server requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trafficadvisor_http_requests_total",
			Help: "Total number of HTTP server requests.",
		}, []string{"method", "path", "status"}),
		requestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "trafficadvisor_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),
		responseSize: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trafficadvisor_http_response_size_bytes",
			Help:    "Size of HTTP server responses.",
			Buckets: prometheus.ExponentialBuckets(128, 4, 8),
		}, []string{"method", "path"}),
	}
}

// Middleware returns an HTTP middleware that records metrics for each request.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			m.requestDuration.WithLabelValues(r.Method, r.URL.Path, status).
				Observe(time.Since(start).Seconds())
			m.requestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			m.responseSize.WithLabelValues(r.Method, r.URL.Path).
				Observe(float64(wrapped.written))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture response metadata.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}
