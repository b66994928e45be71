package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedPath labels requests without a mux route so raw URLs never become label values.
const unmatchedPath = "unmatched"

// PrometheusMiddleware records request metrics for the operational endpoints.
type PrometheusMiddleware struct {
	totalRequests   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusMiddleware registers its collectors with reg.
func NewPrometheusMiddleware(reg prometheus.Registerer) *PrometheusMiddleware {
	m := &PrometheusMiddleware{
		totalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otpstore_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otpstore_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
	reg.MustRegister(m.totalRequests, m.requestDuration)
	return m
}

// Instrument is the HTTP middleware function.
func (m *PrometheusMiddleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := unmatchedPath
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		status := strconv.Itoa(rw.statusCode)

		m.totalRequests.WithLabelValues(r.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
