// Package metrics provides Prometheus instrumentation for Vypar.
//
// It pre-defines the standard HTTP metrics plus the domain counters the
// order/payment flows record. Wire it once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in HTTP metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vypar",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vypar",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vypar",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ResponseSize tracks the response body size in bytes.
	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vypar",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "path"},
	)

	// PaymentsRecorded counts payments entered into the ledger.
	PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vypar",
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Total payments recorded, by payment type.",
		},
		[]string{"type"}, // "CREDIT_CARD" | "PIX"
	)

	// PaymentsReverted counts payment deletions (order back to WAITING_PAYMENT).
	PaymentsReverted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vypar",
			Subsystem: "payments",
			Name:      "reverted_total",
			Help:      "Total payments removed from orders.",
		},
	)

	// QueueJobsProcessed counts processed queue jobs by status.
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vypar",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"status"}, // "success" | "failed"
	)

	// QueueJobDuration tracks how long queue jobs take.
	QueueJobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vypar",
			Subsystem: "queue",
			Name:      "job_duration_seconds",
			Help:      "Duration of queue job processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"job_type"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry is the Prometheus registry used by Vypar.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		PaymentsRecorded,
		PaymentsReverted,
		QueueJobsProcessed,
		QueueJobDuration,
	)
}

// MustRegister adds custom collectors to the Vypar registry.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records Prometheus metrics for every request: duration
// histogram, total counter, in-flight gauge, response size.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
			ResponseSize.WithLabelValues(r.Method, path).Observe(float64(rr.size))
		})
	}
}

// Handler exposes the Prometheus metrics page. Mount on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// RecordQueueJob records a queue job result.
func RecordQueueJob(jobType, status string, start time.Time) {
	QueueJobsProcessed.WithLabelValues(status).Inc()
	QueueJobDuration.WithLabelValues(jobType).Observe(time.Since(start).Seconds())
}
