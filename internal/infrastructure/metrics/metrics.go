package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/fxwarehouse/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Import metrics
	DealsImported       prometheus.Counter
	DealsRejected       *prometheus.CounterVec
	ImportBatchSize     prometheus.Histogram
	ImportBatchDuration prometheus.Histogram

	// API metrics
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	RateLimitHits        prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DealsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxwarehouse_deals_imported_total",
			Help: "Total number of deals committed by batch imports",
		}),
		DealsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxwarehouse_deals_rejected_total",
				Help: "Total number of deals skipped by batch imports, by reason",
			},
			[]string{"reason"},
		),
		ImportBatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxwarehouse_import_batch_size",
			Help:    "Number of deals per import batch",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		}),
		ImportBatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxwarehouse_import_batch_duration_seconds",
			Help:    "Duration of import batches",
			Buckets: prometheus.DefBuckets,
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxwarehouse_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxwarehouse_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fxwarehouse_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxwarehouse_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveImport implements usecase.ImportRecorder.
func (m *Metrics) ObserveImport(summary *domain.ImportSummary, batchSize int, duration time.Duration) {
	m.DealsImported.Add(float64(summary.Imported))
	for _, e := range summary.Errors {
		m.DealsRejected.WithLabelValues(string(e.Reason)).Inc()
	}
	m.ImportBatchSize.Observe(float64(batchSize))
	m.ImportBatchDuration.Observe(duration.Seconds())
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
