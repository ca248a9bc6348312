package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and turns every method into a no-op, so the pipeline can run
// without a registry (tests, library use).
type Metrics struct {
	PagesFetched      prometheus.Counter
	ListingsExtracted prometheus.Counter
	ListingsKept      prometheus.Counter
	ErrorsTotal       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		PagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_pages_fetched_total",
			Help: "The total number of search pages fetched successfully",
		}),
		ListingsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_listings_extracted_total",
			Help: "The total number of listings extracted from pages",
		}),
		ListingsKept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scraper_listings_kept_total",
			Help: "The total number of listings kept after deduplication",
		}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scraper_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g. 'fetch_failed', 'seen_cache_read_failed'
	}
}

func (m *Metrics) IncPagesFetched() {
	if m == nil {
		return
	}
	m.PagesFetched.Inc()
}

func (m *Metrics) AddListingsExtracted(n int) {
	if m == nil {
		return
	}
	m.ListingsExtracted.Add(float64(n))
}

func (m *Metrics) AddListingsKept(n int) {
	if m == nil {
		return
	}
	m.ListingsKept.Add(float64(n))
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
