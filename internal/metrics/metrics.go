package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the ingestion pipeline. A nil
// *Collector is valid and records nothing, which keeps tests free of global
// registry collisions.
type Collector struct {
	processed  *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
	bytesSaved prometheus.Counter
	duration   prometheus.Histogram
}

// NewCollector creates and registers all pipeline metrics.
func NewCollector() *Collector {
	return &Collector{
		processed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "velarias_images_processed_total",
				Help: "Total number of images successfully optimized",
			},
			[]string{"category"},
		),
		fallbacks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "velarias_image_fallbacks_total",
				Help: "Total number of images served unoptimized after a transform failure",
			},
			[]string{"category"},
		),
		bytesSaved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "velarias_image_bytes_saved_total",
				Help: "Cumulative bytes saved by optimization (original minus display variant)",
			},
		),
		duration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "velarias_image_process_seconds",
				Help:    "Per-image transform and store latency in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}
}

// ObserveProcessed records one successfully optimized image.
func (c *Collector) ObserveProcessed(category string, seconds float64, savedBytes int64) {
	if c == nil {
		return
	}
	c.processed.WithLabelValues(category).Inc()
	c.duration.Observe(seconds)
	if savedBytes > 0 {
		c.bytesSaved.Add(float64(savedBytes))
	}
}

// ObserveFallback records one image that degraded to its original bytes.
func (c *Collector) ObserveFallback(category string) {
	if c == nil {
		return
	}
	c.fallbacks.WithLabelValues(category).Inc()
}
