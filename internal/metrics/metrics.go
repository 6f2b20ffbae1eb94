// Package metrics holds the Prometheus collectors of the harvester.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors. They exist from package init so callers can
// record without checking; Register exposes them.
var Metrics = struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	EgressRotations  prometheus.Counter
	CrawlPages       prometheus.Counter
	CrawlVideos      *prometheus.CounterVec
	CrawlDuration    prometheus.Histogram
	WorkersBusy      prometheus.Gauge
}{
	UpstreamRequests: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeharvest_upstream_requests_total",
			Help: "Upstream API calls, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	),
	UpstreamDuration: prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubeharvest_upstream_request_duration_seconds",
			Help:    "Upstream API call duration in seconds, by operation.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	),
	EgressRotations: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tubeharvest_egress_rotations_total",
			Help: "Egress address rotations.",
		},
	),
	CrawlPages: prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tubeharvest_crawl_pages_total",
			Help: "Upload pages walked.",
		},
	),
	CrawlVideos: prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeharvest_crawl_videos_total",
			Help: "Videos stored, by whether they were new.",
		},
		[]string{"new"},
	),
	CrawlDuration: prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tubeharvest_crawl_duration_seconds",
			Help:    "Duration of a single channel crawl.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	),
	WorkersBusy: prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tubeharvest_workers_busy",
			Help: "Crawl workers currently holding a client.",
		},
	),
}

var registerOnce sync.Once

// Register adds all collectors to reg. Later calls are no-ops.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			Metrics.UpstreamRequests,
			Metrics.UpstreamDuration,
			Metrics.EgressRotations,
			Metrics.CrawlPages,
			Metrics.CrawlVideos,
			Metrics.CrawlDuration,
			Metrics.WorkersBusy,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
