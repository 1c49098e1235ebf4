package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodrip_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecodrip_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	mapUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodrip_map_uploads_total",
		Help: "Map image uploads by result",
	}, []string{"result"})

	mapUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecodrip_map_upload_bytes_total",
		Help: "Bytes written to map storage",
	})

	sprinklerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodrip_sprinkler_operations_total",
		Help: "Sprinkler mutations by operation",
	}, []string{"operation"})

	placementClicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodrip_placement_clicks_total",
		Help: "Placement clicks by mode and outcome",
	}, []string{"mode", "outcome"})

	fileCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecodrip_file_cleanup_failures_total",
		Help: "Stored files that could not be removed",
	})

	rateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecodrip_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	}, []string{"scope"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func ObserveMapUpload(result string, bytes int64) {
	mapUploads.WithLabelValues(result).Inc()
	if bytes > 0 {
		mapUploadBytes.Add(float64(bytes))
	}
}

func ObserveSprinklerOperation(operation string) {
	sprinklerOperations.WithLabelValues(operation).Inc()
}

func ObservePlacement(mode, outcome string) {
	placementClicks.WithLabelValues(mode, outcome).Inc()
}

func ObserveFileCleanupFailure() {
	fileCleanupFailures.Inc()
}

func ObserveRateLimited(scope string) {
	rateLimited.WithLabelValues(scope).Inc()
}
