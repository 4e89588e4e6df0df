// Package metrics exposes Prometheus collectors for the HTTP surface and
// the processing pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedw_http_requests_total",
			Help: "HTTP requests served, by method, route, and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fedw_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	pipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedw_pipeline_runs_total",
			Help: "Pipeline runs, by final status.",
		},
		[]string{"status"},
	)

	pipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fedw_pipeline_run_duration_seconds",
			Help:    "End-to-end pipeline run duration in seconds.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	rowsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fedw_rows_processed_total",
			Help: "Snapshot rows that survived cleaning, across all runs.",
		},
	)

	websocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fedw_websocket_clients",
			Help: "Currently connected WebSocket clients.",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPipelineRun records one finished pipeline run.
func RecordPipelineRun(status string, duration time.Duration) {
	pipelineRunsTotal.WithLabelValues(status).Inc()
	pipelineRunDuration.Observe(duration.Seconds())
}

// AddRowsProcessed adds to the processed-row counter.
func AddRowsProcessed(rows int) {
	rowsProcessedTotal.Add(float64(rows))
}

// WebSocketClientConnected adjusts the connected-client gauge.
func WebSocketClientConnected(delta int) {
	websocketClients.Add(float64(delta))
}

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
