// Package metrics defines and registers all custom Prometheus metrics for
// the dashboard client. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "finrating_client"

// RequestsTotal counts outbound API requests.
// Labels:
//   - endpoint: logical endpoint name (e.g. "login", "records", "upload")
//   - outcome: "success" or the classified failure kind (e.g. "unauthorized",
//     "network_unavailable", "timeout", "server_error")
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of outbound API requests, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// RequestDuration measures outbound request latency end-to-end, including
// body decode.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outbound API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// UploadBytesTotal counts bytes submitted through dataset uploads,
// successful or not.
var UploadBytesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_bytes_total",
		Help:      "Total bytes submitted in dataset upload requests.",
	},
)

// RefreshesScheduledTotal counts dashboard refreshes requested through the
// scheduler, including coalesced ones.
var RefreshesScheduledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_scheduled_total",
		Help:      "Total number of dashboard refresh requests scheduled.",
	},
)
