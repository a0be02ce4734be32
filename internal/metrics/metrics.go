package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for backend requests.
const (
	OutcomeOK             = "ok"
	OutcomeServerError    = "server_error"
	OutcomeTransportError = "transport_error"
)

// Backend request Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facultymatch",
			Name:      "backend_requests_total",
			Help:      "Total number of requests sent to the matching backend",
		},
		[]string{"endpoint", "outcome"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "facultymatch",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
		},
		[]string{"endpoint"},
	)

	ActionsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facultymatch",
			Name:      "actions_rejected_total",
			Help:      "User actions rejected before any request was sent",
		},
		[]string{"action", "reason"}, // reason: "validation" / "in_flight"
	)
)

var registerOnce sync.Once

// Register registers the client metrics with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(BackendRequestsTotal)
		prometheus.MustRegister(BackendRequestDuration)
		prometheus.MustRegister(ActionsRejectedTotal)
	})
}

// ObserveRequest records one finished backend request.
func ObserveRequest(endpoint, outcome string, start time.Time) {
	BackendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// RejectAction records an action that never reached the network.
func RejectAction(action, reason string) {
	ActionsRejectedTotal.WithLabelValues(action, reason).Inc()
}

// WriteTextfile dumps the default registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
