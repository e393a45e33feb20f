package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Wallet mutations by operation (add/subtract) and outcome
	// (success/validation/business/persistence).
	WalletOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_operations_total",
		Help: "Total number of wallet balance operations",
	}, []string{"operation", "outcome"})

	// Latency of the paged appointment queries
	AppointmentQueryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "appointment_query_latency_seconds",
		Help:    "Latency of paged appointment queries",
		Buckets: prometheus.DefBuckets,
	})

	// HTTP request latency by method and route
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func Init() {
	prometheus.MustRegister(
		WalletOperations,
		AppointmentQueryLatency,
		HTTPRequestDuration,
	)
}
