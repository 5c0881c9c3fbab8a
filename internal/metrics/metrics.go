package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectAttempts counts session connect attempts by trigger (probe, connect, reload) and outcome
	ConnectAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_connect_attempts_total",
			Help: "Total number of session connect attempts",
		},
		[]string{"trigger", "outcome"},
	)

	// ReconcileDuration tracks how long role and identity reconciliation takes
	ReconcileDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_reconcile_duration_seconds",
			Help:    "Reconciliation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"trigger"},
	)

	// SessionState is 1 for the state the session is currently in and 0 otherwise
	SessionState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "session_state",
			Help: "Current session state",
		},
		[]string{"state"},
	)

	// RoleResolutions counts resolved on-chain roles
	RoleResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_role_resolutions_total",
			Help: "Total number of on-chain role resolutions by resulting role",
		},
		[]string{"role"},
	)

	// WalletRequests counts wallet JSON-RPC requests by method and status
	WalletRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_requests_total",
			Help: "Total number of wallet provider requests",
		},
		[]string{"method", "status"},
	)

	// WalletEvents counts account and chain change events observed from the wallet
	WalletEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_events_total",
			Help: "Total number of wallet change events",
		},
		[]string{"event"},
	)

	// BackendRequests counts backend identity requests by outcome
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_backend_requests_total",
			Help: "Total number of backend identity requests",
		},
		[]string{"status"},
	)

	// ErrorsTotal counts absorbed and surfaced errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)
