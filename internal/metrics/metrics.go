package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Marketplace API calls
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "api_requests_total",
			Help:      "Total calls to the marketplace API",
		},
		[]string{"operation", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "api_request_duration_seconds",
			Help:      "Marketplace API call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
		},
		[]string{"operation"},
	)

	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "messages_sent_total",
			Help:      "Message sends by result",
		},
		[]string{"result"},
	)

	UserSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "user_searches_total",
			Help:      "User search queries by outcome",
		},
		[]string{"outcome"},
	)

	StaleResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "stale_responses_total",
			Help:      "API responses discarded because a newer request superseded them",
		},
		[]string{"kind"},
	)

	AdminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "admin_logins_total",
			Help:      "Admin sign-in attempts by result",
		},
		[]string{"result"},
	)

	SessionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "sessions_created_total",
			Help:      "Browser sessions created by role",
		},
		[]string{"role"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the shared rate limiter",
		},
		[]string{"scope"},
	)

	ActiveMessengers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "active_messengers",
			Help:      "Sessions with live messaging state",
		},
	)

	WebsocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "afrilance",
			Subsystem: "web",
			Name:      "websocket_connections",
			Help:      "Open websocket connections",
		},
	)
)

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records a marketplace API call. A status of 0 means the
// request never got a response.
func RecordAPIRequest(operation string, status int, durationSec float64) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(operation, label).Inc()
	APIRequestDuration.WithLabelValues(operation).Observe(durationSec)
}

func RecordMessageSent(result string) {
	MessagesSentTotal.WithLabelValues(result).Inc()
}

func RecordUserSearch(outcome string) {
	UserSearchesTotal.WithLabelValues(outcome).Inc()
}

func RecordStaleResponse(kind string) {
	StaleResponsesTotal.WithLabelValues(kind).Inc()
}

func RecordAdminLogin(result string) {
	AdminLoginsTotal.WithLabelValues(result).Inc()
}

func RecordSessionCreated(role string) {
	SessionsCreatedTotal.WithLabelValues(role).Inc()
}

func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}
