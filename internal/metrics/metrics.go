package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	ChallengeJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengeJoins,
			Help: HelpTextChallengeJoins,
		},
		[]string{LabelResult},
	)

	ChallengeCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChallengeCompletions,
			Help: HelpTextChallengeCompletions,
		},
	)

	ChallengeVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChallengeVerifications,
			Help: HelpTextChallengeVerifications,
		},
		[]string{LabelKey, LabelResult},
	)

	RewardCoreCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardCoreCredited,
			Help: HelpTextRewardCoreCredited,
		},
		[]string{LabelBalance},
	)

	RewardItemsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardItemsCredited,
			Help: HelpTextRewardItemsCredited,
		},
	)

	SettlementFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSettlementFailures,
			Help: HelpTextSettlementFailures,
		},
	)
)

// Event log retention metrics
var (
	EventLogCleanupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventLogCleanupRuns,
			Help: HelpTextEventLogCleanupRuns,
		},
		[]string{LabelResult},
	)

	EventLogRowsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEventLogRowsDeleted,
			Help: HelpTextEventLogRowsDeleted,
		},
	)

	EventLogLastCleanup = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEventLogLastCleanupTS,
			Help: HelpTextEventLogLastCleanupTS,
		},
	)
)
