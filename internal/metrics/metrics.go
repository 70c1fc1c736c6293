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
	ExperienceRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameExperienceRefreshes,
			Help: HelpTextExperienceRefreshes,
		},
		[]string{LabelOutcome},
	)

	PetLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePetLevelUps,
			Help: HelpTextPetLevelUps,
		},
		[]string{LabelSource},
	)

	PetRebirths = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePetRebirths,
			Help: HelpTextPetRebirths,
		},
	)

	PetLevel = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePetLevel,
			Help:    HelpTextPetLevel,
			Buckets: LevelBuckets,
		},
	)

	SettingsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSettingsSaved,
			Help: HelpTextSettingsSaved,
		},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncDuration,
			Help:    HelpTextSyncDuration,
			Buckets: UpstreamLatencyBuckets,
		},
	)

	SyncUsers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncUsers,
			Help: HelpTextSyncUsers,
		},
		[]string{LabelOutcome},
	)
)

// Task database Metrics
var (
	NotionRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameNotionRequestDuration,
			Help:    HelpTextNotionRequestDuration,
			Buckets: UpstreamLatencyBuckets,
		},
		[]string{LabelMethod, LabelOutcome},
	)

	NotionRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNotionRetries,
			Help: HelpTextNotionRetries,
		},
	)

	PropertyCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePropertyCache,
			Help: HelpTextPropertyCache,
		},
		[]string{LabelResult},
	)
)

// Stream Metrics
var (
	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)
)

// Background job Metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRuns,
			Help: HelpTextJobRuns,
		},
		[]string{LabelJob, LabelOutcome},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: UpstreamLatencyBuckets,
		},
		[]string{LabelJob},
	)

	JobsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobsDropped,
			Help: HelpTextJobsDropped,
		},
		[]string{LabelJob},
	)
)

// ObserveOutcome returns OutcomeError for a non-nil error and OutcomeSuccess otherwise
func ObserveOutcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
