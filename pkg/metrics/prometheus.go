// Package metrics provides Prometheus metrics for the internship administration service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Intake and matching
	internsAdded        prometheus.Counter
	intakeRejected      *prometheus.CounterVec
	skillsExtracted     prometheus.Histogram
	resumeExtractions   *prometheus.CounterVec
	suggestionsReturned prometheus.Histogram

	// Assignment state machine
	assignments *prometheus.CounterVec

	// Collaborators
	collegeFetches      *prometheus.CounterVec
	configurationErrors *prometheus.CounterVec
	notifications       *prometheus.CounterVec

	// Store
	storeInterns      *prometheus.GaugeVec
	storeMentors      prometheus.Gauge
	storeQueryLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hrms",
		subsystem:        "internships",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.internsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "interns_added_total",
		Help:      "Total number of interns created through intake",
	})

	m.intakeRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "intake_rejected_total",
		Help:      "Intake submissions rejected, by reason",
	}, []string{"reason"})

	m.skillsExtracted = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "skills_extracted",
		Help:      "Number of taxonomy skills found per extraction",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
	})

	m.resumeExtractions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resume_extractions_total",
		Help:      "Resume text extractions by document kind and outcome",
	}, []string{"kind", "outcome"})

	m.suggestionsReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "mentor_suggestions",
		Help:      "Number of mentor suggestions returned per ranking",
		Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})

	m.assignments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignments_total",
		Help:      "Mentor assignment attempts by outcome",
	}, []string{"outcome"})

	m.collegeFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "college_fetches_total",
		Help:      "College list fetches by outcome",
	}, []string{"outcome"})

	m.configurationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "configuration_errors_total",
		Help:      "Configuration problems detected at start-up",
	}, []string{"kind"})

	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_total",
		Help:      "Published notifications by routing key and outcome",
	}, []string{"routing_key", "outcome"})

	m.storeInterns = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_interns",
		Help:      "Interns in the record store by status",
	}, []string{"status"})

	m.storeMentors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_mentors",
		Help:      "Mentors in the record store",
	})

	m.storeQueryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_operation_latency_milliseconds",
		Help:      "Record store operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"driver", "operation"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_errors_total",
			Help:      "HTTP error responses by endpoint and error type",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordInternAdded increments the interns added counter.
func RecordInternAdded() {
	globalManager.internsAdded.Inc()
}

// RecordIntakeRejected counts a rejected intake submission.
func RecordIntakeRejected(reason string) {
	globalManager.intakeRejected.WithLabelValues(reason).Inc()
}

// RecordSkillsExtracted observes how many skills one extraction produced.
func RecordSkillsExtracted(count int) {
	globalManager.skillsExtracted.Observe(float64(count))
}

// RecordResumeExtraction counts a résumé text extraction.
func RecordResumeExtraction(kind, outcome string) {
	globalManager.resumeExtractions.WithLabelValues(kind, outcome).Inc()
}

// RecordSuggestions observes the size of a ranked mentor list.
func RecordSuggestions(count int) {
	globalManager.suggestionsReturned.Observe(float64(count))
}

// RecordAssignment counts an assignment attempt by outcome
// (assigned, unchanged, reassigned, conflict, not_found, error).
func RecordAssignment(outcome string) {
	globalManager.assignments.WithLabelValues(outcome).Inc()
}

// RecordCollegeFetch counts a college list fetch (ok, error).
func RecordCollegeFetch(outcome string) {
	globalManager.collegeFetches.WithLabelValues(outcome).Inc()
}

// RecordConfigurationError counts a configuration problem such as an empty taxonomy.
func RecordConfigurationError(kind string) {
	globalManager.configurationErrors.WithLabelValues(kind).Inc()
}

// RecordNotification counts a published notification.
func RecordNotification(routingKey, outcome string) {
	globalManager.notifications.WithLabelValues(routingKey, outcome).Inc()
}

// UpdateStoreInterns sets the intern gauges.
func UpdateStoreInterns(unassigned, assigned int) {
	globalManager.storeInterns.WithLabelValues("unassigned").Set(float64(unassigned))
	globalManager.storeInterns.WithLabelValues("assigned").Set(float64(assigned))
}

// UpdateStoreMentors sets the mentor gauge.
func UpdateStoreMentors(count int) {
	globalManager.storeMentors.Set(float64(count))
}

// RecordStoreLatency records a store operation latency.
func RecordStoreLatency(driver, operation string, latencyMs float64) {
	globalManager.storeQueryLatency.WithLabelValues(driver, operation).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
