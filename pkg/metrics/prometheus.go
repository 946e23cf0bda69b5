package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Detection outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeShortInput = "short_input"
	OutcomeError      = "internal_error"
)

// Manager manages all Prometheus metrics for the detector.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Detection
	detections        *prometheus.CounterVec
	zonesDetected     *prometheus.CounterVec
	detectionLatency  prometheus.Histogram
	overallConfidence prometheus.Histogram

	// Debounce
	debounceTriggers  prometheus.Counter
	debounceCoalesced prometheus.Counter
	debounceFired     prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerProcessed         prometheus.Counter
	workerErrors            prometheus.Counter
	workerProcessingLatency prometheus.Histogram

	// Results
	resultsStored prometheus.Gauge
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
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
		namespace:        "swimzones",
		subsystem:        "detector",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.detections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "detections_total",
		Help:        "Total number of analyses by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})
	m.zonesDetected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "zones_detected_total",
		Help:        "Number of merged zone signals reported, by zone",
		ConstLabels: m.constLabels,
	}, []string{"zone"})
	m.detectionLatency = m.histogram("detection_latency_milliseconds",
		"Histogram of full pipeline latency in milliseconds", m.histogramBuckets)
	m.overallConfidence = m.histogram("overall_confidence",
		"Distribution of overall confidence scores", prometheus.LinearBuckets(0, 20, 6))

	m.debounceTriggers = m.counter("debounce_triggers_total", "Analyses requested through a debouncer")
	m.debounceCoalesced = m.counter("debounce_coalesced_total", "Pending analyses replaced before they ran")
	m.debounceFired = m.counter("debounce_fired_total", "Debounced analyses that ran")

	m.queueSize = m.gauge("queue_size", "Current number of sessions waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Sessions enqueued")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Sessions dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Sessions rejected by a full or closed queue")

	m.workerCount = m.gauge("worker_count", "Current number of running workers")
	m.workerProcessed = m.counter("worker_processed_total", "Sessions analyzed by workers")
	m.workerErrors = m.counter("worker_errors_total", "Sessions whose analysis failed")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds",
		"Time from dequeue to stored result in milliseconds", m.histogramBuckets)

	m.resultsStored = m.gauge("results_stored", "Analyses held by the result store")
	m.cacheHits = m.counter("cache_hits_total", "Analyses served from the result cache")
	m.cacheMisses = m.counter("cache_misses_total", "Analyses that missed the result cache")
}

// RecordDetection counts one analysis by outcome.
func RecordDetection(outcome string) {
	globalManager.detections.WithLabelValues(outcome).Inc()
}

// RecordZoneDetected counts a zone reported in a result.
func RecordZoneDetected(zone string) {
	globalManager.zonesDetected.WithLabelValues(zone).Inc()
}

// RecordDetectionLatency records pipeline latency in milliseconds.
func RecordDetectionLatency(latencyMs float64) {
	globalManager.detectionLatency.Observe(latencyMs)
}

// RecordOverallConfidence records a result's overall confidence.
func RecordOverallConfidence(confidence float64) {
	globalManager.overallConfidence.Observe(confidence)
}

// RecordDebounceTrigger counts a debounced request.
func RecordDebounceTrigger() { globalManager.debounceTriggers.Inc() }

// RecordDebounceCoalesced counts a pending request that was replaced.
func RecordDebounceCoalesced() { globalManager.debounceCoalesced.Inc() }

// RecordDebounceFired counts a debounced request that ran.
func RecordDebounceFired() { globalManager.debounceFired.Inc() }

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.queueEnqueueRate.Inc() }

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() { globalManager.queueDequeueRate.Inc() }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessed increments the processed sessions counter.
func RecordWorkerProcessed() { globalManager.workerProcessed.Inc() }

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() { globalManager.workerErrors.Inc() }

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// UpdateResultsStored sets the number of stored analyses.
func UpdateResultsStored(count int) {
	globalManager.resultsStored.Set(float64(count))
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() { globalManager.cacheHits.Inc() }

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in text exposition format to path.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
