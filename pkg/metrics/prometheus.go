// Package metrics provides Prometheus metrics for the hiring warehouse pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector naming shared by every metric.
const (
	namespace = "hiredw"
	subsystem = "pipeline"
)

// latencyBuckets are the millisecond buckets of every duration histogram.
var latencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000} //nolint:gochecknoglobals // shared bucket layout

// Manager owns every Prometheus collector emitted by a pipeline run.
type Manager struct {
	registry prometheus.Registerer

	// Extract / transform
	rowsExtracted     prometheus.Counter
	parseDefects      *prometheus.CounterVec
	recordsClassified *prometheus.CounterVec

	// Transform worker pool
	workerActive prometheus.Gauge
	queueSize    prometheus.Gauge

	// Load
	dimensionRowsInserted *prometheus.CounterVec
	factsInserted         prometheus.Counter
	loadRollbacks         prometheus.Counter

	// Stages
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec

	// KPI aggregation
	kpiQueryDuration *prometheus.HistogramVec
	kpiRows          *prometheus.GaugeVec

	// HTTP (serve)
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	lastRunSuccess prometheus.Gauge
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
	m := &Manager{registry: prometheus.DefaultRegisterer}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.rowsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rows_extracted_total",
		Help:      "Total number of input rows read from the candidate file",
	})

	m.parseDefects = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "parse_defects_total",
		Help:      "Fields that failed to coerce and were replaced by a sentinel",
	}, []string{"field"})

	m.recordsClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "records_classified_total",
		Help:      "Records classified, partitioned by hire decision",
	}, []string{"hired"})

	m.workerActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "worker_active_count",
		Help:      "Transform workers currently running",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "queue_size",
		Help:      "Rows waiting in the transform queue",
	})

	m.dimensionRowsInserted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "dimension_rows_inserted_total",
		Help:      "New dimension rows written by the loader (existing natural keys excluded)",
	}, []string{"dimension"})

	m.factsInserted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "facts_inserted_total",
		Help:      "Fact rows appended to FactHiring",
	})

	m.loadRollbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "load_rollbacks_total",
		Help:      "Batch loads rolled back",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stage_duration_milliseconds",
		Help:      "Wall time per pipeline stage in milliseconds",
		Buckets:   latencyBuckets,
	}, []string{"stage"})

	m.stageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stage_errors_total",
		Help:      "Pipeline stages that aborted the run",
	}, []string{"stage"})

	m.kpiQueryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "kpi_query_duration_milliseconds",
		Help:      "KPI query latency in milliseconds",
		Buckets:   latencyBuckets,
	}, []string{"kpi"})

	m.kpiRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "kpi_rows",
		Help:      "Rows in the latest result table of each KPI",
	}, []string{"kpi"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.lastRunSuccess = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "last_run_success",
		Help:      "1 if the latest pipeline run completed, 0 if it aborted",
	})
}

// RecordRowsExtracted adds n to the extracted rows counter.
func RecordRowsExtracted(n int) {
	globalManager.rowsExtracted.Add(float64(n))
}

// RecordParseDefect counts one sentinel substitution for field.
func RecordParseDefect(field string) {
	globalManager.parseDefects.WithLabelValues(field).Inc()
}

// RecordClassified counts a classified record by its hire decision.
func RecordClassified(hired bool) {
	label := "false"
	if hired {
		label = "true"
	}
	globalManager.recordsClassified.WithLabelValues(label).Inc()
}

// UpdateWorkerActiveCount sets the number of running transform workers.
func UpdateWorkerActiveCount(n int) {
	globalManager.workerActive.Set(float64(n))
}

// UpdateQueueSize sets the transform queue depth.
func UpdateQueueSize(n int) {
	globalManager.queueSize.Set(float64(n))
}

// RecordDimensionRows adds n new rows for dimension.
func RecordDimensionRows(dimension string, n int64) {
	globalManager.dimensionRowsInserted.WithLabelValues(dimension).Add(float64(n))
}

// RecordFactsInserted adds n to the facts counter.
func RecordFactsInserted(n int) {
	globalManager.factsInserted.Add(float64(n))
}

// RecordLoadRollback counts a rolled back batch.
func RecordLoadRollback() {
	globalManager.loadRollbacks.Inc()
}

// RecordStageDuration records how long a stage took.
func RecordStageDuration(stage string, durationMs float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(durationMs)
}

// RecordStageError counts an aborted stage.
func RecordStageError(stage string) {
	globalManager.stageErrors.WithLabelValues(stage).Inc()
}

// RecordKPIQuery records query latency and result size for a KPI.
func RecordKPIQuery(kpi string, durationMs float64, rows int) {
	globalManager.kpiQueryDuration.WithLabelValues(kpi).Observe(durationMs)
	globalManager.kpiRows.WithLabelValues(kpi).Set(float64(rows))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// SetLastRunSuccess flags the outcome of the latest run.
func SetLastRunSuccess(ok bool) {
	if ok {
		globalManager.lastRunSuccess.Set(1)
		return
	}
	globalManager.lastRunSuccess.Set(0)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector. Batch runs exit before any scrape.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteTextfile, path, err)
	}
	return nil
}
