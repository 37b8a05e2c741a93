// Package metrics implements the Prometheus metrics of the service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	prometheusNamespace = "boothworks"
	prometheusSubsystem = "crm_manager"

	tenantIDLabelName   = "tenant_id"
	routeLabelName      = "route"
	methodLabelName     = "method"
	codeLabelName       = "code"
	workerTypeLabelName = "worker_type"
	triggerLabelName    = "trigger"
	statusLabelName     = "status"
)

var (
	metrics *Metrics
	once    sync.Once
)

// Metrics holds the prometheus.Collector instances
type Metrics struct {
	requestCount        *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	workflowExecutions  *prometheus.CounterVec
	reconcilerSuccesses *prometheus.CounterVec
	reconcilerFailures  *prometheus.CounterVec
	reconcilerErrors    *prometheus.CounterVec
	reconcilerDuration  *prometheus.GaugeVec
}

// Register registers the metrics with the given prometheus.Registerer
func (m *Metrics) Register(r prometheus.Registerer) {
	r.MustRegister(m.requestCount)
	r.MustRegister(m.requestDuration)
	r.MustRegister(m.workflowExecutions)
	r.MustRegister(m.reconcilerSuccesses)
	r.MustRegister(m.reconcilerFailures)
	r.MustRegister(m.reconcilerErrors)
	r.MustRegister(m.reconcilerDuration)
}

// DefaultInstance returns the global singleton instance for Metrics
func DefaultInstance() *Metrics {
	once.Do(func() {
		metrics = NewInstance()
	})
	return metrics
}

// NewInstance returns a fresh Metrics instance, used by tests to isolate
// metric state.
func NewInstance() *Metrics {
	return &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "api_requests_total",
			Help:      "The number of API requests served.",
		}, []string{routeLabelName, methodLabelName, codeLabelName}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "api_request_duration_seconds",
			Help:      "Time spent serving API requests.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 5},
		}, []string{routeLabelName}),
		workflowExecutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "workflow_executions_total",
			Help:      "The number of workflow executions by trigger and outcome.",
		}, []string{tenantIDLabelName, triggerLabelName, statusLabelName}),
		reconcilerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "reconciler_success_count",
			Help:      "The number of successful reconcile runs.",
		}, []string{workerTypeLabelName}),
		reconcilerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "reconciler_failure_count",
			Help:      "The number of failed reconcile runs.",
		}, []string{workerTypeLabelName}),
		reconcilerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "reconciler_errors_count",
			Help:      "The number of errors encountered while reconciling.",
		}, []string{workerTypeLabelName}),
		reconcilerDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Subsystem: prometheusSubsystem,
			Name:      "reconciler_duration_seconds",
			Help:      "Duration of the last reconcile run.",
		}, []string{workerTypeLabelName}),
	}
}

// IncRequestCount ...
func IncRequestCount(route, method, code string) {
	DefaultInstance().requestCount.With(prometheus.Labels{
		routeLabelName:  route,
		methodLabelName: method,
		codeLabelName:   code,
	}).Inc()
}

// ObserveRequestDuration ...
func ObserveRequestDuration(route string, elapsed time.Duration) {
	DefaultInstance().requestDuration.With(prometheus.Labels{routeLabelName: route}).
		Observe(elapsed.Seconds())
}

// IncWorkflowExecution ...
func IncWorkflowExecution(tenantID, trigger, status string) {
	DefaultInstance().workflowExecutions.With(prometheus.Labels{
		tenantIDLabelName: tenantID,
		triggerLabelName:  trigger,
		statusLabelName:   status,
	}).Inc()
}

// InitReconcilerMetricsForType pre-creates the reconciler series for a
// worker type so they appear with a zero value before the first run.
func InitReconcilerMetricsForType(workerType string) {
	labels := prometheus.Labels{workerTypeLabelName: workerType}
	DefaultInstance().reconcilerSuccesses.With(labels)
	DefaultInstance().reconcilerFailures.With(labels)
	DefaultInstance().reconcilerErrors.With(labels)
	DefaultInstance().reconcilerDuration.With(labels)
}

// IncreaseReconcilerSuccessCount ...
func IncreaseReconcilerSuccessCount(workerType string) {
	DefaultInstance().reconcilerSuccesses.With(prometheus.Labels{workerTypeLabelName: workerType}).Inc()
}

// IncreaseReconcilerFailureCount ...
func IncreaseReconcilerFailureCount(workerType string) {
	DefaultInstance().reconcilerFailures.With(prometheus.Labels{workerTypeLabelName: workerType}).Inc()
}

// IncreaseReconcilerErrorsCount ...
func IncreaseReconcilerErrorsCount(workerType string, count int) {
	DefaultInstance().reconcilerErrors.With(prometheus.Labels{workerTypeLabelName: workerType}).
		Add(float64(count))
}

// UpdateReconcilerDurationMetric ...
func UpdateReconcilerDurationMetric(workerType string, elapsed time.Duration) {
	DefaultInstance().reconcilerDuration.With(prometheus.Labels{workerTypeLabelName: workerType}).
		Set(elapsed.Seconds())
}
