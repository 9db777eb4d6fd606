// Package metrics 定义导出任务的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pim_export"

// Purge outcome labels
const (
	OutcomeDeleted     = "deleted"
	OutcomeRetained    = "retained"
	OutcomeSkipped     = "skipped"
	OutcomeParseError  = "parse_error"
	OutcomeDeleteError = "delete_error"
	OutcomeGone        = "gone"
	OutcomeWouldDelete = "would_delete"
)

// Metrics tracks job execution.
//
// Metrics:
//   - pim_export_runs_total: runs by task and result
//   - pim_export_generator_calls_total: CSV generator calls by result
//   - pim_export_purge_entries_total: purge root children by outcome
//   - pim_export_last_success_timestamp_seconds: last successful run by task
//   - pim_export_run_duration_seconds: run duration by task
//   - pim_export_open_resolvers: resource resolvers currently open
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	runsTotal      *prometheus.CounterVec
	generatorCalls *prometheus.CounterVec
	purgeEntries   *prometheus.CounterVec
	lastSuccess    *prometheus.GaugeVec
	runDuration    *prometheus.HistogramVec
	openResolvers  prometheus.Gauge
}

// New creates and registers the collectors with registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of job runs by result",
			},
			[]string{"task", "result"},
		),
		generatorCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generator_calls_total",
				Help:      "Total number of CSV generator calls by result",
			},
			[]string{"result"},
		),
		purgeEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purge_entries_total",
				Help:      "Purge root children evaluated, by outcome",
			},
			[]string{"outcome"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run",
			},
			[]string{"task"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Job run duration in seconds",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"task"},
		),
		openResolvers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "open_resolvers",
				Help:      "Resource resolvers currently open",
			},
		),
	}

	registry.MustRegister(
		m.runsTotal,
		m.generatorCalls,
		m.purgeEntries,
		m.lastSuccess,
		m.runDuration,
		m.openResolvers,
	)
	return m
}

// RecordRun records the result and duration of one run.
func (m *Metrics) RecordRun(task, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(task, result).Inc()
	m.runDuration.WithLabelValues(task).Observe(d.Seconds())
	if result == "success" {
		m.lastSuccess.WithLabelValues(task).SetToCurrentTime()
	}
}

// RecordGenerator records one CSV generator call.
func (m *Metrics) RecordGenerator(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.generatorCalls.WithLabelValues(result).Inc()
}

// RecordPurge adds n entries to an outcome.
func (m *Metrics) RecordPurge(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.purgeEntries.WithLabelValues(outcome).Add(float64(n))
}

// ResolverOpened 解析器打开
func (m *Metrics) ResolverOpened() {
	if m == nil {
		return
	}
	m.openResolvers.Inc()
}

// ResolverClosed 解析器关闭
func (m *Metrics) ResolverClosed() {
	if m == nil {
		return
	}
	m.openResolvers.Dec()
}
