// Package metrics exports run and item statistics in Prometheus format.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bft-labs/jsongate/internal/domain"
	"github.com/bft-labs/jsongate/internal/ports"
)

// Metrics is a ports.ResultObserver backed by its own Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	ItemsProcessed *prometheus.CounterVec
	ItemDuration   *prometheus.HistogramVec
	ItemsSkipped   prometheus.Counter
	Runs           prometheus.Counter
	RunsCanceled   prometheus.Counter
	RunDuration    prometheus.Gauge
	LastRunTime    prometheus.Gauge
}

// New creates a Metrics instance with all jsongate metrics registered on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ItemsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "jsongate_items_processed_total",
			Help: "Items that reached a terminal state, by outcome",
		}, []string{"outcome"}),
		ItemDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jsongate_item_duration_seconds",
			Help:    "Time to read, validate and route one item",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"outcome"}),
		ItemsSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "jsongate_items_skipped_total",
			Help: "Items never dispatched because their run was canceled",
		}),
		Runs: f.NewCounter(prometheus.CounterOpts{
			Name: "jsongate_runs_total",
			Help: "Completed runs",
		}),
		RunsCanceled: f.NewCounter(prometheus.CounterOpts{
			Name: "jsongate_runs_canceled_total",
			Help: "Runs that stopped early on cancellation",
		}),
		RunDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "jsongate_last_run_duration_seconds",
			Help: "Wall-clock duration of the most recent run",
		}),
		LastRunTime: f.NewGauge(prometheus.GaugeOpts{
			Name: "jsongate_last_run_timestamp_seconds",
			Help: "Unix time the most recent run finished",
		}),
	}
}

// OnResult records one finished item.
func (m *Metrics) OnResult(_ string, r domain.ProcessingResult) {
	outcome := outcomeLabel(r.State)
	m.ItemsProcessed.WithLabelValues(outcome).Inc()
	m.ItemDuration.WithLabelValues(outcome).Observe(r.Elapsed.Seconds())
}

// OnRunComplete records the end of a run.
func (m *Metrics) OnRunComplete(s domain.RunSummary) {
	m.Runs.Inc()
	if s.Canceled {
		m.RunsCanceled.Inc()
	}
	m.ItemsSkipped.Add(float64(s.Skipped))
	m.RunDuration.Set(s.Elapsed.Seconds())
	m.LastRunTime.SetToCurrentTime()
}

// Registry returns the registry holding every jsongate metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcomeLabel(s domain.ItemState) string {
	return strings.ToLower(s.String())
}

var _ ports.ResultObserver = (*Metrics)(nil)
