package vdom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures renderer metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toyreact").
	Namespace string

	// Subsystem is the metrics subsystem (default: "vdom").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for update duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures renderer metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "toyreact",
		Subsystem: "vdom",
		// Updates are in-process tree walks: 10µs to ~80ms.
		Buckets:  prometheus.ExponentialBuckets(0.00001, 4, 8),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors a Renderer reports to.
type Metrics struct {
	mounts         prometheus.Counter
	updates        *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
	nodes          *prometheus.CounterVec
}

// NewMetrics creates and registers renderer metrics.
//
// Metrics collected:
//   - toyreact_vdom_mounts_total: trees mounted
//   - toyreact_vdom_updates_total: state-update cycles by component type
//   - toyreact_vdom_update_duration_seconds: state-update cycle duration
//   - toyreact_vdom_nodes_total: reconciliation outcomes by op
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		mounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Total number of trees mounted",
			ConstLabels: config.ConstLabels,
		}),

		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Total number of state-update render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		updateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_duration_seconds",
			Help:        "State-update render cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_total",
			Help:        "Reconciliation outcomes by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

func (m *Metrics) observeMount() {
	m.mounts.Inc()
}

func (m *Metrics) observeUpdate(component string, d time.Duration) {
	m.updates.WithLabelValues(component).Inc()
	m.updateDuration.WithLabelValues(component).Observe(d.Seconds())
}

func (m *Metrics) observeOp(op PatchOp) {
	m.nodes.WithLabelValues(op.String()).Inc()
}
