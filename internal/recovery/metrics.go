package recovery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GlobalMetrics contains the recovery counters that haven't yet
// been scoped for a specific snapshot.
type GlobalMetrics struct {
	filesRecoveredTotal *prometheus.CounterVec
	filesFailedTotal    *prometheus.CounterVec
	filesSkippedTotal   *prometheus.CounterVec
	bytesRecoveredTotal *prometheus.CounterVec
	copyDuration        *prometheus.HistogramVec
}

// Describe implements prometheus.Collector.
func (m GlobalMetrics) Describe(descs chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(m, descs)
}

// Collect implements prometheus.Collector.
func (m GlobalMetrics) Collect(metrics chan<- prometheus.Metric) {
	m.filesRecoveredTotal.Collect(metrics)
	m.filesFailedTotal.Collect(metrics)
	m.filesSkippedTotal.Collect(metrics)
	m.bytesRecoveredTotal.Collect(metrics)
	m.copyDuration.Collect(metrics)
}

// NewGlobalMetrics returns a new GlobalMetrics instance.
func NewGlobalMetrics() GlobalMetrics {
	labels := []string{"snapshot"}
	return GlobalMetrics{
		filesRecoveredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadowforensic_files_recovered_total",
			Help: "Number of files copied out of a snapshot.",
		}, labels),
		filesFailedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadowforensic_files_failed_total",
			Help: "Number of files that could not be copied.",
		}, append(labels, "reason")),
		filesSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadowforensic_files_skipped_total",
			Help: "Number of files skipped because they could not be inspected.",
		}, labels),
		bytesRecoveredTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shadowforensic_bytes_recovered_total",
			Help: "Number of bytes copied out of a snapshot.",
		}, labels),
		copyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shadowforensic_copy_duration_seconds",
			Help:    "Time spent copying a single file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, labels),
	}
}

// Metrics contains the recovery metrics of one snapshot.
type Metrics struct {
	filesRecoveredTotal prometheus.Counter
	filesFailedTotal    *prometheus.CounterVec
	filesSkippedTotal   prometheus.Counter
	bytesRecoveredTotal prometheus.Counter
	copyDuration        prometheus.Observer
}

// Scope returns the metrics scoped for a given snapshot.
func (m GlobalMetrics) Scope(snapshotID string) *Metrics {
	labels := prometheus.Labels{"snapshot": snapshotID}
	return &Metrics{
		filesRecoveredTotal: m.filesRecoveredTotal.With(labels),
		filesFailedTotal:    m.filesFailedTotal.MustCurryWith(labels),
		filesSkippedTotal:   m.filesSkippedTotal.With(labels),
		bytesRecoveredTotal: m.bytesRecoveredTotal.With(labels),
		copyDuration:        m.copyDuration.With(labels),
	}
}

func (m *Metrics) recovered(bytes int64, elapsed time.Duration) {
	m.filesRecoveredTotal.Inc()
	m.bytesRecoveredTotal.Add(float64(bytes))
	m.copyDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) failed(reason string) {
	m.filesFailedTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) skipped() {
	m.filesSkippedTotal.Inc()
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m GlobalMetrics) WriteTextfile(path string) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(m); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, registry)
}
