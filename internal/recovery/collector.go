package recovery

import (
	"sync"
	"time"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// collector aggregates outcomes from concurrent copy tasks. It is the only
// shared mutable state of a run; sink and metrics are updated under its lock.
type collector struct {
	mu      sync.Mutex
	report  shadowforensic.Report
	sink    shadowforensic.Sink
	metrics *Metrics
}

func newCollector(sink shadowforensic.Sink, metrics *Metrics) *collector {
	if sink == nil {
		sink = shadowforensic.NopSink{}
	}
	return &collector{
		report: shadowforensic.Report{
			Recovered: []string{},
			Failures:  []shadowforensic.Failure{},
			Skipped:   []shadowforensic.Skip{},
		},
		sink:    sink,
		metrics: metrics,
	}
}

func (c *collector) record(o shadowforensic.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch o.Status {
	case shadowforensic.StatusRecovered:
		c.report.Recovered = append(c.report.Recovered, o.Path)
		c.report.Bytes += o.Bytes
		if c.metrics != nil {
			c.metrics.recovered(o.Bytes, o.Elapsed)
		}
	case shadowforensic.StatusFailed:
		failure := shadowforensic.Failure{Path: o.Path, Reason: o.Reason}
		if o.Err != nil {
			failure.Error = o.Err.Error()
		}
		c.report.Failures = append(c.report.Failures, failure)
		if c.metrics != nil {
			c.metrics.failed(string(o.Reason))
		}
	case shadowforensic.StatusSkipped:
		c.report.Skipped = append(c.report.Skipped, shadowforensic.Skip{Path: o.Path, Reason: string(o.Reason)})
		if c.metrics != nil {
			c.metrics.skipped()
		}
	}

	c.sink.Record(o)
}

// finish returns the sorted report. It must only be called once every task
// has returned.
func (c *collector) finish(excluded int, elapsed time.Duration) (shadowforensic.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := c.report
	report.Excluded = excluded
	report.Duration = elapsed
	report.Sort()

	return report, c.sink.Flush()
}
