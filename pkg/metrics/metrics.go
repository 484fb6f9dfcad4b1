// Package metrics collects run outcomes on a private prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/criyle/go-judger/runner"
)

// Collector holds the run metrics
type Collector struct {
	Registry *prometheus.Registry

	RunsTotal *prometheus.CounterVec
	CPUTime   prometheus.Histogram
	RealTime  prometheus.Histogram
	Memory    prometheus.Histogram
	Signalled *prometheus.CounterVec
}

// NewCollector creates a Collector with all metrics registered
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	timeBuckets := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

	c := &Collector{
		Registry: reg,

		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "judger",
			Subsystem: "run",
			Name:      "total",
			Help:      "Total runs by error kind and verdict.",
		}, []string{"error", "verdict"}),

		CPUTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "judger",
			Subsystem: "run",
			Name:      "cpu_time_seconds",
			Help:      "CPU time consumed by the child in seconds.",
			Buckets:   timeBuckets,
		}),

		RealTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "judger",
			Subsystem: "run",
			Name:      "real_time_seconds",
			Help:      "Wall clock time from launch to reap in seconds.",
			Buckets:   timeBuckets,
		}),

		Memory: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "judger",
			Subsystem: "run",
			Name:      "memory_bytes",
			Help:      "Peak resident memory of the child in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1<<20, 2, 12),
		}),

		Signalled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "judger",
			Subsystem: "run",
			Name:      "signalled_total",
			Help:      "Children terminated by a signal.",
		}, []string{"signal"}),
	}

	reg.MustRegister(c.RunsTotal, c.CPUTime, c.RealTime, c.Memory, c.Signalled)
	return c
}

// Observe records one run result. Metrics of failed runs are not
// observed as they are not meaningful.
func (c *Collector) Observe(r runner.Result) {
	c.RunsTotal.WithLabelValues(r.Error.String(), r.Verdict.String()).Inc()
	if r.Error != runner.Success {
		return
	}
	c.CPUTime.Observe(r.CPUTime.Seconds())
	c.RealTime.Observe(r.RealTime.Seconds())
	c.Memory.Observe(float64(r.Memory))
	if r.Signal != 0 {
		c.Signalled.WithLabelValues(signalName(r.Signal)).Inc()
	}
}

// WriteTextfile writes the metrics in the text exposition format, e.g.
// for the node exporter textfile collector
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Registry)
}
