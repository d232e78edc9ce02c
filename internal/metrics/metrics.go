// Package metrics provides optional, non-global Prometheus collectors for
// a container instance. Nothing in this module registers against the
// default registry automatically — a caller opts in by constructing a
// Collector and registering it with whatever registry it uses, keeping
// instrumentation entirely out of the hot path unless asked for.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collector tracks the size and capacity of a single container instance,
// polled on demand through the registered gauges' collect callbacks
// rather than updated inline on every operation.
type Collector struct {
	len      prometheus.GaugeFunc
	capacity prometheus.GaugeFunc
}

// New constructs a Collector for a container identified by name, reading
// its current length and capacity through the supplied callbacks.
func New(namespace, name string, lenFn, capFn func() float64) *Collector {
	return &Collector{
		len: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name + "_len",
			Help:      "Number of live entries in the container.",
		}, lenFn),
		capacity: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name + "_capacity",
			Help:      "Current backing capacity of the container.",
		}, capFn),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.len.Describe(ch)
	c.capacity.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.len.Collect(ch)
	c.capacity.Collect(ch)
}
