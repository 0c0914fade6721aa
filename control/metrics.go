// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus-backed metrics for ring buffers.
// Each buffer reports through an api.RingObserver keyed by name.

package control

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/momentics/hioload-ring/api"
)

// MetricsRegistry owns the Prometheus collectors for every observed buffer.
type MetricsRegistry struct {
	registry *prometheus.Registry

	size       *prometheus.GaugeVec
	capacity   *prometheus.GaugeVec
	operations *prometheus.CounterVec
	resizes    *prometheus.CounterVec
	failures   *prometheus.CounterVec

	mu      sync.RWMutex
	last    map[string]bufferState
	updated time.Time
}

type bufferState struct {
	size     int
	capacity int
	grows    int
	shrinks  int
}

// NewMetricsRegistry creates a registry with all ring collectors registered
// under namespace.
func NewMetricsRegistry(namespace string) *MetricsRegistry {
	mr := &MetricsRegistry{
		registry: prometheus.NewRegistry(),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_buffer",
			Name:      "size",
			Help:      "Number of pending items in the buffer",
		}, []string{"buffer"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ring_buffer",
			Name:      "capacity",
			Help:      "Current backing capacity of the buffer",
		}, []string{"buffer"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring_buffer",
			Name:      "operations_total",
			Help:      "Successful reads and writes",
		}, []string{"buffer", "op"}),
		resizes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring_buffer",
			Name:      "resizes_total",
			Help:      "Backing storage reallocations by direction (grow, shrink)",
		}, []string{"buffer", "direction"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ring_buffer",
			Name:      "errors_total",
			Help:      "Failed operations by error code",
		}, []string{"buffer", "kind"}),
		last: make(map[string]bufferState),
	}
	mr.registry.MustRegister(mr.size, mr.capacity, mr.operations, mr.resizes, mr.failures)
	return mr
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (mr *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return mr.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (mr *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(mr.registry, promhttp.HandlerOpts{})
}

// Observer returns the observer that reports events for the named buffer.
func (mr *MetricsRegistry) Observer(name string) api.RingObserver {
	return &bufferObserver{
		mr:       mr,
		name:     name,
		size:     mr.size.WithLabelValues(name),
		capacity: mr.capacity.WithLabelValues(name),
		writes:   mr.operations.WithLabelValues(name, "write"),
		reads:    mr.operations.WithLabelValues(name, "read"),
		grows:    mr.resizes.WithLabelValues(name, "grow"),
		shrinks:  mr.resizes.WithLabelValues(name, "shrink"),
	}
}

// GetSnapshot returns the latest values per buffer as "<buffer>.<field>".
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.last)*4+1)
	for name, st := range mr.last {
		out[fmt.Sprintf("%s.size", name)] = st.size
		out[fmt.Sprintf("%s.capacity", name)] = st.capacity
		out[fmt.Sprintf("%s.grows", name)] = st.grows
		out[fmt.Sprintf("%s.shrinks", name)] = st.shrinks
	}
	if !mr.updated.IsZero() {
		out["updated"] = mr.updated
	}
	return out
}

func (mr *MetricsRegistry) update(name string, fn func(*bufferState)) {
	mr.mu.Lock()
	st := mr.last[name]
	fn(&st)
	mr.last[name] = st
	mr.updated = time.Now()
	mr.mu.Unlock()
}

type bufferObserver struct {
	mr       *MetricsRegistry
	name     string
	size     prometheus.Gauge
	capacity prometheus.Gauge
	writes   prometheus.Counter
	reads    prometheus.Counter
	grows    prometheus.Counter
	shrinks  prometheus.Counter
}

func (o *bufferObserver) OnWrite(size, capacity int) {
	o.writes.Inc()
	o.level(size, capacity)
}

func (o *bufferObserver) OnRead(size, capacity int) {
	o.reads.Inc()
	o.level(size, capacity)
}

func (o *bufferObserver) OnResize(from, to int) {
	grow := to > from
	if grow {
		o.grows.Inc()
	} else {
		o.shrinks.Inc()
	}
	o.capacity.Set(float64(to))
	o.mr.update(o.name, func(st *bufferState) {
		st.capacity = to
		if grow {
			st.grows++
		} else {
			st.shrinks++
		}
	})
}

func (o *bufferObserver) OnError(err error) {
	o.mr.failures.WithLabelValues(o.name, api.CodeOf(err).String()).Inc()
}

func (o *bufferObserver) level(size, capacity int) {
	o.size.Set(float64(size))
	o.capacity.Set(float64(capacity))
	o.mr.update(o.name, func(st *bufferState) {
		st.size = size
		st.capacity = capacity
	})
}
