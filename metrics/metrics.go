// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports bodyio pipe activity as Prometheus metrics.
//
//	c := metrics.New("myapp")
//	prometheus.MustRegister(c)
//	w, r := bodyio.New(16, bodyio.WithObserver(c))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/bodyio"
)

var (
	_ bodyio.Observer      = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// Collector counts chunks, bytes, backpressure stalls and closes across
// every pipe it observes. One Collector may observe many pipes.
type Collector struct {
	chunks       *prometheus.CounterVec
	bytes        *prometheus.CounterVec
	backpressure prometheus.Counter
	closed       *prometheus.CounterVec
}

// New returns a Collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	return &Collector{
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bodyio",
			Name:      "chunks_total",
			Help:      "Chunks moved through body pipes, by direction.",
		}, []string{"direction"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bodyio",
			Name:      "bytes_total",
			Help:      "Payload bytes moved through body pipes, by direction.",
		}, []string{"direction"}),
		backpressure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bodyio",
			Name:      "backpressure_total",
			Help:      "Writes that found their body pipe full.",
		}),
		closed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bodyio",
			Name:      "closed_total",
			Help:      "Body pipe ends closed, by side.",
		}, []string{"side"}),
	}
}

// ChunkWritten implements bodyio.Observer.
func (c *Collector) ChunkWritten(_ bodyio.Serial, n int) {
	c.chunks.WithLabelValues(bodyio.WriteSide.String()).Inc()
	c.bytes.WithLabelValues(bodyio.WriteSide.String()).Add(float64(n))
}

// ChunkRead implements bodyio.Observer.
func (c *Collector) ChunkRead(_ bodyio.Serial, n int) {
	c.chunks.WithLabelValues(bodyio.ReadSide.String()).Inc()
	c.bytes.WithLabelValues(bodyio.ReadSide.String()).Add(float64(n))
}

// Backpressure implements bodyio.Observer.
func (c *Collector) Backpressure(bodyio.Serial) {
	c.backpressure.Inc()
}

// Closed implements bodyio.Observer.
func (c *Collector) Closed(_ bodyio.Serial, side bodyio.Side) {
	c.closed.WithLabelValues(side.String()).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.chunks.Describe(ch)
	c.bytes.Describe(ch)
	c.backpressure.Describe(ch)
	c.closed.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.chunks.Collect(ch)
	c.bytes.Collect(ch)
	c.backpressure.Collect(ch)
	c.closed.Collect(ch)
}
