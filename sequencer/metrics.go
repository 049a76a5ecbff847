// This file is part of Gfxbench.
//
// Gfxbench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gfxbench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gfxbench.  If not, see <https://www.gnu.org/licenses/>.

package sequencer

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jetsetilly/gfxbench/result"
)

const namespace = "gfxbench"

// Metrics of the coordinator. Each Metrics instance has its own registry.
type Metrics struct {
	registry *prometheus.Registry

	connections prometheus.Gauge
	started     prometheus.Counter
	results     *prometheus.CounterVec
	disconnects prometheus.Counter
	unknown     prometheus.Counter
	invalid     prometheus.Counter
	fps         prometheus.Histogram
	stutters    prometheus.Histogram
}

// NewMetrics is the preferred method of initialisation for the Metrics type.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "connections",
			Help:      "Number of open session connections",
		}),
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "tests_started_total",
			Help:      "Number of sessions that have announced themselves",
		}),
		results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "results_total",
			Help:      "Number of results reported by verdict",
		}, []string{"result"}),
		disconnects: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "disconnects_total",
			Help:      "Number of sessions that disconnected before reporting a result",
		}),
		unknown: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "unknown_tests_total",
			Help:      "Number of results reported for tests that are not in the sequence",
		}),
		invalid: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coordinator",
			Name:      "invalid_messages_total",
			Help:      "Number of messages that could not be handled",
		}),
		fps: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "avg_fps",
			Help:      "Average frame rate of completed sessions",
			Buckets:   []float64{15, 30, 45, 60, 72, 90, 120, 144},
		}),
		stutters: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "benchmark",
			Name:      "stutter_events",
			Help:      "Number of stutter events in completed sessions",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

// Handler returns the HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry of the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// record a result
func (m *Metrics) observe(res result.BenchmarkResult) {
	m.results.WithLabelValues(string(res.Result)).Inc()
	if res.Metrics != nil {
		m.fps.Observe(res.AvgFps)
		m.stutters.Observe(float64(res.NumStutterEvents))
	}
}
