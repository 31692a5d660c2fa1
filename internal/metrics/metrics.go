// Package metrics provides Prometheus metrics for the pattern executor.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	cyclesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rgbled",
		Subsystem: "pattern",
		Name:      "cycles_rendered_total",
		Help:      "Render cycles completed, by effect kind",
	}, []string{"kind"})

	patternSwaps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rgbled",
		Subsystem: "pattern",
		Name:      "swaps_total",
		Help:      "Patterns assigned while the executor was alive",
	})

	faults = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rgbled",
		Subsystem: "pattern",
		Name:      "faults_total",
		Help:      "Render tasks terminated by a hardware error",
	})

	running = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rgbled",
		Subsystem: "pattern",
		Name:      "running",
		Help:      "Number of executors currently rendering",
	})
)

// CycleRendered counts one completed render cycle of the given effect kind.
func CycleRendered(kind string) {
	cyclesRendered.WithLabelValues(kind).Inc()
}

func PatternSwapped() {
	patternSwaps.Inc()
}

func Faulted() {
	faults.Inc()
}

func ExecutorStarted() {
	running.Inc()
}

func ExecutorExited() {
	running.Dec()
}

// Handler serves all registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
