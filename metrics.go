package hologram

import "github.com/prometheus/client_golang/prometheus"

var (
	framesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hologram",
			Subsystem: "render",
			Name:      "frames_total",
			Help:      "Frames drawn into the render target",
		},
	)

	frameUpdateSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hologram",
			Subsystem: "render",
			Name:      "update_seconds",
			Help:      "Time spent in the per-frame update before rendering",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066},
		},
	)

	worldReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hologram",
			Subsystem: "world",
			Name:      "ready",
			Help:      "1 once world content has been built from loaded assets",
		},
	)
)

func init() {
	prometheus.MustRegister(framesRendered, frameUpdateSeconds, worldReady)
}
