package resources

import "github.com/prometheus/client_golang/prometheus"

var (
	assetsSettledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hologram",
			Subsystem: "assets",
			Name:      "settled_total",
			Help:      "Manifest entries settled, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	assetLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hologram",
			Subsystem: "assets",
			Name:      "load_seconds",
			Help:      "Time from dispatch to settlement of one manifest entry",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"kind"},
	)

	assetsProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hologram",
			Subsystem: "assets",
			Name:      "progress_ratio",
			Help:      "Settled fraction of the most recently started manifest",
		},
	)
)

func init() {
	prometheus.MustRegister(assetsSettledTotal, assetLoadDuration, assetsProgress)
}

func observeSettle(kind Kind, failed bool, seconds, progress float64) {
	outcome := "loaded"
	if failed {
		outcome = "failed"
	}
	assetsSettledTotal.WithLabelValues(string(kind), outcome).Inc()
	assetLoadDuration.WithLabelValues(string(kind)).Observe(seconds)
	assetsProgress.Set(progress)
}
