package hologram

import (
	"time"
)

// debugLogEvery is the number of frames between timing log lines.
const debugLogEvery = 120

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	frame      uint64
	updateTime time.Duration
	renderTime time.Duration
	layers     int
	segments   int
}

// debugLog logs timing stats every debugLogEvery frames.
func (r *Renderer) debugLog() {
	if !r.debug || r.stats.frame%debugLogEvery != 0 {
		return
	}
	logger.Debug().
		Uint64("frame", r.stats.frame).
		Dur("update", r.stats.updateTime).
		Dur("render", r.stats.renderTime).
		Int("layers", r.stats.layers).
		Int("segments", r.stats.segments).
		Msg("frame stats")
}

// recordUpdate stores how long the frame's update phase took and how many
// wireframe segments it produced.
func (r *Renderer) recordUpdate(d time.Duration, segments int) {
	r.stats.updateTime = d
	r.stats.segments = segments
	frameUpdateSeconds.Observe(d.Seconds())
}
