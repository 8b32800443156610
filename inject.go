package hologram

// syntheticInput is a single injected pointer or wheel event, in screen
// coordinates like real mouse input.
type syntheticInput struct {
	pointer pointerSample
	wheel   float64
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update.
func (c *OrbitControls) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticInput{pointer: pointerSample{x: x, y: y, pressed: true}})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (c *OrbitControls) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticInput{pointer: pointerSample{x: x, y: y, pressed: true}})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *OrbitControls) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticInput{pointer: pointerSample{x: x, y: y}})
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames updates; the minimum is 2.
func (c *OrbitControls) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel scroll of dy notches.
func (c *OrbitControls) InjectWheel(dy float64) {
	c.injectQueue = append(c.injectQueue, syntheticInput{wheel: dy})
}

// Injected returns the number of queued synthetic events.
func (c *OrbitControls) Injected() int { return len(c.injectQueue) }

// processInjected pops one queued event and applies it. It reports whether
// an event was consumed, in which case real input is skipped this frame.
func (c *OrbitControls) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.wheel != 0 {
		c.handleWheel(evt.wheel)
		return true
	}
	c.handlePointer(evt.pointer)
	return true
}
