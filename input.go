package hologram

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone = 4.0 // pixels

	// orbitSpeed is the orbit angle in radians per dragged pixel.
	orbitSpeed = 0.005
	// wheelZoomStep scales the orbit radius per wheel notch.
	wheelZoomStep = 0.1
	// zoomDuration is the zoom animation length in seconds.
	zoomDuration = 0.3
)

// pointerSample is one frame of a single pointer.
type pointerSample struct {
	x, y    float64
	pressed bool
}

type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

type pinchState struct {
	active   bool
	prevDist float64
}

// OrbitControls turns mouse and touch input into camera orbit and zoom. A
// drag orbits the camera around its target, the wheel and a two-finger
// pinch zoom.
type OrbitControls struct {
	// Enabled gates every input. Defaults to true.
	Enabled bool
	// DragDeadZone is the distance in pixels a pointer must travel before
	// a press becomes a drag.
	DragDeadZone float64

	cam         *Camera
	pointer     pointerState
	pinch       pinchState
	touchIDs    []ebiten.TouchID
	injectQueue []syntheticInput
}

// NewOrbitControls creates enabled controls for cam.
func NewOrbitControls(cam *Camera) *OrbitControls {
	return &OrbitControls{Enabled: true, DragDeadZone: defaultDragDeadZone, cam: cam}
}

// Update polls Ebitengine input. Call once per tick from the frame
// goroutine. While injected events are queued, one is applied per call and
// real input is ignored.
func (c *OrbitControls) Update() {
	if !c.Enabled {
		return
	}
	if c.processInjected() {
		return
	}
	c.touchIDs = ebiten.AppendTouchIDs(c.touchIDs[:0])
	switch len(c.touchIDs) {
	case 0:
		c.endPinch()
		mx, my := ebiten.CursorPosition()
		c.handlePointer(pointerSample{
			x:       float64(mx),
			y:       float64(my),
			pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		})
	case 1:
		c.endPinch()
		tx, ty := ebiten.TouchPosition(c.touchIDs[0])
		c.handlePointer(pointerSample{x: float64(tx), y: float64(ty), pressed: true})
	default:
		ax, ay := ebiten.TouchPosition(c.touchIDs[0])
		bx, by := ebiten.TouchPosition(c.touchIDs[1])
		c.handlePointer(pointerSample{})
		c.handlePinch(
			pointerSample{x: float64(ax), y: float64(ay), pressed: true},
			pointerSample{x: float64(bx), y: float64(by), pressed: true},
		)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		c.handleWheel(wy)
	}
}

// handlePointer tracks press, drag and release of the primary pointer.
func (c *OrbitControls) handlePointer(s pointerSample) {
	p := &c.pointer
	switch {
	case s.pressed && !p.down:
		*p = pointerState{down: true, startX: s.x, startY: s.y, lastX: s.x, lastY: s.y}
	case s.pressed && p.down:
		if !p.dragging {
			dx, dy := s.x-p.startX, s.y-p.startY
			if dx*dx+dy*dy < c.DragDeadZone*c.DragDeadZone {
				return
			}
			p.dragging = true
		}
		c.cam.Orbit(-(s.x-p.lastX)*orbitSpeed, -(s.y-p.lastY)*orbitSpeed)
		p.lastX, p.lastY = s.x, s.y
	case !s.pressed && p.down:
		*p = pointerState{}
	}
}

// handleWheel zooms in for positive dy.
func (c *OrbitControls) handleWheel(dy float64) {
	c.cam.ZoomTo(c.cam.Distance()*math.Pow(1-wheelZoomStep, dy), zoomDuration, nil)
}

// handlePinch zooms by the change in distance between two touches.
func (c *OrbitControls) handlePinch(a, b pointerSample) {
	dist := math.Hypot(b.x-a.x, b.y-a.y)
	if !c.pinch.active {
		c.pinch = pinchState{active: true, prevDist: dist}
		return
	}
	if dist > 0 && c.pinch.prevDist > 0 {
		c.cam.ZoomTo(c.cam.Distance()*c.pinch.prevDist/dist, zoomDuration, nil)
	}
	c.pinch.prevDist = dist
}

func (c *OrbitControls) endPinch() {
	c.pinch = pinchState{}
}

// Dragging reports whether the primary pointer is orbiting the camera.
func (c *OrbitControls) Dragging() bool { return c.pointer.dragging }
