package hologram

import (
	"math"
	"testing"
)

func TestOrbitDragDeadZone(t *testing.T) {
	cam := NewCamera(100, 100)
	c := NewOrbitControls(cam)

	c.handlePointer(pointerSample{x: 10, y: 10, pressed: true})
	c.handlePointer(pointerSample{x: 12, y: 11, pressed: true})
	if c.Dragging() {
		t.Fatal("dragging inside the dead zone")
	}
	if cam.velAzimuth != 0 || cam.velPolar != 0 {
		t.Errorf("velocity = (%v, %v) inside the dead zone, want 0", cam.velAzimuth, cam.velPolar)
	}

	c.handlePointer(pointerSample{x: 30, y: 10, pressed: true})
	if !c.Dragging() {
		t.Fatal("not dragging past the dead zone")
	}
	want := -20 * orbitSpeed
	if math.Abs(cam.velAzimuth-want) > 1e-12 {
		t.Errorf("velAzimuth = %v, want %v", cam.velAzimuth, want)
	}
	if cam.velPolar != 0 {
		t.Errorf("velPolar = %v, want 0", cam.velPolar)
	}
}

func TestOrbitRelease(t *testing.T) {
	c := NewOrbitControls(NewCamera(100, 100))
	c.handlePointer(pointerSample{x: 0, y: 0, pressed: true})
	c.handlePointer(pointerSample{x: 50, y: 0, pressed: true})
	c.handlePointer(pointerSample{x: 50, y: 0})
	if c.Dragging() {
		t.Error("still dragging after release")
	}
	if c.pointer.down {
		t.Error("pointer still down after release")
	}
}

func TestOrbitDragIsIncremental(t *testing.T) {
	cam := NewCamera(100, 100)
	c := NewOrbitControls(cam)
	c.handlePointer(pointerSample{x: 0, y: 0, pressed: true})
	c.handlePointer(pointerSample{x: 0, y: 10, pressed: true})
	c.handlePointer(pointerSample{x: 0, y: 15, pressed: true})
	want := -15 * orbitSpeed
	if math.Abs(cam.velPolar-want) > 1e-12 {
		t.Errorf("velPolar = %v, want %v", cam.velPolar, want)
	}
}

func TestWheelZoom(t *testing.T) {
	cam := NewCamera(100, 100)
	start := cam.Distance()
	c := NewOrbitControls(cam)
	c.handleWheel(1)
	cam.Update(zoomDuration)
	if want := start * (1 - wheelZoomStep); math.Abs(cam.Distance()-want) > 1e-4 {
		t.Errorf("Distance = %v, want %v", cam.Distance(), want)
	}
}

func TestPinchZoom(t *testing.T) {
	cam := NewCamera(100, 100)
	start := cam.Distance()
	c := NewOrbitControls(cam)

	c.handlePinch(pointerSample{x: 0, y: 0}, pointerSample{x: 100, y: 0})
	if !c.pinch.active {
		t.Fatal("pinch not started")
	}
	if cam.zoomTween != nil {
		t.Fatal("first pinch sample zoomed")
	}
	c.handlePinch(pointerSample{x: 0, y: 0}, pointerSample{x: 200, y: 0})
	cam.Update(zoomDuration)
	if want := start / 2; math.Abs(cam.Distance()-want) > 1e-4 {
		t.Errorf("Distance = %v, want %v", cam.Distance(), want)
	}

	c.endPinch()
	if c.pinch.active {
		t.Error("pinch still active after end")
	}
}
