package viewport

import (
	"math"
	"time"
)

// TickInterval is the animation frame period.
const TickInterval = 30 * time.Millisecond

// animationDuration is how long a navigation animation runs.
const animationDuration = 600 * time.Millisecond

// Animation advances a viewport toward a target over time.
type Animation interface {
	// Start records the animation start time.
	Start(now time.Time)

	// Tick advances to the given time and reports whether the
	// animation is still running.
	Tick(now time.Time) bool
}

// noAnimation is the idle animation; it finishes immediately.
type noAnimation struct{}

func (noAnimation) Start(time.Time) {}

func (noAnimation) Tick(time.Time) bool { return false }

// linearAnimation drives a progress callback with t running linearly
// from 0 to 1 over the duration. The final frame always lands exactly
// on t=1, so targets are reached regardless of tick jitter.
type linearAnimation struct {
	started time.Time
	animate func(t float64)
}

func (a *linearAnimation) Start(now time.Time) {
	a.started = now
}

func (a *linearAnimation) Tick(now time.Time) bool {
	t := float64(now.Sub(a.started)) / float64(animationDuration)
	if t >= 1 {
		a.animate(1)
		return false
	}
	if t < 0 {
		t = 0
	}
	a.animate(t)
	return true
}

// NewMoveTo animates the focus linearly to the target point, leaving
// zoom alone.
func NewMoveTo(v *Viewport, targetX, targetY float64) Animation {
	srcX, srcY := v.FocusX, v.FocusY
	return &linearAnimation{
		animate: func(t float64) {
			v.FocusX = srcX + (targetX-srcX)*t
			v.FocusY = srcY + (targetY-srcY)*t
		},
	}
}

// NewZoomTo animates the focus to the target while bending the zoom
// through a quadratic blend. When the target is far away relative to
// the visible extent, the midpoint zooms out far enough to show both
// endpoints, which keeps long jumps legible.
func NewZoomTo(v *Viewport, targetX, targetY float64) Animation {
	srcX, srcY := v.FocusX, v.FocusY
	srcZoom := v.Zoom
	targetZoom := srcZoom

	extraZoom := 0.0
	distance := math.Hypot(srcX-targetX, srcY-targetY)
	if distance > 0 {
		visible := math.Min(v.Width, v.Height) / v.Zoom * 0.9
		middleZoom := 0.5 * (srcZoom + targetZoom)
		extraZoom = math.Min(0, 4*(visible/distance-middleZoom))
	}

	return &linearAnimation{
		animate: func(t float64) {
			v.Zoom = targetZoom*t + extraZoom*t*(1-t) + srcZoom*(1-t)
			v.FocusX = srcX + (targetX-srcX)*t
			v.FocusY = srcY + (targetY-srcY)*t
		},
	}
}
