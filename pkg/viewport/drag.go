package viewport

import (
	"math"
	"time"

	"github.com/byhongda/xdot/pkg/scene"
)

// Button identifies a pointer button.
type Button int

// Pointer buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Click tolerances: a press/release pair this close in space and time
// is a click rather than a degenerate drag.
const (
	clickFuzz = 4.0
	clickTime = time.Second
)

// dragZoomRate is the per-pixel zoom factor of a zoom drag.
const dragZoomRate = 1.005

type dragKind int

const (
	dragNone dragKind = iota
	dragPan
	dragZoom
	dragZoomArea
)

// Controller interprets pointer and keyboard input against a viewport
// and a loaded scene: press/drag/release gestures, hover highlighting,
// click hit-testing and the navigation animations clicks trigger.
//
// It is not safe for concurrent use; drive it from one event loop.
type Controller struct {
	View  *Viewport
	graph *scene.Graph

	drag           dragKind
	pressed        Button
	pressX, pressY float64
	prevX, prevY   float64
	pressedAt      time.Time

	highlight scene.HandleSet
	hoverURL  string
	anim      Animation

	now func() time.Time
}

// NewController creates a controller over the viewport with an empty
// scene.
func NewController(v *Viewport) *Controller {
	return &Controller{
		View:  v,
		graph: scene.NewGraph(),
		anim:  noAnimation{},
		now:   time.Now,
	}
}

// SetGraph swaps in a new scene, fits it to the window and drops any
// highlight or running animation from the old one.
func (c *Controller) SetGraph(g *scene.Graph) {
	c.graph = g
	c.highlight = nil
	c.hoverURL = ""
	c.anim = noAnimation{}
	c.drag = dragNone
	c.View.ZoomToFit(g.Width, g.Height)
}

// Graph returns the current scene.
func (c *Controller) Graph() *scene.Graph {
	return c.graph
}

// Highlight returns the handles to draw highlighted this frame.
func (c *Controller) Highlight() scene.HandleSet {
	return c.highlight
}

// HoverURL returns the URL under the pointer, or "" when the pointer is
// not over a link.
func (c *Controller) HoverURL() string {
	return c.hoverURL
}

// Press starts a drag gesture. Plain left or middle press pans, ctrl
// turns the drag into a zoom, shift into a rubber-band area zoom. Any
// press cancels a running animation.
func (c *Controller) Press(b Button, ctrl, shift bool, x, y float64) {
	c.anim = noAnimation{}
	c.pressed = b
	c.hoverURL = ""
	c.pressX, c.pressY = x, y
	c.prevX, c.prevY = x, y
	c.pressedAt = c.now()

	if b != ButtonLeft && b != ButtonMiddle {
		c.drag = dragNone
		return
	}
	switch {
	case ctrl:
		c.drag = dragZoom
	case shift:
		c.drag = dragZoomArea
	default:
		c.drag = dragPan
	}
}

// Motion advances the active drag, or updates the hover highlight when
// no drag is active.
func (c *Controller) Motion(x, y float64) {
	dx := x - c.prevX
	dy := y - c.prevY
	c.prevX, c.prevY = x, y

	switch c.drag {
	case dragPan:
		c.View.FocusX -= dx / c.View.Zoom
		c.View.FocusY -= dy / c.View.Zoom
	case dragZoom:
		// Dragging left or up zooms in.
		c.View.Zoom *= math.Pow(dragZoomRate, -(dx + dy))
	case dragZoomArea:
		// The band corner tracks prevX/prevY; nothing else moves until
		// release.
	default:
		gx, gy := c.View.ScreenToGraph(x, y)
		c.hoverURL = ""
		if u := c.graph.URLAt(gx, gy); u != nil {
			c.highlight = u.Highlight
			c.hoverURL = u.URL
		} else if j := c.graph.JumpAt(gx, gy); j != nil {
			c.highlight = j.Highlight
		} else {
			c.highlight = nil
		}
	}
}

// Release ends the gesture. An area drag zooms to the banded region. A
// release close enough to the press is a click: a URL hit is returned
// to the caller, otherwise a jump hit starts a zoom animation to the
// neighbor with the travelled elements highlighted.
func (c *Controller) Release(x, y float64) *scene.Url {
	drag := c.drag
	c.drag = dragNone

	if drag == dragZoomArea {
		gx1, gy1 := c.View.ScreenToGraph(c.pressX, c.pressY)
		gx2, gy2 := c.View.ScreenToGraph(x, y)
		c.View.ZoomToArea(gx1, gy1, gx2, gy2)
		return nil
	}

	// Only the primary button clicks through to URL and jump targets.
	if c.pressed != ButtonLeft {
		return nil
	}
	if c.now().Sub(c.pressedAt) >= clickTime ||
		math.Hypot(x-c.pressX, y-c.pressY) >= clickFuzz {
		return nil
	}

	gx, gy := c.View.ScreenToGraph(x, y)
	if u := c.graph.URLAt(gx, gy); u != nil {
		c.highlight = u.Highlight
		return u
	}
	if j := c.graph.JumpAt(gx, gy); j != nil {
		c.highlight = j.Highlight
		c.startAnimation(NewZoomTo(c.View, j.X, j.Y))
	}
	return nil
}

// Abort cancels any gesture in progress without acting on it.
func (c *Controller) Abort() {
	c.drag = dragNone
}

// RubberBand returns the area-zoom rectangle in screen coordinates
// while an area drag is active.
func (c *Controller) RubberBand() (x1, y1, x2, y2 float64, ok bool) {
	if c.drag != dragZoomArea {
		return 0, 0, 0, 0, false
	}
	return c.pressX, c.pressY, c.prevX, c.prevY, true
}

// Animating reports whether an animation is running and needs ticks.
func (c *Controller) Animating() bool {
	_, idle := c.anim.(noAnimation)
	return !idle
}

// Tick advances the running animation and reports whether more ticks
// are needed.
func (c *Controller) Tick(now time.Time) bool {
	if !c.anim.Tick(now) {
		c.anim = noAnimation{}
		return false
	}
	return true
}

// KeyPan moves the view by keyboard steps and cancels any animation.
func (c *Controller) KeyPan(dx, dy int) {
	c.anim = noAnimation{}
	c.View.Pan(dx, dy)
}

// KeyZoom zooms by keyboard steps and cancels any animation.
func (c *Controller) KeyZoom(dir int) {
	c.anim = noAnimation{}
	c.View.ZoomStep(dir)
}

// ZoomFit fits the whole scene in the window.
func (c *Controller) ZoomFit() {
	c.anim = noAnimation{}
	c.View.ZoomToFit(c.graph.Width, c.graph.Height)
}

// Zoom100 resets to 1:1 zoom.
func (c *Controller) Zoom100() {
	c.anim = noAnimation{}
	c.View.Zoom = 1
}

func (c *Controller) startAnimation(a Animation) {
	a.Start(c.now())
	c.anim = a
}
