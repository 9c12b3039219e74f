package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/byhongda/xdot/pkg/scene"
	"github.com/byhongda/xdot/pkg/xdot"
)

// testController builds a controller over a 100x100 window at 1:1 zoom
// focused on the origin, with an injectable clock.
func testController(g *scene.Graph) (*Controller, *time.Time) {
	v := New()
	v.Resize(100, 100)
	c := NewController(v)
	if g != nil {
		c.graph = g
	}
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	return c, &now
}

// linkedGraph is one URL node at the origin plus an edge running from it
// to a far node.
func linkedGraph() *scene.Graph {
	a := scene.NewNode(0, 0, 0, 20, 20, nil, "https://example.com")
	b := scene.NewNode(1, 500, 0, 20, 20, nil, "")
	e := &scene.Edge{
		Handle: 2,
		Src:    a,
		Dst:    b,
		Points: []xdot.Point{{X: 30, Y: 0}, {X: 470, Y: 0}},
	}
	g := scene.NewGraph()
	g.Width, g.Height = 600, 100
	g.Nodes = []*scene.Node{a, b}
	g.Edges = []*scene.Edge{e}
	return g
}

func TestControllerPanDrag(t *testing.T) {
	c, _ := testController(nil)
	c.View.Zoom = 2
	c.View.FocusX, c.View.FocusY = 10, 10

	c.Press(ButtonLeft, false, false, 50, 50)
	c.Motion(60, 55)
	c.Release(60, 55)

	// The graph follows the pointer: focus moves against the drag,
	// scaled by zoom.
	if c.View.FocusX != 5 || c.View.FocusY != 7.5 {
		t.Errorf("focus = (%v, %v), want (5, 7.5)", c.View.FocusX, c.View.FocusY)
	}
}

func TestControllerZoomDrag(t *testing.T) {
	t.Run("LeftUpZoomsIn", func(t *testing.T) {
		c, _ := testController(nil)

		c.Press(ButtonLeft, true, false, 50, 50)
		c.Motion(44, 46)

		want := math.Pow(dragZoomRate, 10)
		if math.Abs(c.View.Zoom-want) > 1e-9 {
			t.Errorf("zoom = %v, want %v", c.View.Zoom, want)
		}
	})

	t.Run("RightDownZoomsOut", func(t *testing.T) {
		c, _ := testController(nil)

		c.Press(ButtonLeft, true, false, 50, 50)
		c.Motion(56, 54)

		want := math.Pow(dragZoomRate, -10)
		if math.Abs(c.View.Zoom-want) > 1e-9 {
			t.Errorf("zoom = %v, want %v", c.View.Zoom, want)
		}
	})
}

func TestControllerAreaDrag(t *testing.T) {
	c, _ := testController(nil)

	c.Press(ButtonLeft, false, true, 10, 10)
	c.Motion(60, 35)

	x1, y1, x2, y2, ok := c.RubberBand()
	if !ok {
		t.Fatal("rubber band inactive during area drag")
	}
	if x1 != 10 || y1 != 10 || x2 != 60 || y2 != 35 {
		t.Errorf("band = (%v,%v)-(%v,%v)", x1, y1, x2, y2)
	}

	c.Release(60, 35)
	if _, _, _, _, ok := c.RubberBand(); ok {
		t.Error("rubber band survives release")
	}
	// Screen (10,10)-(60,35) is graph (-40,-40)-(10,-15): a 50x25 area
	// in a 100x100 window zooms to 2.
	if c.View.Zoom != 2 {
		t.Errorf("zoom = %v, want 2", c.View.Zoom)
	}
	if c.View.FocusX != -15 || c.View.FocusY != -27.5 {
		t.Errorf("focus = (%v, %v), want (-15, -27.5)", c.View.FocusX, c.View.FocusY)
	}
}

func TestControllerClickURL(t *testing.T) {
	c, now := testController(linkedGraph())

	// The URL node sits at the window center.
	c.Press(ButtonLeft, false, false, 50, 50)
	*now = now.Add(100 * time.Millisecond)
	u := c.Release(51, 51)

	if u == nil || u.URL != "https://example.com" {
		t.Fatalf("Release = %+v, want URL hit", u)
	}
	if !c.Highlight().Has(0) {
		t.Error("clicked node not highlighted")
	}
}

func TestControllerClickTolerances(t *testing.T) {
	t.Run("SlowPressIsNotAClick", func(t *testing.T) {
		c, now := testController(linkedGraph())
		c.Press(ButtonLeft, false, false, 50, 50)
		*now = now.Add(2 * time.Second)
		if u := c.Release(50, 50); u != nil {
			t.Error("slow press treated as click")
		}
	})

	t.Run("FarReleaseIsNotAClick", func(t *testing.T) {
		c, _ := testController(linkedGraph())
		c.Press(ButtonLeft, false, false, 50, 50)
		c.Motion(58, 50)
		if u := c.Release(58, 50); u != nil {
			t.Error("8px drag treated as click")
		}
	})

	t.Run("SmallJitterIsStillAClick", func(t *testing.T) {
		c, now := testController(linkedGraph())
		c.Press(ButtonLeft, false, false, 50, 50)
		*now = now.Add(50 * time.Millisecond)
		if u := c.Release(52, 51); u == nil {
			t.Error("sub-fuzz release not treated as click")
		}
	})
}

func TestControllerClickJumpStartsAnimation(t *testing.T) {
	c, now := testController(linkedGraph())

	// The edge tail point (30,0) is at screen (80,50).
	c.Press(ButtonLeft, false, false, 80, 50)
	*now = now.Add(50 * time.Millisecond)
	if u := c.Release(80, 50); u != nil {
		t.Fatalf("edge click returned URL %+v", u)
	}

	if !c.Animating() {
		t.Fatal("jump click did not start an animation")
	}
	hl := c.Highlight()
	if !hl.Has(2) || !hl.Has(1) {
		t.Errorf("highlight = %v, want edge and destination", hl)
	}

	// Run the animation out; the view lands on the destination node.
	*now = now.Add(animationDuration + TickInterval)
	if c.Tick(*now) {
		t.Error("animation still running after its duration")
	}
	if c.View.FocusX != 500 || c.View.FocusY != 0 {
		t.Errorf("focus = (%v, %v), want destination (500, 0)", c.View.FocusX, c.View.FocusY)
	}
	if c.Animating() {
		t.Error("controller still animating after final tick")
	}
}

func TestControllerPressCancelsAnimation(t *testing.T) {
	c, now := testController(linkedGraph())
	c.Press(ButtonLeft, false, false, 80, 50)
	*now = now.Add(50 * time.Millisecond)
	c.Release(80, 50)
	if !c.Animating() {
		t.Fatal("no animation to cancel")
	}

	c.Press(ButtonLeft, false, false, 10, 10)
	if c.Animating() {
		t.Error("press did not cancel animation")
	}
}

func TestControllerHoverHighlight(t *testing.T) {
	c, _ := testController(linkedGraph())

	c.Motion(50, 50)
	if !c.Highlight().Has(0) {
		t.Error("hover over URL node did not highlight it")
	}
	if c.HoverURL() != "https://example.com" {
		t.Errorf("HoverURL = %q, want the node's URL", c.HoverURL())
	}

	c.Motion(5, 5)
	if len(c.Highlight()) != 0 {
		t.Error("highlight not cleared off the node")
	}
	if c.HoverURL() != "" {
		t.Errorf("HoverURL = %q after leaving the node", c.HoverURL())
	}
}

func TestControllerHoverJumpHighlight(t *testing.T) {
	c, _ := testController(linkedGraph())

	// The edge tail point (30,0) is at screen (80,50); hovering it
	// highlights the edge and the node it leads to.
	c.Motion(80, 50)
	hl := c.Highlight()
	if !hl.Has(2) || !hl.Has(1) {
		t.Errorf("highlight = %v, want edge and destination", hl)
	}
	if c.HoverURL() != "" {
		t.Errorf("HoverURL = %q over a plain edge", c.HoverURL())
	}

	c.Motion(5, 5)
	if len(c.Highlight()) != 0 {
		t.Error("highlight not cleared off the edge")
	}
}

func TestControllerClickRequiresPrimaryButton(t *testing.T) {
	t.Run("RightClickOnURL", func(t *testing.T) {
		c, now := testController(linkedGraph())
		c.Press(ButtonRight, false, false, 50, 50)
		*now = now.Add(50 * time.Millisecond)
		if u := c.Release(50, 50); u != nil {
			t.Errorf("right click returned URL %+v", u)
		}
	})

	t.Run("MiddleClickOnJump", func(t *testing.T) {
		c, now := testController(linkedGraph())
		c.Press(ButtonMiddle, false, false, 80, 50)
		*now = now.Add(50 * time.Millisecond)
		if u := c.Release(80, 50); u != nil {
			t.Errorf("middle click returned URL %+v", u)
		}
		if c.Animating() {
			t.Error("middle click started a jump animation")
		}
	})
}

func TestControllerRightPressIsInert(t *testing.T) {
	c, _ := testController(nil)
	c.Press(ButtonRight, false, false, 50, 50)
	c.Motion(80, 80)
	if c.View.FocusX != 0 || c.View.Zoom != 1 {
		t.Error("right-button drag moved the view")
	}
}

func TestControllerSetGraphResets(t *testing.T) {
	c, now := testController(linkedGraph())
	c.Press(ButtonLeft, false, false, 80, 50)
	*now = now.Add(50 * time.Millisecond)
	c.Release(80, 50)

	g := scene.NewGraph()
	g.Width, g.Height = 200, 100
	c.SetGraph(g)

	if c.Animating() {
		t.Error("animation survived graph swap")
	}
	if len(c.Highlight()) != 0 {
		t.Error("highlight survived graph swap")
	}
	if c.View.FocusX != 100 || c.View.FocusY != 50 {
		t.Errorf("focus = (%v, %v), want new graph center", c.View.FocusX, c.View.FocusY)
	}
}
