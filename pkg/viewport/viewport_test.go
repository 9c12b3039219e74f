package viewport

import (
	"math"
	"testing"
)

func TestScreenGraphRoundTrip(t *testing.T) {
	v := New()
	v.Resize(800, 600)
	v.Zoom = 2.5
	v.FocusX, v.FocusY = 120, -40

	tests := []struct {
		name   string
		sx, sy float64
	}{
		{"Center", 400, 300},
		{"Origin", 0, 0},
		{"Corner", 800, 600},
		{"Arbitrary", 123, 456},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := v.ScreenToGraph(tt.sx, tt.sy)
			sx, sy := v.GraphToScreen(gx, gy)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Errorf("round trip (%v,%v) -> (%v,%v)", tt.sx, tt.sy, sx, sy)
			}
		})
	}
}

func TestScreenToGraphCenterIsFocus(t *testing.T) {
	v := New()
	v.Resize(200, 100)
	v.Zoom = 3
	v.FocusX, v.FocusY = 42, 17

	gx, gy := v.ScreenToGraph(100, 50)
	if gx != 42 || gy != 17 {
		t.Errorf("center maps to (%v, %v), want focus (42, 17)", gx, gy)
	}
}

func TestZoomToFit(t *testing.T) {
	v := New()
	v.Resize(124, 424)
	v.ZoomToFit(100, 200)

	// Width is the constraint: (124 - 2*12) / 100 = 1.
	if v.Zoom != 1 {
		t.Errorf("zoom = %v, want 1", v.Zoom)
	}
	if v.FocusX != 50 || v.FocusY != 100 {
		t.Errorf("focus = (%v, %v), want graph center (50, 100)", v.FocusX, v.FocusY)
	}
}

func TestZoomToFitDegenerate(t *testing.T) {
	v := New()
	v.Resize(10, 10) // smaller than the margin
	v.ZoomToFit(100, 100)
	if v.Zoom != 1 {
		t.Errorf("zoom changed on degenerate window: %v", v.Zoom)
	}

	v.Resize(800, 600)
	v.ZoomToFit(0, 0)
	if v.Zoom != 1 {
		t.Errorf("zoom changed on empty extent: %v", v.Zoom)
	}
}

func TestZoomToArea(t *testing.T) {
	v := New()
	v.Resize(100, 100)
	v.ZoomToArea(0, 0, 50, 25)

	if v.Zoom != 2 {
		t.Errorf("zoom = %v, want 2", v.Zoom)
	}
	if v.FocusX != 25 || v.FocusY != 12.5 {
		t.Errorf("focus = (%v, %v), want area center (25, 12.5)", v.FocusX, v.FocusY)
	}
}

func TestZoomToAreaEmptyRect(t *testing.T) {
	v := New()
	v.Resize(100, 100)
	v.FocusX = 7
	v.ZoomToArea(10, 10, 10, 40)
	if v.Zoom != 1 || v.FocusX != 7 {
		t.Error("degenerate area should leave the view alone")
	}
}

func TestZoomStep(t *testing.T) {
	v := New()
	v.ZoomStep(2)
	want := ZoomIncrement * ZoomIncrement
	if math.Abs(v.Zoom-want) > 1e-9 {
		t.Errorf("zoom = %v, want %v", v.Zoom, want)
	}
	v.ZoomStep(-2)
	if math.Abs(v.Zoom-1) > 1e-9 {
		t.Errorf("zoom = %v, want 1 after symmetric steps", v.Zoom)
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	v := New()
	v.Zoom = 2
	v.Pan(1, -1)
	if v.FocusX != PanIncrement/2 || v.FocusY != -PanIncrement/2 {
		t.Errorf("focus = (%v, %v)", v.FocusX, v.FocusY)
	}

	// Zoomed out, the same step covers more graph distance.
	v2 := New()
	v2.Zoom = 0.5
	v2.Pan(1, 0)
	if v2.FocusX != PanIncrement*2 {
		t.Errorf("focus = %v, want %v", v2.FocusX, PanIncrement*2)
	}
}
