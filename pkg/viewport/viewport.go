// Package viewport maps between window pixels and graph coordinates and
// drives the pan, zoom and navigation animations over a loaded scene.
package viewport

// Navigation tuning constants.
const (
	// ZoomToFitMargin is the pixel border kept around a fitted graph.
	ZoomToFitMargin = 12

	// ZoomIncrement is the factor for one keyboard or wheel zoom step.
	ZoomIncrement = 1.25

	// PanIncrement is how far one keyboard pan step moves, in pixels.
	PanIncrement = 100.0
)

// Viewport is a window onto the graph plane: the graph point under the
// window center, the zoom factor, and the window size in pixels. Larger
// zoom means closer in.
type Viewport struct {
	FocusX, FocusY float64
	Zoom           float64
	Width, Height  float64
}

// New returns a viewport at 1:1 zoom looking at the origin.
func New() *Viewport {
	return &Viewport{Zoom: 1}
}

// Resize sets the window size in pixels.
func (v *Viewport) Resize(w, h float64) {
	v.Width = w
	v.Height = h
}

// ScreenToGraph maps a window pixel to the graph point under it.
func (v *Viewport) ScreenToGraph(sx, sy float64) (float64, float64) {
	return (sx-v.Width/2)/v.Zoom + v.FocusX,
		(sy-v.Height/2)/v.Zoom + v.FocusY
}

// GraphToScreen maps a graph point to the window pixel showing it.
func (v *Viewport) GraphToScreen(gx, gy float64) (float64, float64) {
	return (gx-v.FocusX)*v.Zoom + v.Width/2,
		(gy-v.FocusY)*v.Zoom + v.Height/2
}

// ZoomToFit centers the given graph extent and picks the largest zoom
// that shows all of it with a small margin.
func (v *Viewport) ZoomToFit(graphW, graphH float64) {
	availW := v.Width - 2*ZoomToFitMargin
	availH := v.Height - 2*ZoomToFitMargin
	if availW <= 0 || availH <= 0 || graphW <= 0 || graphH <= 0 {
		return
	}
	zoom := availW / graphW
	if z := availH / graphH; z < zoom {
		zoom = z
	}
	v.Zoom = zoom
	v.FocusX = graphW / 2
	v.FocusY = graphH / 2
}

// ZoomToArea centers on the given graph rectangle and zooms so it fills
// the window.
func (v *Viewport) ZoomToArea(x1, y1, x2, y2 float64) {
	w := abs(x2 - x1)
	h := abs(y2 - y1)
	if w <= 0 || h <= 0 || v.Width <= 0 || v.Height <= 0 {
		return
	}
	zoom := v.Width / w
	if z := v.Height / h; z < zoom {
		zoom = z
	}
	v.Zoom = zoom
	v.FocusX = (x1 + x2) / 2
	v.FocusY = (y1 + y2) / 2
}

// ZoomStep zooms in (positive) or out (negative) by whole increments,
// keeping the focus point fixed.
func (v *Viewport) ZoomStep(dir int) {
	for ; dir > 0; dir-- {
		v.Zoom *= ZoomIncrement
	}
	for ; dir < 0; dir++ {
		v.Zoom /= ZoomIncrement
	}
}

// Pan moves the focus by whole keyboard steps. A step covers the same
// number of window pixels at any zoom, so it covers more graph distance
// when zoomed out.
func (v *Viewport) Pan(dx, dy int) {
	v.FocusX += float64(dx) * PanIncrement / v.Zoom
	v.FocusY += float64(dy) * PanIncrement / v.Zoom
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
