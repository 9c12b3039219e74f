package xdot

// Canvas is the drawing-surface collaborator. Shapes render themselves
// through these primitive operations; the concrete surface (raster
// context, recorder used in tests) lives outside this package.
//
// Path operations accumulate into a current path that the next Fill or
// Stroke consumes. Push/Pop save and restore the transform and style
// state, as a cairo save/restore pair would.
type Canvas interface {
	// Transform state.
	Push()
	Pop()
	Translate(x, y float64)
	Scale(sx, sy float64)

	// Path construction.
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	DrawEllipse(cx, cy, rx, ry float64)

	// Style.
	SetColor(c RGBA)
	SetLineWidth(w float64)
	SetDash(pattern ...float64)

	// Painting.
	Fill()
	Stroke()
	ClipRect(x, y, w, h float64)

	// Text. DrawText places the string with its top-left corner at (x, y)
	// in the current transform; MeasureText reports the extent the string
	// would occupy at the current font.
	SetFont(name string, size float64)
	MeasureText(s string) (w, h float64)
	DrawText(s string, x, y float64)
}
