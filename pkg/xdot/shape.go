package xdot

// Justification of a text shape relative to its anchor point.
const (
	JustifyLeft   = -1
	JustifyCenter = 0
	JustifyRight  = 1
)

// Shape is one drawing primitive decoded from a directive stream. The
// variant set is closed: Text, Ellipse, Polygon, Bezier and the ShapeList
// compound.
type Shape interface {
	// Draw renders the shape onto c, using the highlighted pen derivation
	// when highlight is set.
	Draw(c Canvas, highlight bool)
}

// styled carries the pen snapshot shared by every non-compound shape,
// plus the lazily derived highlight pen. The derivation is computed on
// first highlighted draw and memoized.
type styled struct {
	Pen Pen

	hl *Pen
}

func (s *styled) pen(highlight bool) *Pen {
	if !highlight {
		return &s.Pen
	}
	if s.hl == nil {
		p := s.Pen.Highlighted()
		s.hl = &p
	}
	return s.hl
}

// TextShape is a single run of text anchored at Pos. Width is the extent
// the layout engine reserved for the string; when the actual font renders
// wider, the run is scaled down uniformly to fit.
type TextShape struct {
	styled
	Pos     Point
	Justify int
	Width   float64
	Text    string
}

// textDescent approximates the font descender below the baseline, in
// canvas units at the default scale.
const textDescent = 2.0

func (t *TextShape) Draw(c Canvas, highlight bool) {
	c.SetFont(t.Pen.FontName, t.Pen.FontSize)
	w, h := c.MeasureText(t.Text)

	// The layout engine decided how wide this text should be; the font we
	// actually have need not agree. Shrink to fit, preserving aspect.
	descent := textDescent
	f := 1.0
	if w > t.Width && t.Width > 0 {
		f = t.Width / w
		w = t.Width
		h *= f
		descent *= f
	}

	var x float64
	switch t.Justify {
	case JustifyLeft:
		x = t.Pos.X
	case JustifyCenter:
		x = t.Pos.X - 0.5*w
	case JustifyRight:
		x = t.Pos.X - w
	default:
		x = t.Pos.X
	}
	y := t.Pos.Y - h + descent

	c.Push()
	c.Translate(x, y)
	c.Scale(f, f)
	c.SetColor(t.pen(highlight).Color)
	c.DrawText(t.Text, 0, 0)
	c.Pop()
}

// EllipseShape is an axis-aligned ellipse, filled or outlined.
type EllipseShape struct {
	styled
	Center Point
	Rx, Ry float64
	Filled bool
}

func (e *EllipseShape) Draw(c Canvas, highlight bool) {
	pen := e.pen(highlight)
	c.DrawEllipse(e.Center.X, e.Center.Y, e.Rx, e.Ry)
	if e.Filled {
		c.SetColor(pen.FillColor)
		c.Fill()
		return
	}
	c.SetDash(pen.Dash...)
	c.SetLineWidth(pen.LineWidth)
	c.SetColor(pen.Color)
	c.Stroke()
}

// PolygonShape is a closed polygon, filled or outlined.
type PolygonShape struct {
	styled
	Points []Point
	Filled bool
}

func (p *PolygonShape) Draw(c Canvas, highlight bool) {
	if len(p.Points) == 0 {
		return
	}
	last := p.Points[len(p.Points)-1]
	c.MoveTo(last.X, last.Y)
	for _, pt := range p.Points {
		c.LineTo(pt.X, pt.Y)
	}
	c.ClosePath()
	pen := p.pen(highlight)
	if p.Filled {
		c.SetColor(pen.FillColor)
		c.Fill()
		return
	}
	c.SetDash(pen.Dash...)
	c.SetLineWidth(pen.LineWidth)
	c.SetColor(pen.Color)
	c.Stroke()
}

// BezierShape is a stroked Bézier spline. Points holds 1+3k control
// points: a start point followed by (c1, c2, end) triples.
type BezierShape struct {
	styled
	Points []Point
}

func (b *BezierShape) Draw(c Canvas, highlight bool) {
	if len(b.Points) == 0 {
		return
	}
	c.MoveTo(b.Points[0].X, b.Points[0].Y)
	for i := 1; i+2 < len(b.Points); i += 3 {
		p1, p2, p3 := b.Points[i], b.Points[i+1], b.Points[i+2]
		c.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
	}
	pen := b.pen(highlight)
	c.SetDash(pen.Dash...)
	c.SetLineWidth(pen.LineWidth)
	c.SetColor(pen.Color)
	c.Stroke()
}

// ShapeList draws an ordered sequence of shapes; later shapes paint over
// earlier ones.
type ShapeList []Shape

func (l ShapeList) Draw(c Canvas, highlight bool) {
	for _, s := range l {
		s.Draw(c, highlight)
	}
}
