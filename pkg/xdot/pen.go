package xdot

// RGBA is a color with each channel in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Default pen attributes, matching the Graphviz defaults for xdot output.
const (
	DefaultLineWidth = 1.0
	DefaultFontSize  = 14.0
	DefaultFontName  = "Times-Roman"
)

// Pen is a snapshot of drawing style: stroke and fill color, line width,
// dash pattern and font. The interpreter mutates one pen while scanning a
// directive stream and copies it into every shape it emits, so a shape's
// pen never changes after construction.
type Pen struct {
	Color     RGBA
	FillColor RGBA
	LineWidth float64
	FontSize  float64
	FontName  string
	Dash      []float64
}

// NewPen returns a pen with default attributes: solid black stroke and
// fill, line width 1, 14pt Times-Roman.
func NewPen() Pen {
	black := RGBA{0, 0, 0, 1}
	return Pen{
		Color:     black,
		FillColor: black,
		LineWidth: DefaultLineWidth,
		FontSize:  DefaultFontSize,
		FontName:  DefaultFontName,
	}
}

// Copy returns a snapshot of the pen. The dash pattern is cloned so the
// interpreter can keep mutating its working pen.
func (p Pen) Copy() Pen {
	q := p
	if len(p.Dash) > 0 {
		q.Dash = append([]float64(nil), p.Dash...)
	}
	return q
}

// Highlighted returns the pen used when the owning shape is part of the
// active highlight set: red stroke over a pale red fill, other attributes
// unchanged.
func (p Pen) Highlighted() Pen {
	q := p.Copy()
	q.Color = RGBA{1, 0, 0, 1}
	q.FillColor = RGBA{1, 0.8, 0.8, 1}
	return q
}
