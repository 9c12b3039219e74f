// Package render rasterizes a scene through a viewport and converts the
// result into terminal cells or export images.
package render

import (
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/byhongda/xdot/pkg/xdot"
)

var (
	fontOnce   sync.Once
	fontTTF    *truetype.Font
	faceCache  = map[float64]font.Face{}
	faceCacheM sync.Mutex
)

// faceFor returns a cached face at the given size. One bundled face
// stands in for every font the layout names; at terminal cell sizes the
// difference is invisible.
func faceFor(size float64) font.Face {
	fontOnce.Do(func() {
		fontTTF, _ = truetype.Parse(goregular.TTF)
	})
	faceCacheM.Lock()
	defer faceCacheM.Unlock()
	if f, ok := faceCache[size]; ok {
		return f
	}
	f := truetype.NewFace(fontTTF, &truetype.Options{Size: size})
	faceCache[size] = f
	return f
}

// Canvas adapts a gg raster context to the drawing surface shapes
// render through.
type Canvas struct {
	dc     *gg.Context
	ascent float64
}

// NewCanvas wraps an existing gg context.
func NewCanvas(dc *gg.Context) *Canvas {
	c := &Canvas{dc: dc}
	c.SetFont(xdot.DefaultFontName, xdot.DefaultFontSize)
	return c
}

func (c *Canvas) Push() { c.dc.Push() }
func (c *Canvas) Pop()  { c.dc.Pop() }

func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *Canvas) Scale(sx, sy float64)   { c.dc.Scale(sx, sy) }

func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }

func (c *Canvas) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	c.dc.CubicTo(x1, y1, x2, y2, x3, y3)
}

func (c *Canvas) ClosePath() { c.dc.ClosePath() }

func (c *Canvas) DrawEllipse(cx, cy, rx, ry float64) {
	c.dc.DrawEllipse(cx, cy, rx, ry)
}

func (c *Canvas) SetColor(col xdot.RGBA) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
}

func (c *Canvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w) }

func (c *Canvas) SetDash(pattern ...float64) { c.dc.SetDash(pattern...) }

func (c *Canvas) Fill()   { c.dc.Fill() }
func (c *Canvas) Stroke() { c.dc.Stroke() }

func (c *Canvas) ClipRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Clip()
}

func (c *Canvas) SetFont(name string, size float64) {
	face := faceFor(size)
	c.dc.SetFontFace(face)
	c.ascent = float64(face.Metrics().Ascent) / 64
}

func (c *Canvas) MeasureText(s string) (w, h float64) {
	return c.dc.MeasureString(s)
}

// DrawText places the string with its top-left corner at (x, y); the
// raster context wants a baseline, so shift down by the face ascent.
func (c *Canvas) DrawText(s string, x, y float64) {
	c.dc.DrawString(s, x, y+c.ascent)
}

var _ xdot.Canvas = (*Canvas)(nil)
