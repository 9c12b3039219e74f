package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/byhongda/xdot/pkg/scene"
	"github.com/byhongda/xdot/pkg/viewport"
)

// Band is a rubber-band rectangle in screen coordinates, drawn over the
// scene while an area zoom is in progress.
type Band struct {
	X1, Y1, X2, Y2 float64
}

// Frame rasterizes one view of the scene: white background, the graph
// transformed through the viewport, highlights applied, and the rubber
// band (if any) composited on top in screen space.
func Frame(g *scene.Graph, view *viewport.Viewport, highlight scene.HandleSet, band *Band, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Push()
	dc.Translate(float64(width)/2, float64(height)/2)
	dc.Scale(view.Zoom, view.Zoom)
	dc.Translate(-view.FocusX, -view.FocusY)
	g.Draw(NewCanvas(dc), highlight)
	dc.Pop()

	if band != nil {
		x, y := band.X1, band.Y1
		w, h := band.X2-band.X1, band.Y2-band.Y1
		if w < 0 {
			x, w = band.X2, -w
		}
		if h < 0 {
			y, h = band.Y2, -h
		}
		dc.DrawRectangle(x, y, w, h)
		dc.SetRGBA(0.5, 0.5, 1.0, 0.25)
		dc.FillPreserve()
		dc.SetRGBA(0.5, 0.5, 1.0, 1.0)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	return dc.Image()
}
