package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalfBlock shows the foreground color in the top half of the cell
// and the background color in the bottom half, doubling the vertical
// resolution of the terminal.
const upperHalfBlock = "▀"

// Cells converts an image into terminal lines, two image rows per line.
// The image width maps to columns one to one.
func Cells(img image.Image) string {
	bounds := img.Bounds()
	var b strings.Builder

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		var (
			run      strings.Builder
			runTop   string
			runBot   string
			haveRun  bool
			flushRun = func() {
				if !haveRun {
					return
				}
				style := lipgloss.NewStyle().
					Foreground(lipgloss.Color(runTop)).
					Background(lipgloss.Color(runBot))
				b.WriteString(style.Render(run.String()))
				run.Reset()
				haveRun = false
			}
		)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexAt(img, x, y)
			bot := top
			if y+1 < bounds.Max.Y {
				bot = hexAt(img, x, y+1)
			}
			if haveRun && (top != runTop || bot != runBot) {
				flushRun()
			}
			if !haveRun {
				runTop, runBot = top, bot
				haveRun = true
			}
			run.WriteString(upperHalfBlock)
		}
		flushRun()
	}
	return b.String()
}

// hexAt reads a pixel as a #rrggbb string. Frames are opaque, so alpha
// is dropped.
func hexAt(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
