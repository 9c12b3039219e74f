package xdot

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// parseColor decodes one xdot color token. Three encodings are tried in
// order (see https://graphviz.org/docs/attr-types/color/):
//
//   - "#RRGGBB" or "#RRGGBBAA" hex, each byte scaled to [0,1]; a missing
//     or malformed alpha pair means opaque
//   - "H S V" (or "H,S,V") floats in [0,1], converted HSV to RGB
//   - a color name resolved against the SVG 1.1 color table
//
// An unresolvable name is not fatal: it logs one warning and returns
// fallback, which callers pass as the pen's current channel value so the
// stream keeps its previous color.
func parseColor(s string, fallback RGBA, logger *log.Logger) RGBA {
	if s == "" {
		return fallback
	}
	if s[0] == '#' {
		return parseHexColor(s)
	}
	if s[0] == '.' || (s[0] >= '0' && s[0] <= '9') {
		if c, ok := parseHSVColor(s); ok {
			return c
		}
		logger.Warnf("malformed HSV color %q", s)
		return fallback
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
			A: 1.0,
		}
	}
	logger.Warnf("unknown color %q", s)
	return fallback
}

func parseHexColor(s string) RGBA {
	pair := func(i int) float64 {
		if i+2 > len(s) {
			return 0
		}
		v, err := strconv.ParseUint(s[i:i+2], 16, 8)
		if err != nil {
			return 0
		}
		return float64(v) / 255.0
	}
	c := RGBA{R: pair(1), G: pair(3), B: pair(5), A: 1.0}
	if len(s) >= 9 {
		if v, err := strconv.ParseUint(s[7:9], 16, 8); err == nil {
			c.A = float64(v) / 255.0
		}
	}
	return c
}

func parseHSVColor(s string) (RGBA, bool) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 3 {
		return RGBA{}, false
	}
	var hsv [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return RGBA{}, false
		}
		hsv[i] = v
	}
	// colorful expects hue in degrees; xdot encodes it in [0,1].
	c := colorful.Hsv(hsv[0]*360.0, hsv[1], hsv[2])
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1.0}, true
}
