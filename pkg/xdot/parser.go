package xdot

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// TransformFunc maps layout-engine coordinates to canvas coordinates. The
// loader fixes one transform per load (origin shift plus y flip) and
// passes it to every directive parse.
type TransformFunc func(x, y float64) (float64, float64)

// ParseDraw interprets one element's drawing-directive string and returns
// the shapes it emits, in emission order. A mutable pen starts at the
// defaults and threads through the whole stream; each emitted shape gets
// a snapshot of the pen at emission time.
//
// An unrecognized opcode or malformed operand stops interpretation of
// this stream with a warning; shapes already emitted are kept. Unknown
// color names only warn and leave the pen channel unchanged.
func ParseDraw(buf string, transform TransformFunc, logger *log.Logger) ShapeList {
	s := &attrScanner{
		buf:       unescape(buf),
		transform: transform,
		logger:    logger,
	}

	var shapes ShapeList
	pen := NewPen()
	for s.more() {
		op := s.readCode()
		switch op {
		case "c":
			pen.Color = s.readColor(pen.Color)
		case "C":
			pen.FillColor = s.readColor(pen.FillColor)
		case "S":
			s.readStyle(&pen)
		case "F":
			pen.FontSize = s.readFloat()
			pen.FontName = s.readText()
		case "T":
			x, y := s.readPoint()
			j := s.readInt()
			w := s.readFloat()
			t := s.readText()
			shapes = append(shapes, &TextShape{
				styled:  styled{Pen: pen.Copy()},
				Pos:     Point{x, y},
				Justify: j,
				Width:   w,
				Text:    t,
			})
		case "E", "e":
			x, y := s.readPoint()
			w := s.readFloat()
			h := s.readFloat()
			if op == "E" {
				// A filled ellipse opcode means "fill, then outline":
				// two shapes with identical geometry.
				shapes = append(shapes, &EllipseShape{
					styled: styled{Pen: pen.Copy()},
					Center: Point{x, y}, Rx: w, Ry: h, Filled: true,
				})
			}
			shapes = append(shapes, &EllipseShape{
				styled: styled{Pen: pen.Copy()},
				Center: Point{x, y}, Rx: w, Ry: h,
			})
		case "B":
			pts := s.readPolygon()
			shapes = append(shapes, &BezierShape{
				styled: styled{Pen: pen.Copy()},
				Points: pts,
			})
		case "P", "p":
			pts := s.readPolygon()
			if op == "P" {
				shapes = append(shapes, &PolygonShape{
					styled: styled{Pen: pen.Copy()},
					Points: pts, Filled: true,
				})
			}
			shapes = append(shapes, &PolygonShape{
				styled: styled{Pen: pen.Copy()},
				Points: pts,
			})
		default:
			logger.Warnf("unknown xdot opcode %q", op)
			return shapes
		}
		if s.failed {
			logger.Warnf("malformed xdot operand near offset %d", s.pos)
			return shapes
		}
	}
	return shapes
}

// unescape undoes the quoting the layout engine applies when embedding a
// directive string in an attribute value.
func unescape(buf string) string {
	buf = strings.ReplaceAll(buf, `\"`, `"`)
	buf = strings.ReplaceAll(buf, `\n`, "\n")
	return buf
}

// attrScanner is a cursor over one unescaped directive string. Operand
// reads set failed instead of returning errors; the interpreter loop
// checks it once per opcode.
type attrScanner struct {
	buf       string
	pos       int
	transform TransformFunc
	logger    *log.Logger
	failed    bool
}

func (s *attrScanner) more() bool {
	return !s.failed && s.pos < len(s.buf)
}

func (s *attrScanner) skipSpace() {
	for s.pos < len(s.buf) && isSpace(s.buf[s.pos]) {
		s.pos++
	}
}

// readCode returns the next space-delimited token and skips trailing
// whitespace.
func (s *attrScanner) readCode() string {
	end := strings.IndexByte(s.buf[s.pos:], ' ')
	var res string
	if end < 0 {
		res = s.buf[s.pos:]
		s.pos = len(s.buf)
	} else {
		res = s.buf[s.pos : s.pos+end]
		s.pos += end + 1
	}
	s.skipSpace()
	return res
}

func (s *attrScanner) readInt() int {
	v, err := strconv.Atoi(s.readCode())
	if err != nil {
		s.failed = true
		return 0
	}
	return v
}

func (s *attrScanner) readFloat() float64 {
	v, err := strconv.ParseFloat(s.readCode(), 64)
	if err != nil {
		s.failed = true
		return 0
	}
	return v
}

// readPoint reads two numbers and pushes them through the coordinate
// transform.
func (s *attrScanner) readPoint() (float64, float64) {
	x := s.readFloat()
	y := s.readFloat()
	if s.failed {
		return 0, 0
	}
	return s.transform(x, y)
}

// readText reads a length-prefixed string token: the byte count, then the
// bytes following the next '-' marker.
func (s *attrScanner) readText() string {
	n := s.readInt()
	if s.failed {
		return ""
	}
	sep := strings.IndexByte(s.buf[s.pos:], '-')
	if sep < 0 {
		s.failed = true
		return ""
	}
	start := s.pos + sep + 1
	if start+n > len(s.buf) {
		s.failed = true
		return ""
	}
	res := s.buf[start : start+n]
	s.pos = start + n
	s.skipSpace()
	return res
}

func (s *attrScanner) readPolygon() []Point {
	n := s.readInt()
	if s.failed || n < 0 {
		s.failed = true
		return nil
	}
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x, y := s.readPoint()
		if s.failed {
			return nil
		}
		pts = append(pts, Point{x, y})
	}
	return pts
}

func (s *attrScanner) readColor(fallback RGBA) RGBA {
	c := s.readText()
	if s.failed {
		return fallback
	}
	return parseColor(c, fallback, s.logger)
}

// readStyle applies one style directive to the pen. Styles this renderer
// has no use for (rounded, bold, invis) pass through silently, as the
// reference renderer's do.
func (s *attrScanner) readStyle(pen *Pen) {
	style := s.readText()
	switch {
	case strings.HasPrefix(style, "setlinewidth("):
		raw := strings.TrimSuffix(strings.TrimPrefix(style, "setlinewidth("), ")")
		if w, err := strconv.ParseFloat(raw, 64); err == nil {
			pen.LineWidth = w
		}
	case style == "solid":
		pen.Dash = nil
	case style == "dashed":
		pen.Dash = []float64{6} // 6pt on, 6pt off
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
