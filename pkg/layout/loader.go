// Package layout runs Graphviz over DOT source and loads the annotated
// result into a drawable scene.
package layout

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	apperrors "github.com/byhongda/xdot/pkg/errors"
	"github.com/byhongda/xdot/pkg/scene"
	"github.com/byhongda/xdot/pkg/xdot"
)

// pointsPerInch converts the layout's node extent attributes, which are
// in inches, to the point units everything else uses.
const pointsPerInch = 72

// Load parses layout-annotated DOT text into a scene graph.
//
// The annotated text places elements in a y-up coordinate system with an
// arbitrary origin; Load fixes one transform per call that shifts the
// bounding box minimum to the origin and flips y, and every coordinate
// (element positions, edge polylines, drawing directives) goes through
// it. A missing bounding box or an edge naming an unknown node aborts
// the load with an error; cosmetic problems inside drawing directives
// only warn.
func Load(data []byte, logger *log.Logger) (*scene.Graph, error) {
	file, err := parseDot(string(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDot, err, "parse annotated layout")
	}

	bb, ok := file.attrs["bb"]
	if !ok || bb == "" {
		return nil, apperrors.New(apperrors.ErrCodeMissingBounds, "layout has no bounding box")
	}
	xmin, ymin, xmax, ymax, err := parseBounds(bb)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeMissingBounds, err, "parse bounding box %q", bb)
	}
	transform := func(x, y float64) (float64, float64) {
		return x - xmin, ymax - y
	}

	g := scene.NewGraph()
	if w := xmax - xmin; w > 1 {
		g.Width = w
	}
	if h := ymax - ymin; h > 1 {
		g.Height = h
	}

	// Every positioned node gets a handle and an index entry, drawn or
	// not, so edges can resolve endpoints that render nothing themselves.
	var next scene.Handle
	byName := map[string]*scene.Node{}
	for _, dn := range file.nodes {
		x, y, ok := parsePos(dn.attrs["pos"])
		if !ok {
			continue
		}
		x, y = transform(x, y)
		w := parseFloatAttr(dn.attrs, "width") * pointsPerInch
		h := parseFloatAttr(dn.attrs, "height") * pointsPerInch

		shapes := drawShapes(dn.attrs, transform, logger, "_draw_", "_ldraw_")

		url := dn.attrs["URL"]
		if url == "" {
			url = dn.attrs["href"]
		}

		n := scene.NewNode(next, x, y, w, h, shapes, url)
		next++
		byName[dn.name] = n
		if len(shapes) > 0 {
			g.Nodes = append(g.Nodes, n)
		}
	}

	for _, de := range file.edges {
		src, ok := byName[de.tail]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeUnresolvedNode, "edge references unknown node %q", de.tail)
		}
		dst, ok := byName[de.head]
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeUnresolvedNode, "edge references unknown node %q", de.head)
		}

		shapes := drawShapes(de.attrs, transform, logger,
			"_draw_", "_ldraw_", "_hdraw_", "_tdraw_", "_hldraw_", "_tldraw_")
		if len(shapes) == 0 {
			continue
		}

		g.Edges = append(g.Edges, &scene.Edge{
			Handle: next,
			Src:    src,
			Dst:    dst,
			Points: parseSpline(de.attrs["pos"], transform),
			Shapes: shapes,
		})
		next++
	}

	return g, nil
}

// drawShapes interprets the element's drawing attributes in order. Each
// attribute is its own directive stream with its own pen.
func drawShapes(attrs map[string]string, transform xdot.TransformFunc, logger *log.Logger, keys ...string) xdot.ShapeList {
	var shapes xdot.ShapeList
	for _, key := range keys {
		if buf := attrs[key]; buf != "" {
			shapes = append(shapes, xdot.ParseDraw(buf, transform, logger)...)
		}
	}
	return shapes
}

// parseBounds parses a bb attribute: four comma-separated numbers.
func parseBounds(s string) (xmin, ymin, xmax, ymax float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, strconv.ErrSyntax
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		if vals[i], err = strconv.ParseFloat(strings.TrimSpace(p), 64); err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// parsePos parses a node pos attribute: "x,y", possibly with a trailing
// ! pin marker.
func parsePos(s string) (x, y float64, ok bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "!")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return x, y, true
}

// parseSpline parses an edge pos attribute into the routed polyline.
// Arrowhead endpoint markers (tokens prefixed with "e," or "s,") are
// dropped; the remaining control points run tail to head.
func parseSpline(s string, transform xdot.TransformFunc) []xdot.Point {
	var points []xdot.Point
	for _, field := range strings.Fields(s) {
		if strings.HasPrefix(field, "e,") || strings.HasPrefix(field, "s,") {
			continue
		}
		parts := strings.Split(field, ",")
		if len(parts) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(parts[0], 64)
		y, errY := strconv.ParseFloat(parts[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		tx, ty := transform(x, y)
		points = append(points, xdot.Point{X: tx, Y: ty})
	}
	return points
}

func parseFloatAttr(attrs map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(attrs[key], 64)
	if err != nil {
		return 0
	}
	return v
}
