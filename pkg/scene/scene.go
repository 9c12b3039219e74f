// Package scene holds the drawable graph model produced by a layout load:
// nodes and edges carrying their decoded shapes, plus the spatial queries
// behind clickable URLs and jump-to-neighbor navigation.
package scene

import "github.com/byhongda/xdot/pkg/xdot"

// Handle identifies one graph element. Handles are arena indices issued
// at build time, so highlight sets can be compared and hashed without
// holding element pointers.
type Handle int

// HandleSet is a set of element handles, used for highlighting.
type HandleSet map[Handle]struct{}

// NewHandleSet builds a set from the given handles.
func NewHandleSet(hs ...Handle) HandleSet {
	s := make(HandleSet, len(hs))
	for _, h := range hs {
		s[h] = struct{}{}
	}
	return s
}

// Has reports whether h is in the set. A nil set contains nothing.
func (s HandleSet) Has(h Handle) bool {
	_, ok := s[h]
	return ok
}

// Equal reports whether both sets hold the same handles. Nil and empty
// sets are equal.
func (s HandleSet) Equal(o HandleSet) bool {
	if len(s) != len(o) {
		return false
	}
	for h := range s {
		if !o.Has(h) {
			return false
		}
	}
	return true
}

// Url is a hit-test result for a clickable element.
type Url struct {
	Item      Handle
	URL       string
	Highlight HandleSet
}

// Jump is a hit-test result naming a navigation target point and the
// elements to highlight while navigating there.
type Jump struct {
	Item      Handle
	X, Y      float64
	Highlight HandleSet
}

// Node is a laid-out graph node: a center position, axis-aligned bounds
// derived from the layout's width/height, the node's drawing shapes, and
// an optional URL.
type Node struct {
	Handle Handle

	X, Y           float64
	X1, Y1, X2, Y2 float64

	Shapes xdot.ShapeList
	URL    string
}

// NewNode builds a node centered at (x, y) with the given full width and
// height.
func NewNode(h Handle, x, y, w, hgt float64, shapes xdot.ShapeList, url string) *Node {
	return &Node{
		Handle: h,
		X:      x, Y: y,
		X1: x - 0.5*w, Y1: y - 0.5*hgt,
		X2: x + 0.5*w, Y2: y + 0.5*hgt,
		Shapes: shapes,
		URL:    url,
	}
}

// Contains reports whether the point lies within the node's bounds.
// Bounds are inclusive on all four edges.
func (n *Node) Contains(x, y float64) bool {
	return n.X1 <= x && x <= n.X2 && n.Y1 <= y && y <= n.Y2
}

// URLTarget returns the node's Url hit if it has a URL and contains the
// point, else nil.
func (n *Node) URLTarget(x, y float64) *Url {
	if n.URL == "" || !n.Contains(x, y) {
		return nil
	}
	return &Url{Item: n.Handle, URL: n.URL, Highlight: NewHandleSet(n.Handle)}
}

// JumpTarget returns a jump to the node's own center if it contains the
// point, else nil.
func (n *Node) JumpTarget(x, y float64) *Jump {
	if !n.Contains(x, y) {
		return nil
	}
	return &Jump{Item: n.Handle, X: n.X, Y: n.Y, Highlight: NewHandleSet(n.Handle)}
}

// Edge is a laid-out graph edge: endpoint node references (non-owning),
// the routed polyline (first point at the tail, last at the head) and the
// edge's drawing shapes.
type Edge struct {
	Handle Handle

	Src, Dst *Node
	Points   []xdot.Point

	Shapes xdot.ShapeList
}

// jumpRadius is how close (in graph units) a query point must be to an
// edge endpoint to count as a hit. It is deliberately measured in the
// load-time coordinate space, so the on-screen sensitivity scales with
// zoom.
const jumpRadius = 10

func squareDistance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// JumpTarget returns a jump across the edge when the point is near one of
// its endpoints: near the tail jumps to the destination node, near the
// head jumps back to the source. The highlight covers the edge and the
// landing node.
func (e *Edge) JumpTarget(x, y float64) *Jump {
	if len(e.Points) == 0 {
		return nil
	}
	first := e.Points[0]
	if squareDistance(x, y, first.X, first.Y) <= jumpRadius*jumpRadius {
		return &Jump{
			Item: e.Handle,
			X:    e.Dst.X, Y: e.Dst.Y,
			Highlight: NewHandleSet(e.Handle, e.Dst.Handle),
		}
	}
	last := e.Points[len(e.Points)-1]
	if squareDistance(x, y, last.X, last.Y) <= jumpRadius*jumpRadius {
		return &Jump{
			Item: e.Handle,
			X:    e.Src.X, Y: e.Src.Y,
			Highlight: NewHandleSet(e.Handle, e.Src.Handle),
		}
	}
	return nil
}

// Graph is one loaded scene: overall extent in graph units plus the
// drawable nodes and edges in insertion order. Elements that produced no
// shapes never enter the graph; they can be neither seen nor hit.
type Graph struct {
	Width, Height float64
	Nodes         []*Node
	Edges         []*Edge
}

// NewGraph returns an empty graph with a minimal 1x1 extent so viewport
// math never divides by zero.
func NewGraph() *Graph {
	return &Graph{Width: 1, Height: 1}
}

// URLAt returns the first node (in insertion order) whose URL region
// contains the point.
func (g *Graph) URLAt(x, y float64) *Url {
	for _, n := range g.Nodes {
		if u := n.URLTarget(x, y); u != nil {
			return u
		}
	}
	return nil
}

// JumpAt returns the first jump hit at the point. Edges are checked
// before nodes so endpoint navigation wins over the node underneath it.
func (g *Graph) JumpAt(x, y float64) *Jump {
	for _, e := range g.Edges {
		if j := e.JumpTarget(x, y); j != nil {
			return j
		}
	}
	for _, n := range g.Nodes {
		if j := n.JumpTarget(x, y); j != nil {
			return j
		}
	}
	return nil
}

// Draw renders the whole scene: edges first, then nodes on top. Elements
// whose handle is in highlight draw with their highlighted pens.
func (g *Graph) Draw(c xdot.Canvas, highlight HandleSet) {
	for _, e := range g.Edges {
		e.Shapes.Draw(c, highlight.Has(e.Handle))
	}
	for _, n := range g.Nodes {
		n.Shapes.Draw(c, highlight.Has(n.Handle))
	}
}
