// Package pkg provides the core libraries for the xdot graph viewer.
//
// # Overview
//
// xdot turns Graphviz DOT sources into interactive, navigable scenes. The
// libraries are organized around the flow from source text to pixels:
//
//  1. [layout] - Runs Graphviz and loads annotated output into a scene
//  2. [xdot] - Parses the xdot drawing mini-language into shapes
//  3. [scene] - Positioned nodes and edges with hit-testing
//  4. [viewport] - Pan/zoom state, drag gestures, and animation
//  5. [render] - Rasterization and terminal cell output
//
// # Architecture
//
// The typical data flow through the viewer:
//
//	DOT source
//	     ↓
//	[layout] package (Graphviz xdot output, cached)
//	     ↓
//	[xdot] package (drawing directives → shapes)
//	     ↓
//	[scene] package (nodes, edges, hit-testing)
//	     ↓
//	[viewport] + [render] (interaction → pixels)
//
// # Quick Start
//
// Lay out a graph and query it:
//
//	engine := layout.NewEngine(cache.NewNullCache(), logger)
//	g, _, err := engine.Layout(ctx, []byte(`digraph { a -> b }`))
//	if err != nil {
//	    return err
//	}
//	if jump := g.JumpAt(x, y); jump != nil {
//	    // center the view on jump.X, jump.Y
//	}
//
// # Supporting Packages
//
// [cache] - Layout result caching with file, Redis, and null backends.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// [layout]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/layout
// [xdot]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/xdot
// [scene]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/scene
// [viewport]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/viewport
// [render]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/render
// [cache]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/cache
// [errors]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/byhongda/xdot/pkg/buildinfo
package pkg
