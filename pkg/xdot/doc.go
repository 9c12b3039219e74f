// Package xdot interprets the Graphviz xdot drawing mini-language.
//
// Layout engines that emit xdot annotate every graph element with a compact
// directive string describing how to draw it: text runs, ellipses, polygons
// and Bézier curves, each positioned in layout coordinates. This package
// turns one such directive string into an ordered list of [Shape] values,
// threading a mutable [Pen] through the opcode stream so that style changes
// apply to every shape emitted after them.
//
// Shapes draw themselves through the [Canvas] interface, which abstracts the
// concrete drawing surface (a raster context, an SVG writer, a test
// recorder). Shape order is significant: later shapes paint over earlier
// ones.
//
// See https://graphviz.org/docs/outputs/canon/#xdot for the format.
package xdot
