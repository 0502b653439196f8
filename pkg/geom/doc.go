// Package geom provides the integer rectangle arithmetic used to place canvases.
//
// Coordinates are device pixels with the origin at the top-left of the screen
// and y growing downward. A [Rectangle] is described by its top-left and
// bottom-right corners and is treated as half-open: it covers
// [TL.X, BR.X) × [TL.Y, BR.Y). Two rectangles that share an edge therefore do
// not overlap, which is what lets stacked canvases tile the screen exactly.
//
// # Combinators
//
// Layouts are built from two combinators:
//
//   - [VStack]: place a rectangle of a given height directly above or below a
//     reference rectangle's edge.
//   - [VSpan]: place a rectangle that exactly fills the vertical gap between two
//     reference rectangles.
//
//	predictive := geom.Rect(0, 514, 336, 536)
//	input := geom.VStack(predictive, -22)       // (0,492)-(336,514)
//	content := geom.VSpan(statusBar, input)     // status bottom to y=492
package geom
