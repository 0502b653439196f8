// Package gfx defines the graphics collaborator the layout core draws through.
//
// The core never rasterizes anything itself. It asks a [Surface] for the
// screen size and glyph line heights, and asks it to fill rectangles with one
// of two background colors. Two surfaces ship with the package:
//
//   - [Recorder]: keeps every fill in memory. Tests use it to assert paint
//     order and to inject BACKEND_FAILURE errors.
//   - [Raster]: paints into an RGBA image with github.com/fogleman/gg and
//     encodes PNG. Glyph metrics come from a configured [Metrics] value or
//     from golang.org/x/image font faces.
package gfx
