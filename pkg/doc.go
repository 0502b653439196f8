// Package pkg holds the trustpane libraries.
//
// A trusted display is split into canvases. Each canvas has a fixed
// rectangle, a clip rectangle that resizes may shrink or grow, and a trust
// level. The status bar at the top carries the highest trust; layouts placed
// below it may never exceed it, and their canvases never overlap.
//
// Packages, bottom up:
//
//  1. [errors] - coded errors shared by every package
//  2. [geom] - points, rectangles, stack and span placement
//  3. [canvas] - canvas identity and the fixed-capacity registry
//  4. [gfx] - the drawing surface contract, a recorder and a raster backend
//  5. [layout] - conversation and menu layouts
//  6. [shell] - registry owner with the status canvas, safe for concurrent use
//  7. [config], [observability], [cache], [buildinfo] - supporting services
//
// Typical use:
//
//	sh, err := shell.New(surface, config.Default())
//	h, err := sh.CreateLayout(layout.Conversation, 254)
//	_ = sh.Clear(h)
//	corner, err := sh.Resize(h, 60)
package pkg
