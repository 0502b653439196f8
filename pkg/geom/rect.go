package geom

import "fmt"

// Point is a device-pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rectangle is an axis-aligned, half-open pixel region.
type Rectangle struct {
	TL Point `json:"tl"`
	BR Point `json:"br"`
}

// Rect builds a rectangle from its corner coordinates.
func Rect(x0, y0, x1, y1 int) Rectangle {
	return Rectangle{TL: Point{X: x0, Y: y0}, BR: Point{X: x1, Y: y1}}
}

// Width returns the horizontal span.
func (r Rectangle) Width() int { return r.BR.X - r.TL.X }

// Height returns the vertical span.
func (r Rectangle) Height() int { return r.BR.Y - r.TL.Y }

// Area returns Width*Height, or 0 for a degenerate rectangle.
func (r Rectangle) Area() int {
	if r.Degenerate() {
		return 0
	}
	return r.Width() * r.Height()
}

// Degenerate reports whether the rectangle has non-positive width or height.
func (r Rectangle) Degenerate() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Overlaps reports whether r and o share at least one pixel.
// Rectangles that only touch along an edge do not overlap.
func (r Rectangle) Overlaps(o Rectangle) bool {
	if r.Degenerate() || o.Degenerate() {
		return false
	}
	return r.TL.X < o.BR.X && o.TL.X < r.BR.X &&
		r.TL.Y < o.BR.Y && o.TL.Y < r.BR.Y
}

// Intersect returns the largest rectangle contained in both r and o.
// The result is degenerate when they do not overlap.
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	return Rectangle{
		TL: Point{X: max(r.TL.X, o.TL.X), Y: max(r.TL.Y, o.TL.Y)},
		BR: Point{X: min(r.BR.X, o.BR.X), Y: min(r.BR.Y, o.BR.Y)},
	}
}

// Contains reports whether o lies entirely inside r.
func (r Rectangle) Contains(o Rectangle) bool {
	return o.TL.X >= r.TL.X && o.TL.Y >= r.TL.Y &&
		o.BR.X <= r.BR.X && o.BR.Y <= r.BR.Y
}

// ContainsPoint reports whether p falls inside r.
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.X >= r.TL.X && p.X < r.BR.X && p.Y >= r.TL.Y && p.Y < r.BR.Y
}

// String formats the rectangle as "(x0,y0)-(x1,y1)".
func (r Rectangle) String() string { return r.TL.String() + "-" + r.BR.String() }
