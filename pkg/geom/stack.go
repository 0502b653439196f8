package geom

// VStack places a rectangle of height |h| against a horizontal edge of ref,
// keeping ref's left and right bounds.
//
// A positive h stacks below ref (the new top edge is ref's bottom edge); a
// negative h stacks above ref (the new bottom edge is ref's top edge).
func VStack(ref Rectangle, h int) Rectangle {
	if h < 0 {
		return Rect(ref.TL.X, ref.TL.Y+h, ref.BR.X, ref.TL.Y)
	}
	return Rect(ref.TL.X, ref.BR.Y, ref.BR.X, ref.BR.Y+h)
}

// VSpan returns the rectangle filling the vertical gap from the bottom edge of
// top to the top edge of bottom. Horizontally it covers both references.
// The result is degenerate if bottom starts above top ends.
func VSpan(top, bottom Rectangle) Rectangle {
	return Rect(
		min(top.TL.X, bottom.TL.X), top.BR.Y,
		max(top.BR.X, bottom.BR.X), bottom.TL.Y,
	)
}
