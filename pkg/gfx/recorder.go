package gfx

import (
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
)

// Fill is one recorded FillRectangle call.
type Fill struct {
	Rect  geom.Rectangle
	Color Color
}

// Recorder is an in-memory Surface that records fills instead of drawing.
type Recorder struct {
	Metrics Metrics
	Fills   []Fill

	// FailQueries makes ScreenSize and GlyphLineHeight fail.
	FailQueries bool

	failAfter int // fills allowed before failing; -1 never fails
}

// NewRecorder returns a Recorder reporting m.
func NewRecorder(m Metrics) *Recorder {
	return &Recorder{Metrics: m, failAfter: -1}
}

// FailAfter makes every fill after the first n fail with BACKEND_FAILURE.
// A negative n disables failure injection.
func (r *Recorder) FailAfter(n int) { r.failAfter = n }

// Reset drops recorded fills and disables failure injection.
func (r *Recorder) Reset() {
	r.Fills = nil
	r.failAfter = -1
	r.FailQueries = false
}

func (r *Recorder) ScreenSize() (geom.Point, error) {
	if r.FailQueries {
		return geom.Point{}, errors.New(errors.ErrCodeBackendFailure, "screen size unavailable")
	}
	return geom.Pt(r.Metrics.Width, r.Metrics.Height), nil
}

func (r *Recorder) GlyphLineHeight(style GlyphStyle) (int, error) {
	if r.FailQueries {
		return 0, errors.New(errors.ErrCodeBackendFailure, "glyph metrics unavailable")
	}
	h, err := r.Metrics.LineHeight(style)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeBackendFailure, err, "glyph line height")
	}
	return h, nil
}

func (r *Recorder) FillRectangle(rect geom.Rectangle, c Color) error {
	if r.failAfter >= 0 && len(r.Fills) >= r.failAfter {
		return errors.New(errors.ErrCodeBackendFailure, "fill %v rejected", rect)
	}
	r.Fills = append(r.Fills, Fill{Rect: rect, Color: c})
	return nil
}

var _ Surface = (*Recorder)(nil)
