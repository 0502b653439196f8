package canvas

import (
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
)

// Trust is an ordinal privilege level. Higher values are protected from
// occlusion by lower ones.
type Trust uint8

// MaxTrust is the highest trust level, held by the status region.
const MaxTrust Trust = 255

// Canvas is a rectangular screen region with a trust level and a clip
// rectangle. The clip starts equal to the rectangle and is the only part
// that changes after creation.
type Canvas struct {
	id    ID
	rect  geom.Rectangle
	clip  geom.Rectangle
	trust Trust
}

// New creates a canvas over rect with the given trust, naming it with a fresh
// identifier from ids. It fails with DEGENERATE_GEOMETRY if rect has
// non-positive width or height.
func New(rect geom.Rectangle, trust Trust, ids IDSource) (Canvas, error) {
	if rect.Degenerate() {
		return Canvas{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"canvas rectangle %v has non-positive size %dx%d", rect, rect.Width(), rect.Height())
	}
	return Canvas{
		id:    ids.NewID(),
		rect:  rect,
		clip:  rect,
		trust: trust,
	}, nil
}

// ID returns the canvas identifier.
func (c Canvas) ID() ID { return c.id }

// Rect returns the rectangle the canvas was allocated with.
func (c Canvas) Rect() geom.Rectangle { return c.rect }

// Clip returns the current clip rectangle.
func (c Canvas) Clip() geom.Rectangle { return c.clip }

// Trust returns the canvas trust level.
func (c Canvas) Trust() Trust { return c.trust }
