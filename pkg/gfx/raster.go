package gfx

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
)

// RasterOption configures a Raster.
type RasterOption func(*Raster) error

// Raster is a Surface that paints into an in-memory image.
type Raster struct {
	metrics Metrics
	dc      *gg.Context
	light   color.Color
	dark    color.Color
	fills   int
}

// WithFaces derives the small and regular line heights from font faces,
// overriding the values in Metrics.
func WithFaces(small, regular font.Face) RasterOption {
	return func(r *Raster) error {
		r.metrics.SmallLineHeight = small.Metrics().Height.Ceil()
		r.metrics.RegularLineHeight = regular.Metrics().Height.Ceil()
		r.dc.SetFontFace(regular)
		return nil
	}
}

// WithPalette sets the light and dark fill colors as hex literals.
func WithPalette(light, dark string) RasterOption {
	return func(r *Raster) error {
		l, err := colorful.Hex(light)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "light color %q", light)
		}
		d, err := colorful.Hex(dark)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "dark color %q", dark)
		}
		r.light, r.dark = l, d
		return nil
	}
}

// NewRaster allocates a Width x Height image. The image starts dark, the
// color of an unpowered panel.
func NewRaster(m Metrics, opts ...RasterOption) (*Raster, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "raster size %dx%d", m.Width, m.Height)
	}
	r := &Raster{
		metrics: m,
		dc:      gg.NewContext(m.Width, m.Height),
		light:   color.White,
		dark:    color.Black,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.dc.SetColor(r.dark)
	r.dc.Clear()
	return r, nil
}

func (r *Raster) ScreenSize() (geom.Point, error) {
	return geom.Pt(r.metrics.Width, r.metrics.Height), nil
}

func (r *Raster) GlyphLineHeight(style GlyphStyle) (int, error) {
	h, err := r.metrics.LineHeight(style)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeBackendFailure, err, "glyph line height")
	}
	return h, nil
}

// FillRectangle paints rect. Rectangles that are degenerate or leave the
// screen are refused with BACKEND_FAILURE.
func (r *Raster) FillRectangle(rect geom.Rectangle, c Color) error {
	if rect.Degenerate() || !r.metrics.Screen().Contains(rect) {
		return errors.New(errors.ErrCodeBackendFailure, "fill %v outside screen %v", rect, r.metrics.Screen())
	}
	switch c {
	case Light:
		r.dc.SetColor(r.light)
	case Dark:
		r.dc.SetColor(r.dark)
	default:
		return errors.New(errors.ErrCodeBackendFailure, "unsupported color %v", c)
	}
	r.dc.DrawRectangle(float64(rect.TL.X), float64(rect.TL.Y), float64(rect.Width()), float64(rect.Height()))
	r.dc.Fill()
	r.fills++
	return nil
}

// Label draws s left-aligned inside rect using the current font face, in the
// color opposite to bg. It is used to annotate rendered previews.
func (r *Raster) Label(rect geom.Rectangle, s string, bg Color) {
	if bg == Light {
		r.dc.SetColor(r.dark)
	} else {
		r.dc.SetColor(r.light)
	}
	r.dc.DrawStringAnchored(s, float64(rect.TL.X)+4, float64(rect.TL.Y)+float64(rect.Height())/2, 0, 0.35)
}

// Fills returns the number of successful fills.
func (r *Raster) Fills() int { return r.fills }

// Image returns the backing image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeBackendFailure, err, "encode png")
	}
	return nil
}

var _ Surface = (*Raster)(nil)
