package gfx

import (
	"fmt"

	"github.com/matzehuels/trustpane/pkg/geom"
)

// GlyphStyle selects a font size class.
type GlyphStyle int

const (
	Small GlyphStyle = iota
	Regular
)

// String returns "small" or "regular".
func (s GlyphStyle) String() string {
	switch s {
	case Small:
		return "small"
	case Regular:
		return "regular"
	}
	return fmt.Sprintf("GlyphStyle(%d)", int(s))
}

// Color is a background fill. The display is monochrome.
type Color int

const (
	Light Color = iota
	Dark
)

// String returns "light" or "dark".
func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Surface is the graphics backend contract.
type Surface interface {
	// ScreenSize returns the display width and height in pixels.
	ScreenSize() (geom.Point, error)

	// GlyphLineHeight returns the line height of a glyph style in pixels.
	GlyphLineHeight(style GlyphStyle) (int, error)

	// FillRectangle paints r with c.
	FillRectangle(r geom.Rectangle, c Color) error
}

// Metrics describes a display and its fonts.
type Metrics struct {
	Width             int `toml:"width" yaml:"width" json:"width"`
	Height            int `toml:"height" yaml:"height" json:"height"`
	SmallLineHeight   int `toml:"small_line_height" yaml:"small_line_height" json:"small_line_height"`
	RegularLineHeight int `toml:"regular_line_height" yaml:"regular_line_height" json:"regular_line_height"`
}

// DefaultMetrics matches the 336x536 monochrome panel.
var DefaultMetrics = Metrics{
	Width:             336,
	Height:            536,
	SmallLineHeight:   12,
	RegularLineHeight: 14,
}

// Screen returns the full-screen rectangle.
func (m Metrics) Screen() geom.Rectangle {
	return geom.Rect(0, 0, m.Width, m.Height)
}

// LineHeight returns the line height for style.
func (m Metrics) LineHeight(style GlyphStyle) (int, error) {
	switch style {
	case Small:
		return m.SmallLineHeight, nil
	case Regular:
		return m.RegularLineHeight, nil
	}
	return 0, fmt.Errorf("unknown glyph style %v", style)
}
