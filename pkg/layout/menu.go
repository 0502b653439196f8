package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/observability"
)

const (
	// MenuXPad is the horizontal inset on each side of the menu.
	MenuXPad = 35

	// MenuYPad is the distance from the top of the screen to the menu.
	MenuYPad = 100
)

// MenuLayout is a single dark popup pane.
type MenuLayout struct {
	menu canvas.ID

	minHeight int
	screen    geom.Point

	logger *log.Logger
}

// NewMenu registers a menu canvas one small text line tall.
func NewMenu(env Env, baseTrust canvas.Trust, opts ...Option) (l *MenuLayout, err error) {
	defer func() { observability.Layout().OnCreate(Menu.String(), 1, err) }()

	if err := checkEnv(env, baseTrust); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	screen, err := env.Surface.ScreenSize()
	if err != nil {
		return nil, backend(err, "screen size")
	}
	small, err := env.Surface.GlyphLineHeight(gfx.Small)
	if err != nil {
		return nil, backend(err, "small glyph height")
	}

	menu, err := canvas.New(menuRect(screen, small), baseTrust, env.IDs)
	if err != nil {
		return nil, err
	}
	if err := env.Registry.Insert(menu); err != nil {
		return nil, err
	}

	o.logger.Debug("menu layout created", "menu", menu.Rect(), "trust", baseTrust)

	return &MenuLayout{
		menu:      menu.ID(),
		minHeight: small,
		screen:    screen,
		logger:    o.logger,
	}, nil
}

func menuRect(screen geom.Point, height int) geom.Rectangle {
	return geom.Rect(MenuXPad, MenuYPad, screen.X-MenuXPad, MenuYPad+height)
}

func (l *MenuLayout) Kind() Kind { return Menu }

// Clear paints the menu dark.
func (l *MenuLayout) Clear(s gfx.Surface, reg *canvas.Registry) (err error) {
	defer func() { observability.Layout().OnClear(Menu.String(), err) }()

	c, err := reg.Get(l.menu)
	if err != nil {
		return err
	}
	if err := s.FillRectangle(c.Clip(), gfx.Dark); err != nil {
		return backend(err, "clear menu")
	}
	return nil
}

// Resize clamps height to [small line height, screen height - MenuYPad],
// moves the menu clip to that height, repaints it dark and returns its new
// bottom-right corner. The status canvas is not consulted.
func (l *MenuLayout) Resize(s gfx.Surface, height int, _ canvas.Canvas, reg *canvas.Registry) (geom.Point, error) {
	prev, err := reg.Get(l.menu)
	if err != nil {
		return geom.Point{}, err
	}

	applied := min(max(height, l.minHeight), l.MaxHeight())
	clip := menuRect(l.screen, applied)
	if clip.Degenerate() {
		return geom.Point{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"menu clip %v on a %v screen", clip, l.screen)
	}

	if err := reg.SetClip(l.menu, clip); err != nil {
		return geom.Point{}, err
	}
	if err := s.FillRectangle(clip, gfx.Dark); err != nil {
		restore(reg, []canvas.Canvas{prev})
		l.logger.Error("menu resize repaint failed", "rect", clip, "err", err)
		return geom.Point{}, backend(err, "repaint menu")
	}

	observability.Layout().OnResize(Menu.String(), height, applied, true)
	return clip.BR, nil
}

// MaxHeight returns the tallest the menu may grow.
func (l *MenuLayout) MaxHeight() int { return l.screen.Y - MenuYPad }

func (l *MenuLayout) InputCanvas() (canvas.ID, bool)      { return canvas.NilID, false }
func (l *MenuLayout) PredictionCanvas() (canvas.ID, bool) { return canvas.NilID, false }
func (l *MenuLayout) ContentCanvas() canvas.ID            { return l.menu }

// Regions returns the single menu canvas.
func (l *MenuLayout) Regions(reg *canvas.Registry) ([]Region, error) {
	r, err := region(reg, RoleMenu, l.menu)
	if err != nil {
		return nil, err
	}
	return []Region{r}, nil
}

func (*MenuLayout) sealed() {}

var _ Layout = (*MenuLayout)(nil)
