package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/observability"
)

const (
	// Margin pads the input and predictive panes above and below a text line.
	Margin = 4

	// MinContentHeight is the content pane height a resize must exceed.
	MinContentHeight = 64
)

// ConversationLayout is the three-pane chat layout: content on top, an input
// pane in the middle and a predictive-text pane pinned to the bottom.
type ConversationLayout struct {
	content    canvas.ID
	input      canvas.ID
	predictive canvas.ID

	// Bookkeeping to validate resizes without re-querying the surface.
	minContentHeight int
	minInputHeight   int
	screen           geom.Point
	smallHeight      int
	regularHeight    int

	logger *log.Logger
}

// NewConversation lays out and registers the predictive, input and content
// canvases. Predictive and input panes get baseTrust; content gets half of
// it. The registry is untouched if any canvas cannot be created or does not
// fit.
func NewConversation(env Env, baseTrust canvas.Trust, opts ...Option) (l *ConversationLayout, err error) {
	defer func() { observability.Layout().OnCreate(Conversation.String(), 3, err) }()

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
	regular, err := env.Surface.GlyphLineHeight(gfx.Regular)
	if err != nil {
		return nil, backend(err, "regular glyph height")
	}

	predictive, err := canvas.New(
		geom.Rect(0, screen.Y-regular-Margin*2, screen.X, screen.Y),
		baseTrust, env.IDs)
	if err != nil {
		return nil, err
	}

	minInput := regular + Margin*2
	input, err := canvas.New(geom.VStack(predictive.Clip(), -minInput), baseTrust, env.IDs)
	if err != nil {
		return nil, err
	}

	content, err := canvas.New(geom.VSpan(env.Status.Clip(), input.Clip()), baseTrust/2, env.IDs)
	if err != nil {
		return nil, err
	}

	if err := env.Registry.InsertAll(predictive, input, content); err != nil {
		return nil, err
	}

	o.logger.Debug("conversation layout created",
		"content", content.Rect(), "input", input.Rect(), "predictive", predictive.Rect(),
		"trust", baseTrust, "content_trust", content.Trust())

	return &ConversationLayout{
		content:          content.ID(),
		input:            input.ID(),
		predictive:       predictive.ID(),
		minContentHeight: MinContentHeight,
		minInputHeight:   minInput,
		screen:           screen,
		smallHeight:      small,
		regularHeight:    regular,
		logger:           o.logger,
	}, nil
}

func (l *ConversationLayout) Kind() Kind { return Conversation }

// Clear paints content, predictive and input light, in that order.
func (l *ConversationLayout) Clear(s gfx.Surface, reg *canvas.Registry) (err error) {
	defer func() { observability.Layout().OnClear(Conversation.String(), err) }()

	for _, id := range []canvas.ID{l.content, l.predictive, l.input} {
		c, err := reg.Get(id)
		if err != nil {
			return err
		}
		if err := s.FillRectangle(c.Clip(), gfx.Light); err != nil {
			return backend(err, "clear canvas")
		}
	}
	return nil
}

// Resize sets the input pane height to height, floored at the minimum input
// height, and lets the content pane absorb the difference. If the content
// pane would be MinContentHeight or shorter, nothing changes and the input
// canvas's current bottom-right corner is returned. Otherwise both clip
// rectangles are updated and repainted and the new content bottom-right
// corner is returned.
func (l *ConversationLayout) Resize(s gfx.Surface, height int, status canvas.Canvas, reg *canvas.Registry) (geom.Point, error) {
	input, err := reg.Get(l.input)
	if err != nil {
		return geom.Point{}, err
	}
	predictive, err := reg.Get(l.predictive)
	if err != nil {
		return geom.Point{}, err
	}
	content, err := reg.Get(l.content)
	if err != nil {
		return geom.Point{}, err
	}

	applied := max(height, l.minInputHeight)
	newInput := geom.VStack(predictive.Clip(), -applied)
	newContent := geom.VSpan(status.Clip(), newInput)

	if newContent.Height() <= l.minContentHeight {
		l.logger.Debug("conversation resize rejected",
			"requested", height, "applied", applied, "content_height", newContent.Height())
		observability.Layout().OnResize(Conversation.String(), height, applied, false)
		return input.Clip().BR, nil
	}

	saved := []canvas.Canvas{input, content}
	if err := reg.SetClip(l.input, newInput); err != nil {
		return geom.Point{}, err
	}
	if err := reg.SetClip(l.content, newContent); err != nil {
		restore(reg, saved)
		return geom.Point{}, err
	}
	for _, r := range []geom.Rectangle{newInput, newContent} {
		if err := s.FillRectangle(r, gfx.Light); err != nil {
			restore(reg, saved)
			l.logger.Error("conversation resize repaint failed", "rect", r, "err", err)
			return geom.Point{}, backend(err, "repaint resized canvas")
		}
	}

	observability.Layout().OnResize(Conversation.String(), height, applied, true)
	return newContent.BR, nil
}

func (l *ConversationLayout) InputCanvas() (canvas.ID, bool)      { return l.input, true }
func (l *ConversationLayout) PredictionCanvas() (canvas.ID, bool) { return l.predictive, true }
func (l *ConversationLayout) ContentCanvas() canvas.ID            { return l.content }

// MinInputHeight returns the floor applied to requested input heights.
func (l *ConversationLayout) MinInputHeight() int { return l.minInputHeight }

// Regions returns content, predictive and input, in paint order.
func (l *ConversationLayout) Regions(reg *canvas.Registry) ([]Region, error) {
	out := make([]Region, 0, 3)
	for _, p := range []struct {
		role Role
		id   canvas.ID
	}{
		{RoleContent, l.content},
		{RolePredictive, l.predictive},
		{RoleInput, l.input},
	} {
		r, err := region(reg, p.role, p.id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (*ConversationLayout) sealed() {}

var _ Layout = (*ConversationLayout)(nil)
