package layout

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
)

// Kind identifies a layout strategy.
type Kind int

const (
	Conversation Kind = iota
	Menu
)

// Kinds lists every layout kind.
var Kinds = []Kind{Conversation, Menu}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Conversation:
		return "conversation"
	case Menu:
		return "menu"
	}
	return "unknown"
}

// ParseKind maps a kind name to its Kind. "chat" is accepted for
// Conversation.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conversation", "chat":
		return Conversation, nil
	case "menu":
		return Menu, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown layout kind %q (want conversation or menu)", s)
}

// Role names the purpose of a canvas within its layout.
type Role string

const (
	RoleContent    Role = "content"
	RoleInput      Role = "input"
	RolePredictive Role = "predictive"
	RoleMenu       Role = "menu"
)

// Region describes one owned canvas as it currently stands in the registry.
type Region struct {
	Role  Role           `json:"role"`
	ID    canvas.ID      `json:"id"`
	Trust canvas.Trust   `json:"trust"`
	Rect  geom.Rectangle `json:"rect"`
	Clip  geom.Rectangle `json:"clip"`
}

// Layout is implemented by ConversationLayout and MenuLayout only.
type Layout interface {
	// Kind reports which strategy this is.
	Kind() Kind

	// Clear repaints every owned canvas's clip rectangle with its background.
	Clear(s gfx.Surface, reg *canvas.Registry) error

	// Resize recomputes geometry for the requested height and either commits
	// and repaints or leaves the registry unchanged. It returns the
	// bottom-right corner of the governing rectangle after the call.
	Resize(s gfx.Surface, height int, status canvas.Canvas, reg *canvas.Registry) (geom.Point, error)

	// InputCanvas returns the input canvas, if the layout has one.
	InputCanvas() (canvas.ID, bool)

	// PredictionCanvas returns the predictive-text canvas, if the layout has one.
	PredictionCanvas() (canvas.ID, bool)

	// ContentCanvas returns the canvas for general content drawing.
	ContentCanvas() canvas.ID

	// Regions returns the owned canvases in paint order.
	Regions(reg *canvas.Registry) ([]Region, error)

	sealed()
}

// Env bundles the collaborators a layout is created against.
type Env struct {
	Surface  gfx.Surface
	IDs      canvas.IDSource
	Status   canvas.Canvas
	Registry *canvas.Registry
}

// Option configures layout creation.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes layout diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a layout of the given kind. baseTrust may not exceed the
// status canvas's trust.
func New(kind Kind, env Env, baseTrust canvas.Trust, opts ...Option) (Layout, error) {
	switch kind {
	case Conversation:
		l, err := NewConversation(env, baseTrust, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	case Menu:
		l, err := NewMenu(env, baseTrust, opts...)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "layout kind %d", int(kind))
}

func checkEnv(env Env, baseTrust canvas.Trust) error {
	if env.Surface == nil || env.IDs == nil || env.Registry == nil {
		return errors.New(errors.ErrCodeInvalidInput, "layout environment needs a surface, an id source and a registry")
	}
	return errors.ValidateTrust(int(baseTrust), int(env.Status.Trust()))
}

// backend tags an untyped collaborator error as BACKEND_FAILURE.
func backend(err error, what string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeBackendFailure, err, "%s", what)
}

// restore puts back clip rectangles saved before a commit. Errors are
// ignored: the ids were found moments ago and nothing can remove them.
func restore(reg *canvas.Registry, saved []canvas.Canvas) {
	for _, c := range saved {
		_ = reg.SetClip(c.ID(), c.Clip())
	}
}

func region(reg *canvas.Registry, role Role, id canvas.ID) (Region, error) {
	c, err := reg.Get(id)
	if err != nil {
		return Region{}, err
	}
	return Region{Role: role, ID: id, Trust: c.Trust(), Rect: c.Rect(), Clip: c.Clip()}, nil
}
