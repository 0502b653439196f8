// Package shell is the owner of a canvas registry and the entry point the
// focus manager and transport layers talk to.
//
// A [Shell] creates the registry, places the status bar canvas across the top
// of the screen at the highest configured trust, and hands out [Handle]
// values for the layouts it instantiates. Every method takes the shell's
// mutex, so a Shell is safe to share between goroutines even though the
// registry and layouts are not.
//
//	sh, err := shell.New(surface, config.Default())
//	h, err := sh.CreateLayout(layout.Conversation, 254)
//	br, err := sh.Resize(h, 60) // keyboard shown
package shell

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
)

// Handle names a layout created by a Shell.
type Handle int

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used by the shell and the layouts it creates.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDSource replaces the random UUID token generator.
func WithIDSource(ids canvas.IDSource) Option {
	return func(s *Shell) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// Shell owns a registry, a status canvas and the layouts placed on it.
type Shell struct {
	mu       sync.Mutex
	surface  gfx.Surface
	ids      canvas.IDSource
	registry *canvas.Registry
	status   canvas.Canvas
	layouts  []layout.Layout
	logger   *log.Logger
}

// New builds a shell over surface. The status canvas spans the full screen
// width at the top with cfg.Status height and trust.
func New(surface gfx.Surface, cfg config.Config, opts ...Option) (*Shell, error) {
	s := &Shell{
		surface:  surface,
		ids:      canvas.UUIDSource{},
		registry: canvas.NewRegistry(cfg.Registry.Capacity),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	screen, err := surface.ScreenSize()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendFailure, err, "screen size")
	}
	if cfg.Status.Trust < 0 || cfg.Status.Trust > int(canvas.MaxTrust) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "status trust %d", cfg.Status.Trust)
	}
	status, err := canvas.New(geom.Rect(0, 0, screen.X, cfg.Status.Height), canvas.Trust(cfg.Status.Trust), s.ids)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Insert(status); err != nil {
		return nil, err
	}
	s.status = status

	s.logger.Debug("shell ready", "screen", screen, "status", status.Rect(), "capacity", s.registry.Cap())
	return s, nil
}

// CreateLayout instantiates a layout at baseTrust and returns its handle.
func (s *Shell) CreateLayout(kind layout.Kind, baseTrust canvas.Trust) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := layout.New(kind, layout.Env{
		Surface:  s.surface,
		IDs:      s.ids,
		Status:   s.status,
		Registry: s.registry,
	}, baseTrust, layout.WithLogger(s.logger))
	if err != nil {
		return -1, err
	}
	s.layouts = append(s.layouts, l)
	return Handle(len(s.layouts) - 1), nil
}

// Clear blanks every canvas owned by the layout.
func (s *Shell) Clear(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return err
	}
	return l.Clear(s.surface, s.registry)
}

// Resize applies a new height to the layout; see layout.Layout.Resize.
func (s *Shell) Resize(h Handle, height int) (geom.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return geom.Point{}, err
	}
	br, err := l.Resize(s.surface, height, s.status, s.registry)
	if errors.Fatal(err) {
		s.logger.Error("layout invariant broken", "handle", h, "kind", l.Kind(), "err", err)
	}
	return br, err
}

// Kind returns the layout kind behind h.
func (s *Shell) Kind(h Handle) (layout.Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return 0, err
	}
	return l.Kind(), nil
}

// ContentCanvas returns the layout's content canvas.
func (s *Shell) ContentCanvas(h Handle) (canvas.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return canvas.NilID, err
	}
	return l.ContentCanvas(), nil
}

// InputCanvas returns the layout's input canvas, if any.
func (s *Shell) InputCanvas(h Handle) (canvas.ID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return canvas.NilID, false, err
	}
	id, ok := l.InputCanvas()
	return id, ok, nil
}

// PredictionCanvas returns the layout's predictive-text canvas, if any.
func (s *Shell) PredictionCanvas(h Handle) (canvas.ID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return canvas.NilID, false, err
	}
	id, ok := l.PredictionCanvas()
	return id, ok, nil
}

// Regions describes the canvases owned by the layout.
func (s *Shell) Regions(h Handle) ([]layout.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.layout(h)
	if err != nil {
		return nil, err
	}
	return l.Regions(s.registry)
}

// Canvas returns a copy of a registered canvas.
func (s *Shell) Canvas(id canvas.ID) (canvas.Canvas, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Get(id)
}

// Status returns the status canvas.
func (s *Shell) Status() canvas.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Canvases returns a copy of every registered canvas, status first.
func (s *Shell) Canvases() []canvas.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Snapshot()
}

// CheckDisjoint verifies that no two canvases placed by layouts overlap.
// The status canvas is included.
func (s *Shell) CheckDisjoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.CheckDisjoint(s.registry.IDs()...)
}

// Layouts returns the handles of all created layouts.
func (s *Shell) Layouts() []Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	hs := make([]Handle, len(s.layouts))
	for i := range s.layouts {
		hs[i] = Handle(i)
	}
	return hs
}

// Capacity reports registry usage.
func (s *Shell) Capacity() (used, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Len(), s.registry.Cap()
}

func (s *Shell) layout(h Handle) (layout.Layout, error) {
	if h < 0 || int(h) >= len(s.layouts) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no layout with handle %d", h)
	}
	return s.layouts[h], nil
}
