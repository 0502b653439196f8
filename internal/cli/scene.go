package cli

import (
	"bytes"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
	"github.com/matzehuels/trustpane/pkg/shell"
)

// roleStatus labels the shell's status canvas alongside layout roles.
const roleStatus layout.Role = "status"

// sceneOpts selects the layout to build and the resizes to apply.
type sceneOpts struct {
	Kind      layout.Kind
	BaseTrust int
	Heights   []int
	Check     bool
}

// step records one resize and the corner it returned.
type step struct {
	Height int        `json:"height"`
	Corner geom.Point `json:"corner"`
}

// scene is a fully built layout as reported by layout, render and serve.
type scene struct {
	Kind     string          `json:"kind"`
	Trust    int             `json:"base_trust"`
	Screen   geom.Point      `json:"screen"`
	Regions  []layout.Region `json:"regions"`
	Steps    []step          `json:"steps,omitempty"`
	Used     int             `json:"registry_used"`
	Capacity int             `json:"registry_capacity"`
}

// buildScene creates a shell over surface, places one layout, clears it and
// applies every requested resize in order. The status canvas is reported
// first in Regions.
func buildScene(surface gfx.Surface, cfg config.Config, opts sceneOpts, logger *log.Logger) (*scene, error) {
	if opts.BaseTrust < 0 || opts.BaseTrust > int(canvas.MaxTrust) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "trust %d out of range 0..%d", opts.BaseTrust, canvas.MaxTrust)
	}

	sh, err := shell.New(surface, cfg, shell.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	h, err := sh.CreateLayout(opts.Kind, canvas.Trust(opts.BaseTrust))
	if err != nil {
		return nil, err
	}
	if err := sh.Clear(h); err != nil {
		return nil, err
	}

	sc := &scene{Kind: opts.Kind.String(), Trust: opts.BaseTrust, Screen: cfg.Display.Screen().BR}
	for _, height := range opts.Heights {
		corner, err := sh.Resize(h, height)
		if err != nil {
			return nil, err
		}
		sc.Steps = append(sc.Steps, step{Height: height, Corner: corner})
	}
	if opts.Check {
		if err := sh.CheckDisjoint(); err != nil {
			return nil, err
		}
	}

	regions, err := sh.Regions(h)
	if err != nil {
		return nil, err
	}
	sc.Regions = append([]layout.Region{statusRegion(sh.Status())}, regions...)
	sc.Used, sc.Capacity = sh.Capacity()
	return sc, nil
}

func statusRegion(st canvas.Canvas) layout.Region {
	return layout.Region{Role: roleStatus, ID: st.ID(), Trust: st.Trust(), Rect: st.Rect(), Clip: st.Clip()}
}

// renderOpts extends sceneOpts with raster settings.
type renderOpts struct {
	sceneOpts
	Labels bool
	// FontMetrics derives line heights from the built-in bitmap face instead
	// of the configured display metrics.
	FontMetrics bool
}

// renderScene paints a scene with gfx.Raster and returns the PNG bytes.
func renderScene(cfg config.Config, opts renderOpts, logger *log.Logger) ([]byte, *scene, error) {
	prog := newProgress(logger)

	rasterOpts := []gfx.RasterOption{gfx.WithPalette(cfg.Render.Light, cfg.Render.Dark)}
	if opts.FontMetrics {
		rasterOpts = append(rasterOpts, gfx.WithFaces(basicfont.Face7x13, basicfont.Face7x13))
	}
	r, err := gfx.NewRaster(cfg.Display, rasterOpts...)
	if err != nil {
		return nil, nil, err
	}

	sc, err := buildScene(r, cfg, opts.sceneOpts, logger)
	if err != nil {
		return nil, nil, err
	}
	if opts.Labels {
		for _, reg := range sc.Regions {
			bg := gfx.Light
			if reg.Role == roleStatus || reg.Role == layout.RoleMenu {
				bg = gfx.Dark
			}
			r.Label(reg.Clip, string(reg.Role), bg)
		}
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, nil, err
	}
	prog.done("Rendered " + sc.Kind)
	return buf.Bytes(), sc, nil
}
