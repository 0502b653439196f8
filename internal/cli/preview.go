package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/canvas"
	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/errors"
	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
	"github.com/matzehuels/trustpane/pkg/observability"
	"github.com/matzehuels/trustpane/pkg/shell"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Resize a layout interactively",
		Long: `Resize a layout interactively.

Up and down grow and shrink the input area (or the menu) by one regular text
line. Tab switches between the conversation and menu layouts. The screen map
and the canvas table update after every key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.sceneOpts(cfg)
			if err != nil {
				return err
			}
			// Log output would draw over the alternate screen.
			observability.Reset()
			m, err := newPreviewModel(cfg, opts.Kind, opts.BaseTrust, log.New(io.Discard))
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// =============================================================================
// previewModel - Interactive resize
// =============================================================================

type previewModel struct {
	cfg    config.Config
	logger *log.Logger
	kind   layout.Kind
	trust  int

	rec *gfx.Recorder
	sh  *shell.Shell
	h   shell.Handle

	regions []layout.Region
	height  int // current height of the resizable canvas
	corner  geom.Point
	err     error

	mapRows int
}

func newPreviewModel(cfg config.Config, kind layout.Kind, trust int, logger *log.Logger) (previewModel, error) {
	m := previewModel{cfg: cfg, logger: logger, kind: kind, trust: trust, mapRows: 24}
	if err := m.reset(); err != nil {
		return previewModel{}, err
	}
	return m, nil
}

// reset builds a fresh shell holding one layout of m.kind.
func (m *previewModel) reset() error {
	if m.trust < 0 || m.trust > int(canvas.MaxTrust) {
		return errors.New(errors.ErrCodeInvalidInput, "trust %d out of range", m.trust)
	}
	m.rec = gfx.NewRecorder(m.cfg.Display)
	sh, err := shell.New(m.rec, m.cfg, shell.WithLogger(m.logger))
	if err != nil {
		return err
	}
	h, err := sh.CreateLayout(m.kind, canvas.Trust(m.trust))
	if err != nil {
		return err
	}
	if err := sh.Clear(h); err != nil {
		return err
	}
	m.sh, m.h, m.corner, m.err = sh, h, geom.Point{}, nil
	return m.refresh()
}

// refresh reloads the regions and the resizable canvas's height.
func (m *previewModel) refresh() error {
	regions, err := m.sh.Regions(m.h)
	if err != nil {
		return err
	}
	m.regions = append([]layout.Region{statusRegion(m.sh.Status())}, regions...)
	for _, r := range regions {
		if r.Role == layout.RoleInput || r.Role == layout.RoleMenu {
			m.height = r.Clip.Height()
		}
	}
	m.rec.Reset()
	return nil
}

func (m *previewModel) resize(height int) {
	m.corner, m.err = m.sh.Resize(m.h, height)
	if err := m.refresh(); err != nil {
		m.err = err
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	step := m.cfg.Display.RegularLineHeight
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.resize(m.height + step)
		case "down", "j":
			m.resize(m.height - step)
		case "tab":
			if m.kind == layout.Conversation {
				m.kind = layout.Menu
			} else {
				m.kind = layout.Conversation
			}
			if err := m.reset(); err != nil {
				m.err = err
			}
		}
	case tea.WindowSizeMsg:
		m.mapRows = max(msg.Height-len(m.regions)-12, 8)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + m.kind.String()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  base trust %d  height %d", m.trust, m.height)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ resize  tab switch layout  q quit"))
	b.WriteString("\n\n")

	cols := m.mapRows * m.cfg.Display.Width * 2 / max(m.cfg.Display.Height, 1)
	b.WriteString(screenMap(m.cfg.Display, m.regions, cols, m.mapRows, true))
	b.WriteString("\n\n")
	b.WriteString(regionTable(m.regions))
	b.WriteString("\n")

	if m.corner != (geom.Point{}) {
		b.WriteString(StyleDim.Render("corner ") + StyleValue.Render(m.corner.String()) + "\n")
	}
	if m.err != nil {
		b.WriteString(StyleError.Render(errors.UserMessage(m.err)) + "\n")
	}
	return b.String()
}
