package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
)

// layoutFlags are shared by every command that builds a single layout.
type layoutFlags struct {
	kind    string
	trust   int
	heights []int
}

// register adds --kind, --trust and --resize to cmd.
func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "layout kind: conversation, menu (default from config)")
	cmd.Flags().IntVarP(&f.trust, "trust", "t", -1, "base trust level 0-255 (default from config)")
	cmd.Flags().IntSliceVarP(&f.heights, "resize", "r", nil, "heights to apply in order, e.g. 40,120,10")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
}

// sceneOpts resolves the flags against cfg.
func (f *layoutFlags) sceneOpts(cfg config.Config) (sceneOpts, error) {
	opts := sceneOpts{Kind: cfg.LayoutKind(), BaseTrust: cfg.Layout.BaseTrust, Heights: f.heights}
	if f.kind != "" {
		k, err := layout.ParseKind(f.kind)
		if err != nil {
			return sceneOpts{}, err
		}
		opts.Kind = k
	}
	if f.trust >= 0 {
		opts.BaseTrust = f.trust
	}
	return opts, nil
}

// layoutCommand creates the layout command for inspecting canvas geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		asJSON  bool
		check   bool
		showMap bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the canvases of a layout",
		Long: `Print the canvases of a layout.

The layout is placed below the status bar, cleared, and then resized once per
--resize value. The table lists every canvas with its trust level, its fixed
rectangle and its current clip. Each resize prints the corner it returned.

With --check the command fails if any two canvases overlap.`,
		Example: `  trustpane layout
  trustpane layout -k menu -r 1000
  trustpane layout -r 60,417,418 --json`,
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
			opts.Check = check
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cfg, opts, asJSON, showMap)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&check, "check", false, "fail if any canvases overlap")
	cmd.Flags().BoolVar(&showMap, "map", false, "draw a character map of the screen")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, w io.Writer, cfg config.Config, opts sceneOpts, asJSON, showMap bool) error {
	logger := loggerFromContext(ctx)

	sc, err := buildScene(gfx.NewRecorder(cfg.Display), cfg, opts, logger)
	if err != nil {
		return fmt.Errorf("build %s layout: %w", opts.Kind, err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s layout", sc.Kind))+" "+
		StyleDim.Render(fmt.Sprintf("%dx%d, base trust %d", sc.Screen.X, sc.Screen.Y, sc.Trust)))
	fmt.Fprintln(w, regionTable(sc.Regions))
	for _, s := range sc.Steps {
		printInfo(w, "resize %s %s %s", StyleNumber.Render(fmt.Sprint(s.Height)), StyleDim.Render(iconArrow), StyleValue.Render(s.Corner.String()))
	}
	if showMap {
		fmt.Fprintln(w, screenMap(cfg.Display, sc.Regions, 28, 24, true))
	}
	if opts.Check {
		printSuccess(w, "%d canvases, no overlaps", len(sc.Regions))
	}
	if sc.Capacity-sc.Used < 4 {
		printWarning(w, "registry nearly full: %d of %d slots used", sc.Used, sc.Capacity)
	}
	return nil
}
