package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/cache"
	"github.com/matzehuels/trustpane/pkg/config"
)

// renderTTL bounds how long rendered previews stay in the local cache.
const renderTTL = 7 * 24 * time.Hour

// renderCommand creates the render command for painting a layout to PNG.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		noCache  bool
		labels   bool
		fontFace bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Paint a layout into a PNG image",
		Long: `Paint a layout into a PNG image.

Canvases are filled the way the display would fill them: conversation
canvases light, the menu dark, everything else left dark. With --labels
each canvas is annotated with its role.

Images are cached locally; identical requests are served from the cache.`,
		Example: `  trustpane render -o chat.png
  trustpane render -k menu -r 200 --labels=false`,
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
			if !cmd.Flags().Changed("labels") {
				labels = cfg.Render.Labels
			}
			if output == "" {
				output = opts.Kind.String() + ".png"
			}
			ropts := renderOpts{sceneOpts: opts, Labels: labels, FontMetrics: fontFace}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cfg, ropts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <kind>.png)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&labels, "labels", true, "annotate canvases with their role (default from config)")
	cmd.Flags().BoolVar(&fontFace, "font-metrics", false, "take line heights from the built-in 7x13 font")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, cfg config.Config, opts renderOpts, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	store, err := newCache(noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	key := renderKey(cfg, opts)
	png, hit, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if !hit {
		png, _, err = renderScene(cfg, opts, logger)
		if err != nil {
			return fmt.Errorf("render %s layout: %w", opts.Kind, err)
		}
		if err := store.Set(ctx, key, png, renderTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	if err := os.WriteFile(output, png, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess(w, "Render complete")
	printFile(w, output)
	printStats(w, []string{
		opts.Kind.String(),
		fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height),
		fmt.Sprintf("%d resizes", len(opts.Heights)),
	}, hit)
	fmt.Fprintln(w)
	printNextStep(w, "Inspect", "trustpane layout -k "+opts.Kind.String())
	return nil
}

// renderKey identifies a rendering for the cache.
func renderKey(cfg config.Config, opts renderOpts) string {
	return cache.RenderKey(cache.RenderKeyOpts{
		Kind:      opts.Kind.String(),
		BaseTrust: opts.BaseTrust,
		Heights:   opts.Heights,
		Metrics:   cfg.Display,
		Status:    cfg.Status.Height,
		Light:     cfg.Render.Light,
		Dark:      cfg.Render.Dark,
		Labels:    opts.Labels,
		FontFace:  opts.FontMetrics,
	})
}
