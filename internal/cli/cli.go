package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/buildinfo"
	"github.com/matzehuels/trustpane/pkg/cache"
	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const appName = "trustpane"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Trustpane partitions a small screen into trust-tagged canvases",
		Long: `Trustpane computes the canvas layouts of a trusted display: a status bar
owned by the system and, below it, conversation or menu layouts whose canvases
carry a trust level and never overlap.

Use it to inspect geometry, render previews, explore resizes interactively,
or serve layouts over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetLayoutHooks(hooks)
			observability.SetRegistryHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ~/.config/trustpane/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config when given, otherwise the default location if
// it exists, otherwise the built-in defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.LoadOrDefault(path)
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/trustpane/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
