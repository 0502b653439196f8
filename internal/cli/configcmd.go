package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trustpane/pkg/config"
	"github.com/matzehuels/trustpane/pkg/errors"
)

// configCommand creates the config command for printing or writing the configuration.
func (c *CLI) configCommand() *cobra.Command {
	var (
		format   string
		initFile bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or initialize the configuration",
		Long: `Print the effective configuration, or write the defaults to a file.

Without flags the configuration in use (file values over built-in defaults) is
printed. With --init the built-in defaults are written to --config, or to
~/.config/trustpane/config.toml; an existing file is kept unless --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if !initFile {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				data, err := config.Marshal(format, cfg)
				if err != nil {
					return err
				}
				_, err = w.Write(data)
				return err
			}

			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("locate config directory: %w", err)
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess(w, "Config written")
			printFile(w, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml")
	cmd.Flags().BoolVar(&initFile, "init", false, "write the default configuration")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file with --init")

	return cmd
}
