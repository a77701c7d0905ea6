package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/imagedeck/internal/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var (
		user  bool
		force bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default values",
		Long: `Write a config file with the default values.

Without a path the file is written to ./` + config.FileName + `, or to the user
config directory with --user.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			switch {
			case len(args) == 1:
				path = args[0]
			case user:
				p, err := config.UserPath()
				if err != nil {
					return fmt.Errorf("locate user config: %w", err)
				}
				path = p
			}
			return c.runConfigInit(cmd.Context(), cmd.OutOrStdout(), path, force)
		},
	}
	cmd.Flags().BoolVar(&user, "user", false, "write to the user config directory")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) runConfigInit(ctx context.Context, w io.Writer, path string, force bool) error {
	if err := config.Write(path, config.Default(), force); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("config written", "path", path)

	p := printer{w}
	p.success("Config file written")
	p.file(path)
	return nil
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if used := c.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(w, "# %s\n", used)
			}
			return cfg.Encode(w)
		},
	}
}
