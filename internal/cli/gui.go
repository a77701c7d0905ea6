package cli

import (
	"github.com/spf13/cobra"
)

// guiCommand creates the gui command.
func (c *CLI) guiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Long: `Open the desktop window for picking images, adjusting the layout and
generating the presentation. The form starts from the effective configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.GUI == nil {
				return ErrNoGUI
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.GUI(cmd.Context(), cfg, loggerFromContext(cmd.Context()))
		},
	}
}
