// Package cli implements the imagedeck command-line interface.
//
// # Commands
//
//   - generate: lay images out four to a slide and write a .pptx
//   - plan: print the slides and placements generate would produce
//   - preview: render the slides of a .pptx to PNG or JPEG files
//   - config: write or show the configuration file
//   - gui: open the desktop window
//
// # Configuration
//
// Every layout and output flag can also be set in imagedeck.toml or through
// IMAGEDECK_* environment variables; see package config. Flags win over the
// environment, which wins over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed to commands through context.Context.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/internal/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrNoGUI is returned by the gui command when no GUI was registered.
var ErrNoGUI = errors.New("this build has no GUI")

// GUIFunc opens the desktop window and blocks until it is closed.
type GUIFunc func(ctx context.Context, cfg config.Config, logger *log.Logger) error

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// GUI backs the gui command. Nil makes the command fail with ErrNoGUI.
	GUI GUIFunc

	v          *viper.Viper
	configFile string
	verbose    bool
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "imagedeck",
		Short: "imagedeck lays images out on PowerPoint slides",
		Long: `imagedeck places images on slides of a .pptx presentation, up to four per
slide, in a grid sized by configurable margins and spacing, with optional
borders and rounded corners.`,
		Version:           imagedeck.BuildInfo(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate("imagedeck {{.Version}}\n")

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default: ./"+config.FileName+" or the user config dir)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.guiCommand())

	return root
}

// setup reads the configuration and attaches the logger to the context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	used, err := config.Setup(c.v, c.configFile)
	if err != nil {
		return err
	}

	level := LogInfo
	if lvl, err := log.ParseLevel(c.v.GetString("log.level")); err == nil {
		level = lvl
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if used != "" {
		c.Logger.Debug("config loaded", "file", used)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// loadConfig binds the command's flags to their config keys and returns the
// effective configuration.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := c.v.BindPFlag(key, f); err != nil {
				return config.Config{}, err
			}
		}
	}
	return config.Load(c.v)
}

// flagKeys maps config keys to the flags that set them.
var flagKeys = map[string]string{
	"layout.top_margin":          "top-margin",
	"layout.left_margin":         "left-margin",
	"layout.right_margin":        "right-margin",
	"layout.bottom_margin":       "bottom-margin",
	"layout.h_spacing":           "h-spacing",
	"layout.v_spacing":           "v-spacing",
	"layout.line_width":          "line-width",
	"layout.color":               "color",
	"layout.rounded":             "rounded",
	"output.path":                "output",
	"output.override":            "override",
	"output.slide_size":          "slide-size",
	"output.discard_unsupported": "discard-unsupported",
	"preview.width":              "width",
	"preview.format":             "format",
}
