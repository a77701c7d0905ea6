package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/internal/config"
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "preview [file.pptx]",
		Short: "Render the slides of a presentation to images",
		Long: `Render every slide of a presentation to a PNG or JPEG file.

The output pattern must contain %d, which is replaced by the slide number.
By default the files are written next to the presentation as
<name>_slide_<n>.<format>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), cmd.OutOrStdout(), args[0], pattern, cfg)
		},
	}

	d := config.Default().Preview
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "output file pattern (default: <input>_slide_%d.<format>)")
	cmd.Flags().Int("width", d.Width, "image width in pixels")
	cmd.Flags().String("format", d.Format, "image format: png, jpg")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, w io.Writer, input, pattern string, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	format, err := imagedeck.ParseImageFormat(cfg.Preview.Format)
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = strings.TrimSuffix(input, filepath.Ext(input)) + "_slide_%d." + format.Extension()
	}
	if !strings.Contains(pattern, "%d") {
		return fmt.Errorf("pattern %q has no %%d for the slide number", pattern)
	}

	pres, err := imagedeck.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	if n := pres.DroppedShapes(); n > 0 {
		logger.Warn("only pictures are rendered", "skipped", n)
	}
	if pres.SlideCount() == 0 {
		printer{w}.warning("%s has no slides", input)
		return nil
	}

	opts := imagedeck.DefaultRenderOptions()
	opts.Width = cfg.Preview.Width
	opts.Format = format

	prog := newProgress(logger)
	paths, err := pres.SaveSlidesAsImages(pattern, opts)
	if err != nil {
		return err
	}
	prog.done("Rendered " + plural(len(paths), "slide"))

	p := printer{w}
	p.success("Preview written")
	for _, path := range paths {
		p.file(path)
	}
	return nil
}
