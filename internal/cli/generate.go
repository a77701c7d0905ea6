package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/internal/config"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [images or directories...]",
		Short: "Add images to a presentation, up to four per slide",
		Long: `Add images to a presentation, up to four per slide.

Images are placed in the order given; a directory adds the images inside it
sorted by name. Every four images start a new blank slide. When the output
already exists the slides are appended to it unless --override is set.

Only pictures survive an append. If the existing file has text, shapes,
notes or other content, generate stops without writing; pass
--discard-unsupported to append anyway and lose that content.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), args, cfg)
		},
	}
	addLayoutFlags(cmd.Flags())
	addOutputFlags(cmd.Flags())
	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, w io.Writer, args []string, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	refs, err := expandImages(args)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return fmt.Errorf("%w in %s", assembler.ErrEmptyInput, strings.Join(args, ", "))
	}
	s, err := cfg.Settings()
	if err != nil {
		return err
	}
	logger.Debug("layout settings", "settings", s)

	g := imagedeck.NewGenerator(s)
	g.Logger = logger
	g.DiscardUnsupported = cfg.Output.DiscardUnsupported

	prog := newProgress(logger)
	res, err := g.Generate(ctx, imagedeck.Request{
		Images:    refs,
		Output:    cfg.Output.Path,
		Override:  cfg.Output.Override,
		SlideSize: cfg.Output.SlideSize,
	})
	if errors.Is(err, imagedeck.ErrLossyAppend) {
		return fmt.Errorf("%w; use --override to replace the file or --discard-unsupported to append anyway", err)
	}
	if err != nil {
		return err
	}
	prog.done("Added " + plural(res.SlidesAdded, "slide"))

	p := printer{w}
	p.success("Presentation saved")
	p.file(res.Output)
	p.stats(plural(res.Images, "image"), plural(res.SlidesAdded, "new slide"), plural(res.TotalSlides, "slide")+" total")
	return nil
}
