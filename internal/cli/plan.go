package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/internal/config"
	"github.com/VantageDataChat/imagedeck/layout"
)

// planCommand creates the plan command, a dry run of generate.
func (c *CLI) planCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [images or directories...]",
		Short: "Show where generate would place the images",
		Long: `Show the slides and image frames generate would produce, without writing
anything. Frames that are empty or extend past the slide edge are reported as
warnings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runPlan(cmd.Context(), cmd.OutOrStdout(), args, cfg)
		},
	}
	addLayoutFlags(cmd.Flags())
	addOutputFlags(cmd.Flags())
	return cmd
}

func (c *CLI) runPlan(ctx context.Context, w io.Writer, args []string, cfg config.Config) error {
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

	pres, err := imagedeck.OpenOrCreate(cfg.Output.Path, cfg.Output.Override)
	if err != nil {
		return err
	}
	existing := pres.SlideCount()
	if pres.IsNew() {
		dl, err := imagedeck.ParseLayout(cfg.Output.SlideSize)
		if err != nil {
			return err
		}
		pres.SetLayout(dl)
	}
	canvas := pres.CanvasSize()
	logger.Debug("planning", "canvas", canvas, "existing", existing)

	plans, err := assembler.Plan(refs, canvas, s)
	if err != nil {
		return err
	}

	p := printer{w}
	p.title(fmt.Sprintf("%s on %s, %s", plural(len(refs), "image"), plural(len(plans), "slide"), canvas))
	if !pres.IsNew() {
		p.info("appending to %s after %s", cfg.Output.Path, plural(existing, "slide"))
		if shapes, parts := pres.DroppedShapes(), pres.DroppedParts(); shapes+parts > 0 {
			if cfg.Output.DiscardUnsupported {
				p.warning("%s and %s besides pictures will be discarded", plural(shapes, "shape"), plural(parts, "part"))
			} else {
				p.warning("generate will refuse to append: %s and %s besides pictures would be lost", plural(shapes, "shape"), plural(parts, "part"))
			}
		}
	}

	warnings := 0
	for i, sp := range plans {
		p.newline()
		p.keyValue(fmt.Sprintf("Slide %d", existing+i+1), plural(len(sp.Images), "image"))
		for j, ref := range sp.Images {
			pl := sp.Placements[j]
			p.detail("%-24s x=%s y=%s  %s x %s", filepath.Base(ref), pl.X, pl.Y, pl.Width, pl.Height)
			if msg := frameProblem(pl.Rect, canvas); msg != "" {
				p.warning("%s: %s", filepath.Base(ref), msg)
				warnings++
			}
		}
	}
	p.newline()
	if warnings > 0 {
		p.error("%s; check the margins and spacing", plural(warnings, "frame problem"))
		return nil
	}
	p.success("Layout fits the slide")
	return nil
}

// frameProblem describes why r is not a usable frame on canvas, or "".
func frameProblem(r layout.Rect, canvas layout.Canvas) string {
	switch {
	case r.Empty():
		return fmt.Sprintf("empty frame (%s x %s)", r.Width, r.Height)
	case !r.Within(canvas):
		return "frame extends past the slide edge"
	}
	return ""
}
