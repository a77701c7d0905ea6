package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/internal/config"
)

// expandImages resolves command arguments to image files. Files are kept in
// argument order; a directory contributes the supported images directly
// inside it, sorted by name.
func expandImages(args []string) ([]string, error) {
	var refs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", arg, err)
		}
		if !info.IsDir() {
			if !imagedeck.IsImageFile(arg) {
				return nil, fmt.Errorf("%s: %w", arg, imagedeck.ErrUnsupportedImage)
			}
			refs = append(refs, arg)
			continue
		}
		imgs, err := imagedeck.ImagesInDir(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, imgs...)
	}
	return refs, nil
}

// addLayoutFlags registers the flags that override the layout section.
func addLayoutFlags(f *pflag.FlagSet) {
	d := config.Default().Layout
	f.Float64("top-margin", d.TopMargin, "top margin in inches")
	f.Float64("left-margin", d.LeftMargin, "left margin in inches")
	f.Float64("right-margin", d.RightMargin, "right margin in inches")
	f.Float64("bottom-margin", d.BottomMargin, "bottom margin in inches")
	f.Float64("h-spacing", d.HSpacing, "horizontal gap between images in inches")
	f.Float64("v-spacing", d.VSpacing, "vertical gap between images in inches")
	f.Float64("line-width", d.LineWidth, "border width in points (0 disables the border)")
	f.String("color", d.Color, "border color: hex (#0066cc) or CSS name (springgreen)")
	f.Bool("rounded", d.Rounded, "clip images to rounded rectangles")
}

// addOutputFlags registers the flags that override the output section.
func addOutputFlags(f *pflag.FlagSet) {
	d := config.Default().Output
	f.StringP("output", "o", d.Path, "presentation to create or append to")
	f.Bool("override", d.Override, "replace the output instead of appending to it")
	f.String("slide-size", d.SlideSize, "slide size for new presentations: 4x3, 16x9, 16x10, a4, letter")
	f.Bool("discard-unsupported", d.DiscardUnsupported, "append even if text, shapes or notes of the output are lost")
}
