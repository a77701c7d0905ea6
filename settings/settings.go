// Package settings holds the margin, spacing and border configuration used to
// lay images out on a slide.
package settings

import (
	"fmt"
)

// Default values, matching a 4:3 slide with room for a title band at the top.
const (
	DefaultTopMargin    Inches = 1.35
	DefaultLeftMargin   Inches = 0.53
	DefaultRightMargin  Inches = 0.53
	DefaultBottomMargin Inches = 0.66
	DefaultHSpacing     Inches = 0.5
	DefaultVSpacing     Inches = 0.5
	DefaultLineWidth    Points = 2.25
)

// DefaultColor is the default border color.
var DefaultColor = RGB{R: 0, G: 102, B: 204}

// Settings describes how images are placed on a slide.
//
// Lengths are stored as-is: negative or oversized values are accepted and
// simply produce degenerate rectangles. The border color is validated on
// every assignment and can only be changed through the SetColor methods.
type Settings struct {
	TopMargin    Inches
	LeftMargin   Inches
	RightMargin  Inches
	BottomMargin Inches

	// HSpacing is the gap between horizontally adjacent images.
	HSpacing Inches
	// VSpacing is the gap between vertically adjacent images.
	VSpacing Inches

	// LineWidth is the border width. Zero disables the border.
	LineWidth Points

	// Rounded draws images inside a rounded rectangle.
	Rounded bool

	color RGB
}

// Default returns Settings populated with the default values.
func Default() Settings {
	return Settings{
		TopMargin:    DefaultTopMargin,
		LeftMargin:   DefaultLeftMargin,
		RightMargin:  DefaultRightMargin,
		BottomMargin: DefaultBottomMargin,
		HSpacing:     DefaultHSpacing,
		VSpacing:     DefaultVSpacing,
		LineWidth:    DefaultLineWidth,
		color:        DefaultColor,
	}
}

// Color returns the border color.
func (s Settings) Color() RGB { return s.color }

// SetColor sets the border color.
func (s *Settings) SetColor(c RGB) { s.color = c }

// SetColorChannels sets the border color from integer channels. Channels past
// the third (alpha) are ignored. It fails with ErrInvalidColor when fewer than
// three channels are given or any of the first three is outside 0-255; the
// current color is left unchanged in that case.
func (s *Settings) SetColorChannels(ch ...int) error {
	if len(ch) < 3 {
		return fmt.Errorf("%w: need 3 components, got %d", ErrInvalidColor, len(ch))
	}
	c, err := NewRGB(ch[0], ch[1], ch[2])
	if err != nil {
		return err
	}
	s.color = c
	return nil
}

// SetColorString resolves a color name or hex string and sets it as the
// border color. Unresolvable input fails with ErrInvalidColor.
func (s *Settings) SetColorString(v string) error {
	c, err := ParseColor(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidColor, err)
	}
	s.color = c
	return nil
}

// HasBorder reports whether images get a border.
func (s Settings) HasBorder() bool { return s.LineWidth > 0 }

func (s Settings) String() string {
	return fmt.Sprintf("top=%s left=%s right=%s bottom=%s h_spacing=%s v_spacing=%s line_width=%s color=%s rounded=%t",
		s.TopMargin, s.LeftMargin, s.RightMargin, s.BottomMargin,
		s.HSpacing, s.VSpacing, s.LineWidth, s.color, s.Rounded)
}
