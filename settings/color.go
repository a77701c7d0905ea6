package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	// ErrInvalidColor is returned when a color channel falls outside 0-255
	// or a color string cannot be resolved.
	ErrInvalidColor = errors.New("invalid color")
	// ErrUnknownColor is returned by ParseColor for unrecognized names and
	// malformed hex strings.
	ErrUnknownColor = errors.New("unknown color")
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// NewRGB builds an RGB from integer channels, each of which must be in 0-255.
func NewRGB(r, g, b int) (RGB, error) {
	for _, c := range [3]int{r, g, b} {
		if c < 0 || c > 255 {
			return RGB{}, fmt.Errorf("%w: each component must be between 0 and 255: (%d, %d, %d)", ErrInvalidColor, r, g, b)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// ParseColor resolves a CSS color name ("springgreen") or a hex string
// ("#f00", "#ff0000", "#ff000080") to an RGB. An alpha component is discarded.
func ParseColor(s string) (RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGB{}, fmt.Errorf("%w: empty string", ErrUnknownColor)
	}
	if c, ok := colornames.Map[v]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}
	if !strings.HasPrefix(v, "#") {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	if strings.Trim(v[1:], "0123456789abcdef") != "" {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	switch len(v) {
	case 4, 7:
	case 5:
		v = v[:4]
	case 9:
		v = v[:7]
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
