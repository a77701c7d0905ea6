package imagedeck

import (
	"strings"

	"github.com/VantageDataChat/imagedeck/settings"
)

// Border is the outline drawn around a picture.
type Border struct {
	Style BorderStyle
	Width int64 // in EMU
	Color settings.RGB
}

// BorderStyle is the dash pattern of a border.
type BorderStyle string

const (
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
	BorderDot   BorderStyle = "dot"
)

// NewBorder creates a solid border width EMU wide.
func NewBorder(width int64, c settings.RGB) *Border {
	return &Border{Style: BorderSolid, Width: width, Color: c}
}

// Geometry is the preset shape a picture is clipped to.
type Geometry string

const (
	GeometryRect      Geometry = "rect"
	GeometryRoundRect Geometry = "roundRect"
	GeometryEllipse   Geometry = "ellipse"
)

// roundRectRadius is the corner radius of GeometryRoundRect as a fraction of
// the shorter side. It matches the default "adj" of the roundRect preset.
const roundRectRadius = 16667.0 / 100000.0

// colorHex renders c as the six upper-case hex digits srgbClr expects.
func colorHex(c settings.RGB) string {
	return strings.ToUpper(strings.TrimPrefix(c.Hex(), "#"))
}
