// Package layout computes where images go on a slide.
//
// Compute is a pure function of the canvas size, the settings and the number
// of images; it never looks at image content.
package layout

import (
	"errors"
	"fmt"

	"github.com/VantageDataChat/imagedeck/settings"
)

// MaxImages is the largest group Compute accepts.
const MaxImages = 4

// ErrUnsupportedCount is returned by Compute for counts outside 1..MaxImages.
var ErrUnsupportedCount = errors.New("unsupported image count")

// Canvas is the size of one slide.
type Canvas struct {
	Width  settings.Inches
	Height settings.Inches
}

func (c Canvas) String() string {
	return fmt.Sprintf("%s x %s", c.Width, c.Height)
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y          settings.Inches
	Width, Height settings.Inches
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() settings.Inches { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() settings.Inches { return r.Y + r.Height }

// Empty reports whether the rectangle has no positive area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Within reports whether r lies entirely inside the canvas.
func (r Rect) Within(c Canvas) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= c.Width && r.Bottom() <= c.Height
}

// Style is the decoration applied to a placed image.
type Style struct {
	Border      bool
	BorderWidth settings.Points
	BorderColor settings.RGB
	Rounded     bool
}

// StyleOf derives the image style from s.
func StyleOf(s settings.Settings) Style {
	st := Style{Rounded: s.Rounded}
	if s.HasBorder() {
		st.Border = true
		st.BorderWidth = s.LineWidth
		st.BorderColor = s.Color()
	}
	return st
}

// Placement is a rectangle plus style for one image.
type Placement struct {
	Rect
	Style Style
}

// GridFor returns the grid used for count images. The 3-image layout uses a
// 2x2 grid with the last image centered in the second row.
func GridFor(count int) (cols, rows int, err error) {
	switch count {
	case 1:
		return 1, 1, nil
	case 2:
		return 2, 1, nil
	case 3, 4:
		return 2, 2, nil
	}
	return 0, 0, fmt.Errorf("%w: %d (want 1-%d)", ErrUnsupportedCount, count, MaxImages)
}

// Compute returns one placement per image, in input order.
//
// Margins and spacing are not validated: values that leave no room produce
// rectangles with negative width or height.
func Compute(canvas Canvas, s settings.Settings, count int) ([]Placement, error) {
	cols, rows, err := GridFor(count)
	if err != nil {
		return nil, err
	}

	w := (canvas.Width - s.LeftMargin - s.RightMargin - settings.Inches(cols-1)*s.HSpacing) / settings.Inches(cols)
	h := (canvas.Height - s.TopMargin - s.BottomMargin - settings.Inches(rows-1)*s.VSpacing) / settings.Inches(rows)
	style := StyleOf(s)

	cell := func(row, col int) Placement {
		return Placement{
			Rect: Rect{
				X:      s.LeftMargin + settings.Inches(col)*(w+s.HSpacing),
				Y:      s.TopMargin + settings.Inches(row)*(h+s.VSpacing),
				Width:  w,
				Height: h,
			},
			Style: style,
		}
	}

	out := make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, cell(i/cols, i%cols))
	}
	if count == 3 {
		// centered under the gap between the two cells above
		out[2].X = s.LeftMargin + w/2 + s.HSpacing/2
	}
	return out, nil
}
