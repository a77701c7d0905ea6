package imagedeck

import (
	"fmt"

	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/layout"
)

// Slide is one slide of a presentation. It holds pictures only.
type Slide struct {
	name     string
	pictures []*Picture
	hidden   bool
}

var _ assembler.Slide = (*Slide)(nil)

func newSlide() *Slide {
	return &Slide{pictures: make([]*Picture, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// IsHidden reports whether the slide is hidden in slide shows.
func (s *Slide) IsHidden() bool { return s.hidden }

// SetHidden hides or shows the slide.
func (s *Slide) SetHidden(hidden bool) { s.hidden = hidden }

// Pictures returns the pictures on the slide in drawing order.
func (s *Slide) Pictures() []*Picture { return s.pictures }

// AddPicture appends p to the slide.
func (s *Slide) AddPicture(p *Picture) *Picture {
	s.pictures = append(s.pictures, p)
	return p
}

// PlaceImage adds the image file at ref inside the placement rectangle. The
// file is read when the presentation is saved.
func (s *Slide) PlaceImage(ref string, pl layout.Placement) error {
	if ref == "" {
		return fmt.Errorf("place image: empty path")
	}
	pic := NewPicture().SetPath(ref)
	if pic.mimeType == "" {
		return fmt.Errorf("place image %s: %w", ref, ErrUnsupportedImage)
	}
	pic.SetName(fmt.Sprintf("Picture %d", len(s.pictures)+1))
	pic.SetDescription(baseName(ref))
	pic.SetPosition(Inch(float64(pl.X)), Inch(float64(pl.Y)))
	pic.SetSize(Inch(float64(pl.Width)), Inch(float64(pl.Height)))
	if pl.Style.Rounded {
		pic.SetGeometry(GeometryRoundRect)
	}
	if pl.Style.Border {
		pic.SetBorder(&Border{
			Width: Point(float64(pl.Style.BorderWidth)),
			Color: pl.Style.BorderColor,
		})
	}
	s.AddPicture(pic)
	return nil
}
