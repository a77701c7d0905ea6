// Package imagedeck arranges images on the slides of a PowerPoint (.pptx)
// presentation.
//
// The Presentation type is a small Office Open XML document model that only
// knows about pictures: it can be read from an existing file, extended with
// blank slides and saved back. It implements assembler.Document, so the
// layout packages can drive it directly:
//
//	pres := imagedeck.New()
//	_, err := assembler.Assemble(pres, []string{"a.png", "b.jpg"}, settings.Default())
//	...
//	err = pres.Save("out.pptx")
package imagedeck

import (
	"errors"
	"fmt"
	"time"

	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/layout"
	"github.com/VantageDataChat/imagedeck/settings"
)

// ErrSlideIndex is returned for slide indexes outside the presentation.
var ErrSlideIndex = errors.New("slide index out of range")

// Presentation is an in-memory PowerPoint presentation.
type Presentation struct {
	properties *DocumentProperties
	slides     []*Slide
	layout     *DocumentLayout

	// set when read from a file
	loaded bool
	// shapes and package parts found while reading that are not pictures
	dropped      int
	droppedParts int
}

var _ assembler.Document = (*Presentation)(nil)

// New creates an empty presentation with a 4:3 slide size.
func New() *Presentation {
	return &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// SetDocumentProperties sets the document properties.
func (p *Presentation) SetDocumentProperties(props *DocumentProperties) {
	p.properties = props
}

// GetLayout returns the slide size.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the slide size.
func (p *Presentation) SetLayout(l *DocumentLayout) {
	p.layout = l
}

// CanvasSize returns the slide size in inches.
func (p *Presentation) CanvasSize() layout.Canvas {
	return layout.Canvas{
		Width:  settings.Inches(EMUToInch(p.layout.CX)),
		Height: settings.Inches(EMUToInch(p.layout.CY)),
	}
}

// CreateSlide appends a new blank slide.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// AddBlankSlide appends a new blank slide.
func (p *Presentation) AddBlankSlide() (assembler.Slide, error) {
	return p.CreateSlide(), nil
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrSlideIndex, index, len(p.slides))
	}
	return p.slides[index], nil
}

// Slides returns all slides.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// RemoveSlideByIndex removes a slide by index.
func (p *Presentation) RemoveSlideByIndex(index int) error {
	if index < 0 || index >= len(p.slides) {
		return fmt.Errorf("%w: %d (have %d)", ErrSlideIndex, index, len(p.slides))
	}
	p.slides = append(p.slides[:index], p.slides[index+1:]...)
	return nil
}

// MoveSlide moves a slide from one index to another.
func (p *Presentation) MoveSlide(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(p.slides) {
		return fmt.Errorf("%w: from %d", ErrSlideIndex, fromIndex)
	}
	if toIndex < 0 || toIndex >= len(p.slides) {
		return fmt.Errorf("%w: to %d", ErrSlideIndex, toIndex)
	}
	if fromIndex == toIndex {
		return nil
	}
	slide := p.slides[fromIndex]
	p.slides = append(p.slides[:fromIndex], p.slides[fromIndex+1:]...)
	p.slides = append(p.slides, nil)
	copy(p.slides[toIndex+1:], p.slides[toIndex:])
	p.slides[toIndex] = slide
	return nil
}

// DroppedShapes returns the number of non-picture shapes that were skipped
// when the presentation was read. Saving the presentation loses them.
func (p *Presentation) DroppedShapes() int {
	return p.dropped
}

// DroppedParts returns the number of package parts that were skipped when
// the presentation was read: notes, charts, comments, embedded objects and
// every slide master or layout beyond the first. Saving the presentation
// loses them.
func (p *Presentation) DroppedParts() int {
	return p.droppedParts
}

// IsNew reports whether the presentation was created in memory rather than
// read from an existing file.
func (p *Presentation) IsNew() bool {
	return !p.loaded
}

// PictureCount returns the number of pictures on all slides.
func (p *Presentation) PictureCount() int {
	n := 0
	for _, s := range p.slides {
		n += len(s.pictures)
	}
	return n
}

// DocumentProperties holds the core and extended document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates document properties stamped with the current time.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "imagedeck",
		LastModifiedBy: "imagedeck",
		Created:        now,
		Modified:       now,
	}
}
