// Package assembler splits an ordered list of images into slides and places
// them through a Document.
package assembler

import (
	"errors"
	"fmt"

	"github.com/VantageDataChat/imagedeck/layout"
	"github.com/VantageDataChat/imagedeck/settings"
)

// MaxPerSlide is the number of images placed on one slide.
const MaxPerSlide = layout.MaxImages

// ErrEmptyInput is returned by Assemble when there are no images.
var ErrEmptyInput = errors.New("no images to place")

// Document is the presentation images are added to.
type Document interface {
	CanvasSize() layout.Canvas
	AddBlankSlide() (Slide, error)
}

// Slide accepts placed images.
type Slide interface {
	PlaceImage(ref string, p layout.Placement) error
}

// SlidePlan is the content of one slide.
type SlidePlan struct {
	Images     []string
	Placements []layout.Placement
}

// Group splits refs into consecutive chunks of at most MaxPerSlide, keeping
// their order. The returned chunks share refs' backing array.
func Group(refs []string) [][]string {
	if len(refs) == 0 {
		return nil
	}
	groups := make([][]string, 0, (len(refs)+MaxPerSlide-1)/MaxPerSlide)
	for start := 0; start < len(refs); start += MaxPerSlide {
		end := min(start+MaxPerSlide, len(refs))
		groups = append(groups, refs[start:end:end])
	}
	return groups
}

// Plan computes the slides for refs without touching a document.
func Plan(refs []string, canvas layout.Canvas, s settings.Settings) ([]SlidePlan, error) {
	groups := Group(refs)
	plans := make([]SlidePlan, 0, len(groups))
	for _, g := range groups {
		ps, err := layout.Compute(canvas, s, len(g))
		if err != nil {
			return nil, err
		}
		plans = append(plans, SlidePlan{Images: g, Placements: ps})
	}
	return plans, nil
}

// Assemble adds one blank slide per group to doc and places every image on
// it. It returns the number of slides added, which is also the count reached
// before a failure.
func Assemble(doc Document, refs []string, s settings.Settings) (int, error) {
	if len(refs) == 0 {
		return 0, ErrEmptyInput
	}
	plans, err := Plan(refs, doc.CanvasSize(), s)
	if err != nil {
		return 0, err
	}
	for n, plan := range plans {
		if err := Apply(doc, plan); err != nil {
			return n, fmt.Errorf("slide %d: %w", n+1, err)
		}
	}
	return len(plans), nil
}

// Apply adds a blank slide to doc and places the images of plan on it.
func Apply(doc Document, plan SlidePlan) error {
	slide, err := doc.AddBlankSlide()
	if err != nil {
		return fmt.Errorf("add slide: %w", err)
	}
	for i, ref := range plan.Images {
		if err := slide.PlaceImage(ref, plan.Placements[i]); err != nil {
			return fmt.Errorf("place %s: %w", ref, err)
		}
	}
	return nil
}
