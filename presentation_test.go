package imagedeck

import (
	"errors"
	"math"
	"testing"

	"github.com/VantageDataChat/imagedeck/layout"
	"github.com/VantageDataChat/imagedeck/settings"
)

func TestNewIsEmpty(t *testing.T) {
	p := New()
	if p.SlideCount() != 0 {
		t.Errorf("expected 0 slides, got %d", p.SlideCount())
	}
	c := p.CanvasSize()
	if math.Abs(float64(c.Width)-10) > 1e-9 || math.Abs(float64(c.Height)-7.5) > 1e-9 {
		t.Errorf("expected 10x7.5 canvas, got %v", c)
	}
}

func TestCanvasSizeFollowsLayout(t *testing.T) {
	p := New()
	p.GetLayout().SetLayout(LayoutScreen16x9)
	c := p.CanvasSize()
	if math.Abs(float64(c.Width)-13.333333) > 1e-6 {
		t.Errorf("expected 13.333in width, got %v", c.Width)
	}
}

func TestSlideOperations(t *testing.T) {
	p := New()
	a := p.CreateSlide()
	a.SetName("a")
	b := p.CreateSlide()
	b.SetName("b")
	c := p.CreateSlide()
	c.SetName("c")

	if err := p.MoveSlide(2, 0); err != nil {
		t.Fatalf("MoveSlide: %v", err)
	}
	var names string
	for _, s := range p.Slides() {
		names += s.GetName()
	}
	if names != "cab" {
		t.Errorf("expected order cab, got %s", names)
	}

	if err := p.RemoveSlideByIndex(1); err != nil {
		t.Fatalf("RemoveSlideByIndex: %v", err)
	}
	if p.SlideCount() != 2 {
		t.Errorf("expected 2 slides, got %d", p.SlideCount())
	}
	if _, err := p.GetSlide(5); !errors.Is(err, ErrSlideIndex) {
		t.Errorf("expected ErrSlideIndex, got %v", err)
	}
	if err := p.MoveSlide(0, 9); !errors.Is(err, ErrSlideIndex) {
		t.Errorf("expected ErrSlideIndex, got %v", err)
	}
}

func TestPlaceImage(t *testing.T) {
	p := New()
	s, err := p.AddBlankSlide()
	if err != nil {
		t.Fatalf("AddBlankSlide: %v", err)
	}
	st := settings.Default()
	st.Rounded = true
	placements, err := layout.Compute(p.CanvasSize(), st, 4)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := s.PlaceImage("photos/cat.JPG", placements[1]); err != nil {
		t.Fatalf("PlaceImage: %v", err)
	}

	pic := p.Slides()[0].Pictures()[0]
	if pic.GetOffsetX() != Inch(5.25) {
		t.Errorf("expected x %d, got %d", Inch(5.25), pic.GetOffsetX())
	}
	if pic.GetOffsetY() != Inch(1.35) {
		t.Errorf("expected y %d, got %d", Inch(1.35), pic.GetOffsetY())
	}
	if pic.GetWidth() != Inch(4.22) || pic.GetHeight() != Inch(2.495) {
		t.Errorf("unexpected size %dx%d", pic.GetWidth(), pic.GetHeight())
	}
	if pic.GetGeometry() != GeometryRoundRect {
		t.Errorf("expected roundRect, got %s", pic.GetGeometry())
	}
	if pic.GetMimeType() != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", pic.GetMimeType())
	}
	b := pic.GetBorder()
	if b == nil {
		t.Fatal("expected a border")
	}
	if b.Width != Point(2.25) || b.Color != settings.DefaultColor {
		t.Errorf("unexpected border %+v", b)
	}
	if pic.GetDescription() != "cat.JPG" {
		t.Errorf("expected description cat.JPG, got %q", pic.GetDescription())
	}
}

func TestPlaceImageWithoutBorder(t *testing.T) {
	p := New()
	s := p.CreateSlide()
	st := settings.Default()
	st.LineWidth = 0
	pl, _ := layout.Compute(p.CanvasSize(), st, 1)
	if err := s.PlaceImage("a.png", pl[0]); err != nil {
		t.Fatalf("PlaceImage: %v", err)
	}
	pic := s.Pictures()[0]
	if pic.GetBorder() != nil {
		t.Error("expected no border")
	}
	if pic.GetGeometry() != GeometryRect {
		t.Errorf("expected rect, got %s", pic.GetGeometry())
	}
}

func TestPlaceImageUnsupported(t *testing.T) {
	s := New().CreateSlide()
	pl, _ := layout.Compute(layout.Canvas{Width: 10, Height: 7.5}, settings.Default(), 1)
	if err := s.PlaceImage("notes.txt", pl[0]); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
	if err := s.PlaceImage("", pl[0]); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestMeasurement(t *testing.T) {
	if Inch(1) != 914400 {
		t.Errorf("Inch(1) = %d", Inch(1))
	}
	if Point(2.25) != 28575 {
		t.Errorf("Point(2.25) = %d", Point(2.25))
	}
	if EMUToInch(Inch(4.22)) != 4.22 {
		t.Errorf("EMUToInch(Inch(4.22)) = %v", EMUToInch(Inch(4.22)))
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		name string
		cx   int64
	}{
		{"", LayoutScreen4x3, 9144000},
		{"16x9", LayoutScreen16x9, 12192000},
		{"16:10", LayoutScreen16x10, 10972800},
		{"A4", LayoutA4, 9906000},
		{"Letter", LayoutLetter, 9144000},
	}
	for _, tt := range tests {
		dl, err := ParseLayout(tt.in)
		if err != nil {
			t.Errorf("ParseLayout(%q): %v", tt.in, err)
			continue
		}
		if dl.Name != tt.name || dl.CX != tt.cx {
			t.Errorf("ParseLayout(%q) = %+v", tt.in, dl)
		}
	}
	if _, err := ParseLayout("huge"); err == nil {
		t.Error("expected error for unknown size")
	}
}
