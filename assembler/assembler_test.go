package assembler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/imagedeck/layout"
	"github.com/VantageDataChat/imagedeck/settings"
)

type placed struct {
	Ref   string
	Place layout.Placement
}

type fakeSlide struct {
	images []placed
	failOn string
}

func (s *fakeSlide) PlaceImage(ref string, p layout.Placement) error {
	if ref == s.failOn {
		return errors.New("boom")
	}
	s.images = append(s.images, placed{ref, p})
	return nil
}

type fakeDoc struct {
	canvas   layout.Canvas
	slides   []*fakeSlide
	failAt   int // 1-based slide number whose creation fails
	failOnID string
}

func (d *fakeDoc) CanvasSize() layout.Canvas { return d.canvas }

func (d *fakeDoc) AddBlankSlide() (Slide, error) {
	if d.failAt == len(d.slides)+1 {
		return nil, errors.New("disk full")
	}
	s := &fakeSlide{failOn: d.failOnID}
	d.slides = append(d.slides, s)
	return s, nil
}

func refs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("img%02d.png", i)
	}
	return out
}

func TestGroup(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{4, []int{4}},
		{5, []int{4, 1}},
		{8, []int{4, 4}},
		{10, []int{4, 4, 2}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			in := refs(tt.n)
			groups := Group(in)
			var sizes []int
			var flat []string
			for _, g := range groups {
				sizes = append(sizes, len(g))
				flat = append(flat, g...)
			}
			assert.Equal(t, tt.want, sizes)
			if diff := cmp.Diff(in, flat, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("order changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupDoesNotAlias(t *testing.T) {
	in := refs(6)
	groups := Group(in)
	groups[0] = append(groups[0], "extra.png")
	assert.Equal(t, "img04.png", in[4])
}

func TestPlan(t *testing.T) {
	canvas := layout.Canvas{Width: 10, Height: 7.5}
	plans, err := Plan(refs(10), canvas, settings.Default())
	require.NoError(t, err)
	require.Len(t, plans, 3)

	for _, p := range plans {
		want, err := layout.Compute(canvas, settings.Default(), len(p.Images))
		require.NoError(t, err)
		assert.Equal(t, want, p.Placements)
	}
	assert.Equal(t, []string{"img08.png", "img09.png"}, plans[2].Images)

	plans, err = Plan(nil, canvas, settings.Default())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestAssemble(t *testing.T) {
	doc := &fakeDoc{canvas: layout.Canvas{Width: 10, Height: 7.5}}
	in := refs(10)

	n, err := Assemble(doc, in, settings.Default())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, doc.slides, 3)

	var got []string
	for _, s := range doc.slides {
		for _, p := range s.images {
			got = append(got, p.Ref)
		}
	}
	assert.Equal(t, in, got)

	// second image on the first slide sits in the right column
	assert.InDelta(t, 5.25, float64(doc.slides[0].images[1].Place.X), 1e-9)
	assert.InDelta(t, 1.35, float64(doc.slides[0].images[1].Place.Y), 1e-9)
}

func TestAssembleEmpty(t *testing.T) {
	doc := &fakeDoc{canvas: layout.Canvas{Width: 10, Height: 7.5}}
	n, err := Assemble(doc, nil, settings.Default())
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, n)
	assert.Empty(t, doc.slides)
}

func TestAssembleSlideFailure(t *testing.T) {
	doc := &fakeDoc{canvas: layout.Canvas{Width: 10, Height: 7.5}, failAt: 2}
	n, err := Assemble(doc, refs(6), settings.Default())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "slide 2")
	assert.Contains(t, err.Error(), "disk full")
}

func TestAssemblePlaceFailure(t *testing.T) {
	doc := &fakeDoc{canvas: layout.Canvas{Width: 10, Height: 7.5}, failOnID: "img05.png"}
	n, err := Assemble(doc, refs(6), settings.Default())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, err.Error(), "img05.png")
}
