package imagedeck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/settings"
)

func testImages(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	refs := make([]string, n)
	for i := range refs {
		refs[i] = writeImage(t, dir, fmt.Sprintf("img%02d.png", i), red)
	}
	return refs
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	g := NewGenerator(settings.Default())

	res, err := g.Generate(context.Background(), Request{Images: testImages(t, 10), Output: out})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.SlidesAdded != 3 || res.TotalSlides != 3 || res.Images != 10 {
		t.Errorf("unexpected result %+v", res)
	}

	p, err := Open(out)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	counts := []int{}
	for _, s := range p.Slides() {
		counts = append(counts, len(s.Pictures()))
	}
	if fmt.Sprint(counts) != "[4 4 2]" {
		t.Errorf("expected pictures per slide [4 4 2], got %v", counts)
	}
}

func TestGenerateAppendsAndOverrides(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	imgs := testImages(t, 5)
	g := NewGenerator(settings.Default())
	ctx := context.Background()

	if _, err := g.Generate(ctx, Request{Images: imgs, Output: out}); err != nil {
		t.Fatal(err)
	}
	res, err := g.Generate(ctx, Request{Images: imgs[:1], Output: out})
	if err != nil {
		t.Fatal(err)
	}
	if res.SlidesAdded != 1 || res.TotalSlides != 3 {
		t.Errorf("append: unexpected result %+v", res)
	}

	res, err = g.Generate(ctx, Request{Images: imgs[:3], Output: out, Override: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalSlides != 1 {
		t.Errorf("override: expected 1 slide, got %d", res.TotalSlides)
	}
}

func TestGenerateSlideSize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	g := NewGenerator(settings.Default())
	if _, err := g.Generate(context.Background(), Request{Images: testImages(t, 1), Output: out, SlideSize: "16x9"}); err != nil {
		t.Fatal(err)
	}
	if got := g.Presentation().GetLayout().Name; got != LayoutScreen16x9 {
		t.Errorf("expected 16x9 layout, got %s", got)
	}

	// an existing deck keeps its size
	if _, err := g.Generate(context.Background(), Request{Images: testImages(t, 1), Output: out, SlideSize: "a4"}); err != nil {
		t.Fatal(err)
	}
	if got := g.Presentation().GetLayout().Name; got != LayoutScreen16x9 {
		t.Errorf("existing deck layout changed to %s", got)
	}

	_, err := NewGenerator(settings.Default()).Generate(context.Background(),
		Request{Images: testImages(t, 1), Output: filepath.Join(t.TempDir(), "x.pptx"), SlideSize: "huge"})
	if err == nil {
		t.Error("expected error for unknown slide size")
	}
}

func TestGenerateKeepsSizeOfEmptyDeck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	p := New()
	dl, err := ParseLayout("16x9")
	if err != nil {
		t.Fatal(err)
	}
	p.SetLayout(dl)
	if err := p.Save(out); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(settings.Default())
	_, err = g.Generate(context.Background(), Request{Images: testImages(t, 1), Output: out, SlideSize: LayoutScreen4x3})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Open(out)
	if err != nil {
		t.Fatal(err)
	}
	if name := got.GetLayout().Name; name != LayoutScreen16x9 {
		t.Errorf("empty 16x9 deck switched to %s", name)
	}
	if got.SlideCount() != 1 {
		t.Errorf("expected 1 slide, got %d", got.SlideCount())
	}
}

// writeDeckWithText saves a one-slide deck holding a text box and a picture
// and returns the file content.
func writeDeckWithText(t *testing.T, path string) []byte {
	t.Helper()
	p := New()
	p.CreateSlide().AddPicture(NewPicture().SetImageData(solidPNG(t, 4, 4, red), "image/png"))
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	data := rewriteEntry(t, buf.Bytes(), "ppt/slides/slide1.xml", func(s string) string {
		return replaceOnce(s, "      <p:pic>", textBox+"\n      <p:pic>")
	})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return data
}

func TestGenerateRefusesLossyAppend(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	before := writeDeckWithText(t, out)
	imgs := testImages(t, 1)
	ctx := context.Background()

	_, err := NewGenerator(settings.Default()).Generate(ctx, Request{Images: imgs, Output: out})
	if !errors.Is(err, ErrLossyAppend) {
		t.Fatalf("expected ErrLossyAppend, got %v", err)
	}
	after, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("the existing file must be left untouched")
	}

	// override does not read the old file
	res, err := NewGenerator(settings.Default()).Generate(ctx, Request{Images: imgs, Output: out, Override: true})
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if res.TotalSlides != 1 {
		t.Errorf("override: expected 1 slide, got %d", res.TotalSlides)
	}

	writeDeckWithText(t, out)
	g := NewGenerator(settings.Default())
	g.DiscardUnsupported = true
	res, err = g.Generate(ctx, Request{Images: imgs, Output: out})
	if err != nil {
		t.Fatalf("discard: %v", err)
	}
	if res.TotalSlides != 2 {
		t.Errorf("discard: expected 2 slides, got %d", res.TotalSlides)
	}
	got, err := Open(out)
	if err != nil {
		t.Fatal(err)
	}
	if got.DroppedShapes() != 0 || got.PictureCount() != 2 {
		t.Errorf("expected 2 pictures and no other shapes, got %d and %d", got.PictureCount(), got.DroppedShapes())
	}
}

func TestGenerateEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	_, err := NewGenerator(settings.Default()).Generate(context.Background(), Request{Output: out})
	if !errors.Is(err, assembler.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
		t.Error("no file should be written")
	}
}

func TestGenerateCancelled(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(settings.Default()).Generate(ctx, Request{Images: testImages(t, 6), Output: out})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
		t.Error("a cancelled run should not write the output")
	}
}

func TestGenerateMissingImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deck.pptx")
	_, err := NewGenerator(settings.Default()).Generate(context.Background(),
		Request{Images: []string{filepath.Join(dir, "nope.png")}, Output: out})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGeneratorRequiresCreate(t *testing.T) {
	g := NewGenerator(settings.Default())
	if _, err := g.AddImages([]string{"a.png"}); !errors.Is(err, ErrNoPresentation) {
		t.Errorf("AddImages: expected ErrNoPresentation, got %v", err)
	}
	if err := g.Save("x.pptx"); !errors.Is(err, ErrNoPresentation) {
		t.Errorf("Save: expected ErrNoPresentation, got %v", err)
	}
}

func TestGeneratorStepwise(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deck.pptx")
	g := NewGenerator(settings.Default())
	if err := g.Create(out, false); err != nil {
		t.Fatal(err)
	}
	n, err := g.AddImages(testImages(t, 4))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 slide, got %d", n)
	}
	if err := g.Save(out); err != nil {
		t.Fatal(err)
	}
}

func TestOpenOrCreate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "deck.pptx")

	p, err := OpenOrCreate(out, false)
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if p.SlideCount() != 0 || !p.IsNew() {
		t.Errorf("missing file: expected a new empty presentation")
	}
	p.CreateSlide()
	if err := p.Save(out); err != nil {
		t.Fatal(err)
	}

	p, err = OpenOrCreate(out, false)
	if err != nil || p.SlideCount() != 1 || p.IsNew() {
		t.Errorf("existing file: %v", err)
	}
	p, err = OpenOrCreate(out, true)
	if err != nil || p.SlideCount() != 0 || !p.IsNew() {
		t.Errorf("override: %v", err)
	}
	if _, err := OpenOrCreate(dir, false); err == nil {
		t.Error("expected error for a directory")
	}
}
