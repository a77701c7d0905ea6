package imagedeck

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/settings"
)

func TestRoundTripPictures(t *testing.T) {
	dir := t.TempDir()
	refs := []string{
		writeImage(t, dir, "1.png", red),
		writeImage(t, dir, "2.jpg", blue),
		writeImage(t, dir, "3.png", blue),
	}

	s := settings.Default()
	s.Rounded = true
	if err := s.SetColorString("springgreen"); err != nil {
		t.Fatal(err)
	}

	p := New()
	p.GetDocumentProperties().Title = "Holiday"
	if _, err := assembler.Assemble(p, refs, s); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	got := roundTripFile(t, p)
	if got.SlideCount() != 1 {
		t.Fatalf("expected 1 slide, got %d", got.SlideCount())
	}
	if got.GetDocumentProperties().Title != "Holiday" {
		t.Errorf("title lost: %q", got.GetDocumentProperties().Title)
	}

	want := p.Slides()[0].Pictures()
	pics := got.Slides()[0].Pictures()
	if len(pics) != 3 {
		t.Fatalf("expected 3 pictures, got %d", len(pics))
	}
	for i, pic := range pics {
		w := want[i]
		if pic.GetOffsetX() != w.GetOffsetX() || pic.GetOffsetY() != w.GetOffsetY() {
			t.Errorf("picture %d: offset %d,%d want %d,%d", i, pic.GetOffsetX(), pic.GetOffsetY(), w.GetOffsetX(), w.GetOffsetY())
		}
		if pic.GetWidth() != w.GetWidth() || pic.GetHeight() != w.GetHeight() {
			t.Errorf("picture %d: size %dx%d want %dx%d", i, pic.GetWidth(), pic.GetHeight(), w.GetWidth(), w.GetHeight())
		}
		if pic.GetGeometry() != GeometryRoundRect {
			t.Errorf("picture %d: geometry %s", i, pic.GetGeometry())
		}
		b := pic.GetBorder()
		if b == nil || b.Width != Point(2.25) || b.Color != (settings.RGB{G: 255, B: 127}) {
			t.Errorf("picture %d: border %+v", i, b)
		}
		if pic.GetMimeType() != w.GetMimeType() {
			t.Errorf("picture %d: mime %s want %s", i, pic.GetMimeType(), w.GetMimeType())
		}
		if len(pic.GetImageData()) == 0 {
			t.Errorf("picture %d: no image data", i)
		}
		if pic.GetDescription() != w.GetDescription() {
			t.Errorf("picture %d: description %q want %q", i, pic.GetDescription(), w.GetDescription())
		}
	}
}

func TestRoundTripLayoutAndAppend(t *testing.T) {
	p := New()
	p.GetLayout().SetLayout(LayoutScreen16x9)
	p.CreateSlide().AddPicture(NewPicture().SetImageData(solidPNG(t, 4, 4, red), "image/png"))
	hidden := p.CreateSlide()
	hidden.SetHidden(true)

	got := roundTrip(t, p)
	if got.GetLayout().Name != LayoutScreen16x9 || got.GetLayout().CX != 12192000 {
		t.Errorf("layout lost: %+v", got.GetLayout())
	}
	if !got.Slides()[1].IsHidden() {
		t.Error("hidden flag lost")
	}

	// appending to a reopened deck keeps existing slides and media
	got.CreateSlide().AddPicture(NewPicture().SetImageData(solidPNG(t, 4, 4, blue), "image/png"))
	again := roundTrip(t, got)
	if again.SlideCount() != 3 || again.PictureCount() != 2 {
		t.Errorf("expected 3 slides and 2 pictures, got %d and %d", again.SlideCount(), again.PictureCount())
	}
}

func TestReadDropsOtherShapes(t *testing.T) {
	p := New()
	p.CreateSlide().AddPicture(NewPicture().SetImageData(solidPNG(t, 4, 4, red), "image/png"))
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	// add a text box next to the picture
	data := rewriteEntry(t, buf.Bytes(), "ppt/slides/slide1.xml", func(s string) string {
		return replaceOnce(s, "      <p:pic>", textBox+"\n      <p:pic>")
	})

	got, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got.DroppedShapes() != 1 {
		t.Errorf("expected 1 dropped shape, got %d", got.DroppedShapes())
	}
	if got.PictureCount() != 1 {
		t.Errorf("expected the picture to survive, got %d", got.PictureCount())
	}
}

func TestReadRejectsMalformedSlide(t *testing.T) {
	p := New()
	p.CreateSlide().AddPicture(NewPicture().SetImageData(solidPNG(t, 4, 4, red), "image/png"))
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	tests := map[string]func(string) string{
		"truncated": func(s string) string {
			return s[:strings.Index(s, "</p:spTree>")]
		},
		"bad tag": func(s string) string {
			return replaceOnce(s, "</p:spTree>", "</p:spTree")
		},
	}
	for name, edit := range tests {
		t.Run(name, func(t *testing.T) {
			data := rewriteEntry(t, buf.Bytes(), "ppt/slides/slide1.xml", edit)
			_, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
			if err == nil || !strings.Contains(err.Error(), "malformed slide") {
				t.Errorf("expected a malformed slide error, got %v", err)
			}
		})
	}
}

func TestReadCountsDroppedParts(t *testing.T) {
	p := New()
	p.CreateSlide()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if got.DroppedParts() != 0 || got.DroppedShapes() != 0 {
		t.Errorf("own output: expected nothing dropped, got %d parts, %d shapes", got.DroppedParts(), got.DroppedShapes())
	}
	if got.IsNew() {
		t.Error("a presentation read from a file is not new")
	}

	data := addEntries(t, buf.Bytes(), map[string]string{
		"ppt/notesSlides/notesSlide1.xml":              "<p:notes/>",
		"ppt/notesSlides/_rels/notesSlide1.xml.rels":   "<Relationships/>",
		"ppt/slideLayouts/slideLayout2.xml":            "<p:sldLayout/>",
		"ppt/slideLayouts/_rels/slideLayout2.xml.rels": "<Relationships/>",
		"ppt/charts/chart1.xml":                        "<c:chartSpace/>",
	})
	got, err = ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if got.DroppedParts() != 3 {
		t.Errorf("expected 3 dropped parts, got %d", got.DroppedParts())
	}
}

func TestReadRejectsNonPresentation(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<doc/>"))
	zw.Close()

	_, err := ReadFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if !errors.Is(err, ErrNotPresentation) {
		t.Errorf("expected ErrNotPresentation, got %v", err)
	}
	if _, err := ReadFrom(bytes.NewReader([]byte("junk")), 4); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct{ base, rel, want string }{
		{"ppt/slides", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt", "/ppt/slides/slide2.xml", "ppt/slides/slide2.xml"},
		{"ppt/slides", "../../../../etc/passwd", "ppt/etc/passwd"},
	}
	for _, tt := range tests {
		if got := resolveRelativePath(tt.base, tt.rel); got != tt.want {
			t.Errorf("resolveRelativePath(%q, %q) = %q, want %q", tt.base, tt.rel, got, tt.want)
		}
	}
}

func rewriteEntry(t *testing.T, data []byte, name string, edit func(string) string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		b.ReadFrom(rc)
		rc.Close()
		content := b.Bytes()
		if f.Name == name {
			content = []byte(edit(string(content)))
		}
		w, err := zw.Create(f.Name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(content)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

func addEntries(t *testing.T, data []byte, entries map[string]string) []byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if err := zw.Copy(f); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return out.Bytes()
}

// textBox is a slide text shape.
const textBox = `      <p:sp><p:nvSpPr><p:cNvPr id="9" name="Title"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:p><a:r><a:t>QUARTERLY RESULTS</a:t></a:r></a:p></p:txBody></p:sp>`

func replaceOnce(s, old, repl string) string {
	return string(bytes.Replace([]byte(s), []byte(old), []byte(repl), 1))
}
