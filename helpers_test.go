package imagedeck

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// helper: write to memory and read back
func roundTrip(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	var buf bytes.Buffer
	if err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	data := buf.Bytes()
	pres, err := ReadFrom(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return pres
}

// helper: save to temp file and re-open
func roundTripFile(t *testing.T, p *Presentation) *Presentation {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pptx")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	pres, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return pres
}

// helper: a solid w x h PNG
func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// helper: write a solid image file into dir; the extension picks the encoder
func writeImage(t *testing.T, dir, name string, c color.Color) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var data []byte
	switch filepath.Ext(name) {
	case ".jpg", ".jpeg":
		img := image.NewRGBA(image.Rect(0, 0, 40, 30))
		draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			t.Fatalf("jpeg.Encode: %v", err)
		}
		data = buf.Bytes()
	default:
		data = solidPNG(t, 40, 30, c)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)
