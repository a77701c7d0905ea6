package imagedeck

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// ParseImageFormat maps "png", "jpg" and "jpeg" to an ImageFormat.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch s {
	case "", "png":
		return ImageFormatPNG, nil
	case "jpg", "jpeg":
		return ImageFormatJPEG, nil
	}
	return 0, fmt.Errorf("unknown image format %q", s)
}

// Extension returns the file extension for the format, without a dot.
func (f ImageFormat) Extension() string {
	if f == ImageFormatJPEG {
		return "jpg"
	}
	return "png"
}

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output image width in pixels. Height is calculated from slide aspect ratio.
	// Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the white slide background.
	BackgroundColor *color.RGBA
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// SlideToImage renders a single slide to an image. Pictures are scaled into
// their frames, clipped to their geometry and outlined with their border.
// Pictures whose data cannot be decoded are drawn as a gray outline.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrSlideIndex, slideIndex, len(p.slides))
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}

	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgW := width
	imgH := int(math.Round(float64(imgW) * slideH / slideW))

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))

	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.BackgroundColor != nil {
		bg = *opts.BackgroundColor
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	r := &renderer{
		img:   img,
		scale: float64(imgW) / slideW,
	}
	for _, pic := range p.slides[slideIndex].pictures {
		r.renderPicture(pic)
	}
	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files.
// The pattern should contain %d for the slide number (1-based), e.g. "slide_%d.png".
// It returns the paths written.
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) ([]string, error) {
	paths := make([]string, 0, len(p.slides))
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return paths, fmt.Errorf("slide %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) (err error) {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}

// --- renderer ---

type renderer struct {
	img   *image.RGBA
	scale float64 // pixels per EMU
}

func (r *renderer) px(emu int64) float64 {
	return float64(emu) * r.scale
}

func (r *renderer) renderPicture(p *Picture) {
	frame := shapeMask{
		x0:       r.px(p.offsetX),
		y0:       r.px(p.offsetY),
		x1:       r.px(p.offsetX + p.width),
		y1:       r.px(p.offsetY + p.height),
		geometry: p.geometry,
	}
	dst := frame.bounds()
	if dst.Empty() {
		return
	}

	src, err := decodePicture(p)
	if err != nil {
		r.drawRect(dst, color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	draw.DrawMask(r.img, dst, scaled, image.Point{}, frame, dst.Min, draw.Over)

	if b := p.border; b != nil && b.Width > 0 {
		half := math.Max(r.px(b.Width)/2, 0.5)
		ring := ringMask{outer: frame.inset(-half), inner: frame.inset(half)}
		c := color.RGBA{R: b.Color.R, G: b.Color.G, B: b.Color.B, A: 255}
		draw.DrawMask(r.img, ring.outer.bounds(), &image.Uniform{c}, image.Point{}, ring, ring.outer.bounds().Min, draw.Over)
	}
}

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.setPixel(x, rect.Min.Y+i, c)
			r.setPixel(x, rect.Max.Y-1-i, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			r.setPixel(rect.Min.X+i, y, c)
			r.setPixel(rect.Max.X-1-i, y, c)
		}
	}
}

func (r *renderer) setPixel(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.SetRGBA(x, y, c)
	}
}

// shapeMask is an alpha mask covering a picture frame in image space.
type shapeMask struct {
	x0, y0, x1, y1 float64
	geometry       Geometry
}

func (m shapeMask) bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(m.x0)), int(math.Floor(m.y0)),
		int(math.Ceil(m.x1)), int(math.Ceil(m.y1)),
	)
}

// inset shrinks the frame by d pixels on every side; negative d grows it.
func (m shapeMask) inset(d float64) shapeMask {
	return shapeMask{x0: m.x0 + d, y0: m.y0 + d, x1: m.x1 - d, y1: m.y1 - d, geometry: m.geometry}
}

// contains reports whether the pixel center (x+0.5, y+0.5) is inside the frame.
func (m shapeMask) contains(x, y int) bool {
	px, py := float64(x)+0.5, float64(y)+0.5
	if px < m.x0 || px >= m.x1 || py < m.y0 || py >= m.y1 {
		return false
	}
	w, h := m.x1-m.x0, m.y1-m.y0
	switch m.geometry {
	case GeometryEllipse:
		dx := (px - (m.x0 + w/2)) / (w / 2)
		dy := (py - (m.y0 + h/2)) / (h / 2)
		return dx*dx+dy*dy <= 1
	case GeometryRoundRect:
		rad := math.Min(w, h) * roundRectRadius
		cx := math.Min(math.Max(px, m.x0+rad), m.x1-rad)
		cy := math.Min(math.Max(py, m.y0+rad), m.y1-rad)
		dx, dy := px-cx, py-cy
		return dx*dx+dy*dy <= rad*rad
	}
	return true
}

func (m shapeMask) ColorModel() color.Model { return color.AlphaModel }
func (m shapeMask) Bounds() image.Rectangle { return m.bounds() }

func (m shapeMask) At(x, y int) color.Color {
	if m.contains(x, y) {
		return color.Opaque
	}
	return color.Transparent
}

// ringMask covers the area between two nested frames.
type ringMask struct {
	outer, inner shapeMask
}

func (m ringMask) ColorModel() color.Model { return color.AlphaModel }
func (m ringMask) Bounds() image.Rectangle { return m.outer.bounds() }

func (m ringMask) At(x, y int) color.Color {
	if m.outer.contains(x, y) && !m.inner.contains(x, y) {
		return color.Opaque
	}
	return color.Transparent
}
