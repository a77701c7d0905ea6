package imagedeck

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedImage is returned for image formats that cannot be embedded.
var ErrUnsupportedImage = errors.New("unsupported image format")

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 50 << 20 // 50 MB

// Picture is an image placed on a slide.
type Picture struct {
	name        string
	description string
	offsetX     int64
	offsetY     int64
	width       int64
	height      int64

	path     string // file read on save
	data     []byte // embedded bytes, preferred over path
	mimeType string

	geometry Geometry
	border   *Border
}

// NewPicture creates an empty rectangular picture.
func NewPicture() *Picture {
	return &Picture{geometry: GeometryRect}
}

func (p *Picture) GetName() string        { return p.name }
func (p *Picture) GetDescription() string { return p.description }
func (p *Picture) GetOffsetX() int64      { return p.offsetX }
func (p *Picture) GetOffsetY() int64      { return p.offsetY }
func (p *Picture) GetWidth() int64        { return p.width }
func (p *Picture) GetHeight() int64       { return p.height }
func (p *Picture) GetPath() string        { return p.path }
func (p *Picture) GetImageData() []byte   { return p.data }
func (p *Picture) GetMimeType() string    { return p.mimeType }
func (p *Picture) GetGeometry() Geometry  { return p.geometry }
func (p *Picture) GetBorder() *Border     { return p.border }

func (p *Picture) SetName(n string) *Picture        { p.name = n; return p }
func (p *Picture) SetDescription(d string) *Picture { p.description = d; return p }

// SetPosition sets the top-left corner in EMU.
func (p *Picture) SetPosition(x, y int64) *Picture {
	p.offsetX, p.offsetY = x, y
	return p
}

// SetSize sets the width and height in EMU.
func (p *Picture) SetSize(w, h int64) *Picture {
	p.width, p.height = w, h
	return p
}

// SetGeometry sets the clipping shape. An empty value means GeometryRect.
func (p *Picture) SetGeometry(g Geometry) *Picture {
	if g == "" {
		g = GeometryRect
	}
	p.geometry = g
	return p
}

// SetBorder sets the outline. Nil removes it.
func (p *Picture) SetBorder(b *Border) *Picture {
	p.border = b
	return p
}

// SetPath points the picture at an image file and guesses its MIME type from
// the extension. The file is not read until the presentation is saved.
func (p *Picture) SetPath(path string) *Picture {
	p.path = path
	p.mimeType = guessMimeFromPath(path)
	return p
}

// SetImageData embeds raw image bytes. An empty mimeType is detected from
// the data.
func (p *Picture) SetImageData(data []byte, mimeType string) *Picture {
	if mimeType == "" {
		mimeType = sniffMime(data)
	}
	p.data = data
	p.mimeType = mimeType
	return p
}

// SetImageFromFile reads an image file and embeds its bytes.
func (p *Picture) SetImageFromFile(path string) error {
	data, err := readImageFile(path)
	if err != nil {
		return err
	}
	mime := guessMimeFromPath(path)
	if mime == "" {
		mime = sniffMime(data)
	}
	if mime == "" {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedImage)
	}
	p.path = path
	p.data = data
	p.mimeType = mime
	return nil
}

// imageBytes returns the embedded data, reading the file when there is none.
func (p *Picture) imageBytes() ([]byte, error) {
	if p.data != nil {
		return p.data, nil
	}
	if p.path == "" {
		return nil, errors.New("picture has neither data nor path")
	}
	return readImageFile(p.path)
}

func readImageFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return nil, fmt.Errorf("image file %s too large: %d bytes (max %d)", path, info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// mimeExtensions maps the embeddable MIME types to their part extension.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
}

// guessMimeFromPath guesses the MIME type from a file extension. It returns
// "" for formats that cannot be embedded.
func guessMimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg", ".jpe":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return ""
	}
}

// sniffMime detects the format of encoded image data with the registered
// image decoders.
func sniffMime(data []byte) string {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	if format == "webp" {
		return ""
	}
	return "image/" + format
}

// IsImageFile reports whether path has an extension that can be embedded.
func IsImageFile(path string) bool {
	return guessMimeFromPath(path) != ""
}

// ImagesInDir returns the embeddable images directly inside dir, sorted by
// file name. Subdirectories are not searched.
func ImagesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var refs []string
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		refs = append(refs, filepath.Join(dir, e.Name()))
	}
	return refs, nil
}

func baseName(path string) string {
	return filepath.Base(path)
}
