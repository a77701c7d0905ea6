package imagedeck

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage reads and decodes an image file, applying its EXIF orientation.
func DecodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Thumbnail decodes the image at path and scales it down to fit inside
// maxW x maxH, keeping its aspect ratio. Smaller images are returned as-is.
func Thumbnail(path string, maxW, maxH int) (image.Image, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos), nil
}

// decodePicture decodes the image of a picture for rendering.
func decodePicture(p *Picture) (image.Image, error) {
	data, err := p.imageBytes()
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
