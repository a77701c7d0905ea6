package imagedeck

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
)

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return &PPTXWriter{presentation: p}, nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
	media        []mediaPart
	mediaIndex   map[*Picture]int
}

// mediaPart is one file under ppt/media.
type mediaPart struct {
	name string // e.g. "image3.png"
	mime string
	data []byte
}

// Save writes the presentation to path. The output is written to a temporary
// file in the same directory and renamed into place, so an existing file is
// only replaced by a complete one.
func (w *PPTXWriter) Save(path string) (err error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err := w.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// WriteTo writes the presentation to a writer. Image files referenced by
// path are read before anything is written.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return errors.New("presentation is nil")
	}
	if err := w.collectMedia(); err != nil {
		return err
	}

	zw := zip.NewWriter(writer)

	parts := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, write := range parts {
		if err := write(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	return zw.Close()
}

// collectMedia reads every picture's bytes and assigns media part names.
// Pictures that point at the same file share one part.
func (w *PPTXWriter) collectMedia() error {
	w.media = w.media[:0]
	w.mediaIndex = make(map[*Picture]int)
	byPath := make(map[string]int)

	for i, slide := range w.presentation.slides {
		for _, pic := range slide.pictures {
			if pic.data == nil && pic.path != "" {
				if idx, ok := byPath[pic.path]; ok {
					w.mediaIndex[pic] = idx
					continue
				}
			}
			ext, ok := mimeExtensions[pic.mimeType]
			if !ok {
				return fmt.Errorf("slide %d: %s: %w", i+1, pictureLabel(pic), ErrUnsupportedImage)
			}
			data, err := pic.imageBytes()
			if err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			idx := len(w.media)
			w.media = append(w.media, mediaPart{
				name: fmt.Sprintf("image%d.%s", idx+1, ext),
				mime: pic.mimeType,
				data: data,
			})
			w.mediaIndex[pic] = idx
			if pic.data == nil && pic.path != "" {
				byPath[pic.path] = idx
			}
		}
	}
	return nil
}

func pictureLabel(p *Picture) string {
	if p.path != "" {
		return p.path
	}
	if p.name != "" {
		return p.name
	}
	return "picture"
}
