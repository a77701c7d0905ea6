package imagedeck

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Open reads a PPTX file from disk.
func Open(path string) (*Presentation, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

// ReadFrom reads a PPTX from an io.ReaderAt with the given size.
func ReadFrom(r io.ReaderAt, size int64) (*Presentation, error) {
	reader, err := NewReader(ReaderPowerPoint2007)
	if err != nil {
		return nil, err
	}
	return reader.ReadFromReader(r, size)
}

// OpenOrCreate opens the presentation at path so new slides are appended to
// it. When override is set, or the file does not exist, it returns a new
// empty presentation instead; the file is only replaced on Save.
func OpenOrCreate(path string, override bool) (*Presentation, error) {
	if override {
		return New(), nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	p, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return p, nil
}

// Save writes the presentation to a PPTX file.
func (p *Presentation) Save(path string) error {
	writer, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return writer.Save(path)
}

// WriteTo writes the presentation to a writer in PPTX format.
func (p *Presentation) WriteTo(w io.Writer) error {
	writer, err := NewWriter(p, WriterPowerPoint2007)
	if err != nil {
		return err
	}
	return writer.WriteTo(w)
}
