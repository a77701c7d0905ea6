package imagedeck

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Reader is the interface for presentation readers.
type Reader interface {
	Read(path string) (*Presentation, error)
	ReadFromReader(r io.ReaderAt, size int64) (*Presentation, error)
}

// ReaderType represents the input format.
type ReaderType string

const (
	ReaderPowerPoint2007 ReaderType = "PowerPoint2007"
)

// ErrNotPresentation is returned for archives without ppt/presentation.xml.
var ErrNotPresentation = errors.New("not a presentation")

// NewReader creates a reader for the given format.
func NewReader(format ReaderType) (Reader, error) {
	switch format {
	case ReaderPowerPoint2007:
		return &PPTXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported reader format: %s", format)
	}
}

// PPTXReader reads PPTX files. Only pictures placed directly on slides are
// kept; every other shape is counted and skipped.
type PPTXReader struct {
	files     map[string]*zip.File
	extracted int64
}

// Read reads a presentation from a file path.
func (r *PPTXReader) Read(path string) (*Presentation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return r.ReadFromReader(f, info.Size())
}

// ReadFromReader reads a presentation from an io.ReaderAt.
func (r *PPTXReader) ReadFromReader(reader io.ReaderAt, size int64) (*Presentation, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid reader size: %d", size)
	}
	if size > int64(maxZipTotalSize) {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed (%d bytes)", size, maxZipTotalSize)
	}

	zr, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	if len(zr.File) > maxZipEntries {
		return nil, fmt.Errorf("zip archive contains too many entries (%d > %d)", len(zr.File), maxZipEntries)
	}
	r.files = make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		r.files[f.Name] = f
	}
	r.extracted = 0

	if _, ok := r.files["ppt/presentation.xml"]; !ok {
		return nil, ErrNotPresentation
	}

	pres := New()
	pres.loaded = true
	pres.droppedParts = countDroppedParts(r.files)

	// missing or malformed core properties are not fatal
	_ = r.readCoreProperties(pres)

	slideRels, err := r.readPresentation(pres)
	if err != nil {
		return nil, err
	}

	presRels, err := r.readRelationships("ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil, err
	}

	for _, relID := range slideRels {
		rel, ok := findRel(presRels, relID)
		if !ok {
			continue
		}
		target := resolveRelativePath("ppt", rel.Target)
		slide, err := r.readSlide(target, pres)
		if err != nil {
			return nil, fmt.Errorf("failed to read slide %s: %w", target, err)
		}
		pres.slides = append(pres.slides, slide)
	}

	return pres, nil
}

// droppedPartDirs hold parts that are never read back.
var droppedPartDirs = []string{
	"ppt/notesSlides/",
	"ppt/charts/",
	"ppt/comments/",
	"ppt/embeddings/",
	"ppt/diagrams/",
	"ppt/tags/",
}

// countDroppedParts counts the parts of files that a saved copy would not
// contain. The writer produces one slide master and one layout, so only the
// ones beyond those are counted.
func countDroppedParts(files map[string]*zip.File) int {
	n, masters, layouts := 0, 0, 0
	for name := range files {
		if strings.Contains(name, "/_rels/") {
			continue
		}
		switch {
		case strings.HasPrefix(name, "ppt/slideMasters/"):
			masters++
		case strings.HasPrefix(name, "ppt/slideLayouts/"):
			layouts++
		default:
			for _, dir := range droppedPartDirs {
				if strings.HasPrefix(name, dir) {
					n++
					break
				}
			}
		}
	}
	return n + max(masters-1, 0) + max(layouts-1, 0)
}

// maxZipEntrySize is the maximum allowed size for a single file extracted from a ZIP.
const maxZipEntrySize = 50 << 20 // 50 MB

// maxZipTotalSize is the cumulative limit for all extracted content from a single ZIP.
const maxZipTotalSize = 200 << 20 // 200 MB

// maxZipEntries is the maximum number of files allowed in a ZIP archive.
const maxZipEntries = 10000

func (r *PPTXReader) readFile(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found in zip: %s", name)
	}
	if f.UncompressedSize64 > maxZipEntrySize {
		return nil, fmt.Errorf("file %s exceeds maximum allowed size (%d bytes)", name, maxZipEntrySize)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip: %w", name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(maxZipEntrySize)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from zip: %w", name, err)
	}
	if int64(len(data)) > int64(maxZipEntrySize) {
		return nil, fmt.Errorf("file %s actual size exceeds maximum allowed size", name)
	}
	r.extracted += int64(len(data))
	if r.extracted > maxZipTotalSize {
		return nil, fmt.Errorf("extracted content exceeds maximum allowed size (%d bytes)", maxZipTotalSize)
	}
	return data, nil
}

// --- presentation.xml ---

type xmlPresentationForRead struct {
	XMLName xml.Name `xml:"presentation"`
	SldIDs  []struct {
		RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
	SldSz struct {
		CX   int64  `xml:"cx,attr"`
		CY   int64  `xml:"cy,attr"`
		Type string `xml:"type,attr"`
	} `xml:"sldSz"`
}

// readPresentation reads the slide size and returns the slide relationship
// ids in presentation order.
func (r *PPTXReader) readPresentation(pres *Presentation) ([]string, error) {
	data, err := r.readFile("ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	var x xmlPresentationForRead
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("failed to parse presentation.xml: %w", err)
	}
	if x.SldSz.CX > 0 && x.SldSz.CY > 0 {
		pres.layout = layoutFromSize(x.SldSz.CX, x.SldSz.CY, x.SldSz.Type)
	}
	ids := make([]string, 0, len(x.SldIDs))
	for _, s := range x.SldIDs {
		ids = append(ids, s.RID)
	}
	return ids, nil
}

// --- docProps/core.xml ---

type xmlCorePropsForRead struct {
	Creator        string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Title          string `xml:"http://purl.org/dc/elements/1.1/ title"`
	Description    string `xml:"http://purl.org/dc/elements/1.1/ description"`
	Subject        string `xml:"http://purl.org/dc/elements/1.1/ subject"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Keywords       string `xml:"keywords"`
	Category       string `xml:"category"`
	Revision       string `xml:"revision"`
	Created        string `xml:"http://purl.org/dc/terms/ created"`
	Modified       string `xml:"http://purl.org/dc/terms/ modified"`
}

func (r *PPTXReader) readCoreProperties(pres *Presentation) error {
	data, err := r.readFile("docProps/core.xml")
	if err != nil {
		return err
	}
	var x xmlCorePropsForRead
	if err := xml.Unmarshal(data, &x); err != nil {
		return fmt.Errorf("failed to parse core properties: %w", err)
	}
	props := pres.properties
	props.Creator = x.Creator
	props.LastModifiedBy = x.LastModifiedBy
	props.Title = x.Title
	props.Description = x.Description
	props.Subject = x.Subject
	props.Keywords = x.Keywords
	props.Category = x.Category
	props.Revision = x.Revision
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(x.Created)); err == nil {
		props.Created = t
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(x.Modified)); err == nil {
		props.Modified = t
	}
	return nil
}

// --- Relationship reading ---

type xmlRelForRead struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type xmlRelsForRead struct {
	XMLName       xml.Name        `xml:"Relationships"`
	Relationships []xmlRelForRead `xml:"Relationship"`
}

// readRelationships returns nil without error when the part does not exist.
func (r *PPTXReader) readRelationships(path string) ([]xmlRelForRead, error) {
	if _, ok := r.files[path]; !ok {
		return nil, nil
	}
	data, err := r.readFile(path)
	if err != nil {
		return nil, err
	}
	var rels xmlRelsForRead
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships %s: %w", path, err)
	}
	return rels.Relationships, nil
}

func findRel(rels []xmlRelForRead, id string) (xmlRelForRead, bool) {
	for _, rel := range rels {
		if rel.ID == id {
			return rel, true
		}
	}
	return xmlRelForRead{}, false
}
