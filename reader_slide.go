package imagedeck

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/VantageDataChat/imagedeck/settings"
)

// droppable lists the spTree children that are skipped and counted.
var droppable = map[string]bool{
	"sp":               true,
	"cxnSp":            true,
	"graphicFrame":     true,
	"grpSp":            true,
	"contentPart":      true,
	"AlternateContent": true,
}

func (r *PPTXReader) readSlide(slidePath string, pres *Presentation) (*Slide, error) {
	data, err := r.readFile(slidePath)
	if err != nil {
		return nil, err
	}

	relsPath := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	rels, err := r.readRelationships(relsPath)
	if err != nil {
		return nil, err
	}

	slide := newSlide()
	dec := xml.NewDecoder(bytes.NewReader(data))
	inSpTree := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed slide: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "sld":
				for _, a := range t.Attr {
					if a.Name.Local == "show" && (a.Value == "0" || a.Value == "false") {
						slide.hidden = true
					}
				}
			case t.Name.Local == "cSld":
				for _, a := range t.Attr {
					if a.Name.Local == "name" {
						slide.name = a.Value
					}
				}
			case t.Name.Local == "spTree":
				inSpTree = true
			case inSpTree && t.Name.Local == "pic":
				pic, embed, err := parsePicture(dec)
				if err != nil {
					return nil, err
				}
				if !r.attachMedia(pic, embed, rels, slidePath) {
					pres.dropped++
					continue
				}
				slide.pictures = append(slide.pictures, pic)
			case inSpTree && droppable[t.Name.Local]:
				pres.dropped++
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("malformed slide: %w", err)
				}
			}
		case xml.EndElement:
			if t.Name.Local == "spTree" {
				inSpTree = false
			}
		}
	}

	return slide, nil
}

// attachMedia loads the image behind the blip relationship. It reports false
// when the picture has no usable embedded image.
func (r *PPTXReader) attachMedia(pic *Picture, embed string, rels []xmlRelForRead, slidePath string) bool {
	rel, ok := findRel(rels, embed)
	if !ok || rel.TargetMode == "External" {
		return false
	}
	mediaPath := resolveRelativePath(path.Dir(slidePath), rel.Target)
	data, err := r.readFile(mediaPath)
	if err != nil {
		return false
	}
	mime := guessMimeFromPath(mediaPath)
	if mime == "" {
		mime = sniffMime(data)
	}
	if mime == "" {
		return false
	}
	pic.path = ""
	pic.SetImageData(data, mime)
	return true
}

// parsePicture consumes a <p:pic> element whose start tag has just been read.
// It returns the picture and the relationship id of its image.
func parsePicture(dec *xml.Decoder) (*Picture, string, error) {
	pic := NewPicture()
	embed := ""
	depth := 1
	var inSpPr, inXfrm, inLn, lnFill bool
	var border *Border

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, "", fmt.Errorf("malformed picture: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				pic.name = attr(t, "name")
				pic.description = attr(t, "descr")
			case "blip":
				embed = attr(t, "embed")
			case "spPr":
				inSpPr = true
			case "xfrm":
				inXfrm = inSpPr
			case "off":
				if inXfrm {
					pic.offsetX = attrInt(t, "x")
					pic.offsetY = attrInt(t, "y")
				}
			case "ext":
				if inXfrm {
					pic.width = attrInt(t, "cx")
					pic.height = attrInt(t, "cy")
				}
			case "prstGeom":
				if inSpPr {
					pic.SetGeometry(Geometry(attr(t, "prst")))
				}
			case "ln":
				if inSpPr {
					inLn = true
					lnFill = false
					border = &Border{Style: BorderSolid, Width: attrInt(t, "w")}
				}
			case "solidFill":
				if inLn {
					lnFill = true
				}
			case "srgbClr":
				if inLn && lnFill {
					if c, err := settings.ParseColor("#" + attr(t, "val")); err == nil {
						border.Color = c
					}
				}
			case "prstDash":
				if inLn {
					switch attr(t, "val") {
					case "dash", "lgDash", "sysDash":
						border.Style = BorderDash
					case "dot", "sysDot":
						border.Style = BorderDot
					}
				}
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "spPr":
				inSpPr = false
			case "xfrm":
				inXfrm = false
			case "ln":
				if inLn && lnFill {
					pic.border = border
				}
				inLn = false
			}
		}
	}
	return pic, embed, nil
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrInt(t xml.StartElement, local string) int64 {
	v, err := strconv.ParseInt(attr(t, local), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Results always stay inside the package root.
func resolveRelativePath(base, rel string) string {
	if strings.HasPrefix(rel, "/") {
		return strings.TrimPrefix(path.Clean(rel), "/")
	}

	baseParts := strings.Split(base, "/")
	relParts := strings.Split(rel, "/")

	result := make([]string, 0, len(baseParts)+len(relParts))
	for _, part := range baseParts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}

	for _, part := range relParts {
		if part == ".." {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
		} else if part != "." && part != "" {
			result = append(result, part)
		}
	}

	resolved := strings.Join(result, "/")

	// keep targets under ppt/ so a relationship cannot reach arbitrary parts
	if !strings.HasPrefix(resolved, "ppt/") {
		return "ppt/" + resolved
	}
	return resolved
}
