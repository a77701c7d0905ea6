package imagedeck

import (
	"archive/zip"
	"fmt"
	"strings"
)

// Picture relationship ids start after rId1, which is the slide layout.
func pictureRelID(i int) string {
	return fmt.Sprintf("rId%d", i+2)
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is the group shape

	for i, pic := range slide.pictures {
		shapesXML.WriteString(w.writePictureXML(pic, shapeID, pictureRelID(i)))
		shapeID++
	}

	show := ""
	if slide.hidden {
		show = ` show="0"`
	}
	name := ""
	if slide.name != "" {
		name = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"%s>
  <p:cSld%s>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, show, name, blankSpTree, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	rels := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		},
	}
	for i, pic := range slide.pictures {
		m := w.media[w.mediaIndex[pic]]
		rels.Relationships = append(rels.Relationships, xmlRelationship{
			ID:     pictureRelID(i),
			Type:   relTypeImage,
			Target: "../media/" + m.name,
		})
	}
	return writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels)
}

func (w *PPTXWriter) writePictureXML(p *Picture, id int, relID string) string {
	name := p.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id-1)
	}
	geom := p.geometry
	if geom == "" {
		geom = GeometryRect
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s        </p:spPr>
      </p:pic>
`, id, xmlEscape(name), xmlEscape(p.description),
		relID,
		p.offsetX, p.offsetY, p.width, p.height,
		geom,
		writeBorderXML(p.border))
}

func writeBorderXML(b *Border) string {
	if b == nil {
		return ""
	}
	dashXML := ""
	switch b.Style {
	case BorderDash:
		dashXML = `<a:prstDash val="dash"/>`
	case BorderDot:
		dashXML = `<a:prstDash val="dot"/>`
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>%s</a:ln>\n",
		b.Width, colorHex(b.Color), dashXML)
}

// --- Media ---

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, m := range w.media {
		fw, err := zw.Create("ppt/media/" + m.name)
		if err != nil {
			return fmt.Errorf("failed to create media %s: %w", m.name, err)
		}
		if _, err := fw.Write(m.data); err != nil {
			return fmt.Errorf("failed to write media %s: %w", m.name, err)
		}
	}
	return nil
}
