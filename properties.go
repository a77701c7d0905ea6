package imagedeck

import (
	"fmt"
	"strings"
)

// DocumentLayout is the slide size.
type DocumentLayout struct {
	CX   int64 // width in EMU (English Metric Units)
	CY   int64 // height in EMU
	Name string
}

// Slide size presets.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutLetter      = "letter"
	LayoutCustom      = "custom"
)

var layoutSizes = map[string][2]int64{
	LayoutScreen4x3:   {9144000, 6858000},  // 10 x 7.5 in
	LayoutScreen16x9:  {12192000, 6858000}, // 13.333 x 7.5 in
	LayoutScreen16x10: {10972800, 6858000}, // 12 x 7.5 in
	LayoutA4:          {9906000, 6858000},  // 10.833 x 7.5 in
	LayoutLetter:      {9144000, 6858000},
}

// pptTypes maps presets to the sldSz type attribute.
var pptTypes = map[string]string{
	LayoutScreen4x3:   "screen4x3",
	LayoutScreen16x10: "screen16x10",
	LayoutA4:          "A4",
	LayoutLetter:      "letter",
}

// NewDocumentLayout creates a default 4:3 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{
		CX:   9144000,
		CY:   6858000,
		Name: LayoutScreen4x3,
	}
}

// SetLayout switches to a preset. Unknown names are ignored.
func (dl *DocumentLayout) SetLayout(name string) {
	size, ok := layoutSizes[name]
	if !ok {
		return
	}
	dl.Name = name
	dl.CX, dl.CY = size[0], size[1]
}

// SetCustomLayout sets custom dimensions in EMU. Non-positive values fall
// back to the 4:3 size.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = 9144000
	}
	if cy <= 0 {
		cy = 6858000
	}
	dl.CX = cx
	dl.CY = cy
	dl.Name = LayoutCustom
}

// ParseLayout resolves a slide size given as a preset name or a short alias
// ("4x3", "16x9", "16x10", "a4", "letter").
func ParseLayout(name string) (*DocumentLayout, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "4x3", "4:3", "screen4x3":
		key = LayoutScreen4x3
	case "16x9", "16:9", "screen16x9", "wide":
		key = LayoutScreen16x9
	case "16x10", "16:10", "screen16x10":
		key = LayoutScreen16x10
	case "a4":
		key = LayoutA4
	case "letter":
		key = LayoutLetter
	default:
		return nil, fmt.Errorf("unknown slide size %q", name)
	}
	dl := NewDocumentLayout()
	dl.SetLayout(key)
	return dl, nil
}

// layoutFromSize finds the preset matching a size read from a file.
func layoutFromSize(cx, cy int64, typ string) *DocumentLayout {
	dl := &DocumentLayout{CX: cx, CY: cy, Name: LayoutCustom}
	for name, t := range pptTypes {
		if t == typ && layoutSizes[name] == [2]int64{cx, cy} {
			dl.Name = name
			return dl
		}
	}
	if typ == "" && (layoutSizes[LayoutScreen16x9] == [2]int64{cx, cy}) {
		dl.Name = LayoutScreen16x9
	}
	return dl
}
