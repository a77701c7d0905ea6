package imagedeck

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural issues and returns an error
// describing all problems found, or nil if the presentation is valid.
func (p *Presentation) Validate() error {
	var errs []string

	if p.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if p.layout == nil {
		errs = append(errs, "document layout is nil")
	} else {
		if p.layout.CX <= 0 {
			errs = append(errs, "layout width (CX) must be positive")
		}
		if p.layout.CY <= 0 {
			errs = append(errs, "layout height (CY) must be positive")
		}
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		for _, e := range validateSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string
	for j, pic := range s.pictures {
		prefix := fmt.Sprintf("picture %d", j+1)
		if pic == nil {
			errs = append(errs, prefix+": picture is nil")
			continue
		}
		if pic.width < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if pic.height < 0 {
			errs = append(errs, prefix+": height is negative")
		}
		if pic.data == nil && pic.path == "" {
			errs = append(errs, prefix+": no image data or path")
		}
		if !isValidImageMime(pic.mimeType) {
			errs = append(errs, prefix+fmt.Sprintf(": unsupported image type %q", pic.mimeType))
		}
		if pic.border != nil && pic.border.Width < 0 {
			errs = append(errs, prefix+": border width is negative")
		}
	}
	return errs
}

func isValidImageMime(mime string) bool {
	_, ok := mimeExtensions[mime]
	return ok
}
