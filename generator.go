package imagedeck

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/VantageDataChat/imagedeck/assembler"
	"github.com/VantageDataChat/imagedeck/layout"
	"github.com/VantageDataChat/imagedeck/settings"
)

var (
	// ErrNoPresentation is returned by Generator methods called before Create.
	ErrNoPresentation = errors.New("no presentation: call Create first")
	// ErrLossyAppend is returned by Create when the existing presentation
	// holds content that saving would remove.
	ErrLossyAppend = errors.New("existing presentation has content that cannot be kept")
)

// Generator builds a presentation from image files: open or create the
// document, add the images four to a slide, save.
type Generator struct {
	Settings settings.Settings
	// Logger receives per-slide debug output. Nil discards it.
	Logger *log.Logger
	// DiscardUnsupported lets Create append to a presentation with text,
	// shapes, notes or other non-picture content. That content is left out
	// of the saved file.
	DiscardUnsupported bool

	pres *Presentation
}

// NewGenerator returns a Generator using s.
func NewGenerator(s settings.Settings) *Generator {
	return &Generator{Settings: s}
}

// Presentation returns the document being built, or nil before Create.
func (g *Generator) Presentation() *Presentation { return g.pres }

// Create opens the presentation at path for appending, or starts a new one
// when override is set or the file does not exist. Appending to a file whose
// content is not only pictures fails with ErrLossyAppend unless
// DiscardUnsupported is set.
func (g *Generator) Create(path string, override bool) error {
	p, err := OpenOrCreate(path, override)
	if err != nil {
		return err
	}
	shapes, parts := p.DroppedShapes(), p.DroppedParts()
	if shapes+parts > 0 {
		if !g.DiscardUnsupported {
			return fmt.Errorf("%w: %s has %d shapes and %d parts besides pictures",
				ErrLossyAppend, path, shapes, parts)
		}
		g.logger().Warn("discarding non-picture content", "path", path, "shapes", shapes, "parts", parts)
	}
	g.pres = p
	g.logger().Debug("presentation ready", "path", path, "slides", p.SlideCount(), "canvas", p.CanvasSize())
	return nil
}

// AddImages lays refs out four to a slide on new blank slides and returns
// the number of slides added.
func (g *Generator) AddImages(refs []string) (int, error) {
	return g.addImages(context.Background(), refs)
}

func (g *Generator) addImages(ctx context.Context, refs []string) (int, error) {
	if g.pres == nil {
		return 0, ErrNoPresentation
	}
	doc := &trackedDocument{ctx: ctx, pres: g.pres, logger: g.logger()}
	return assembler.Assemble(doc, refs, g.Settings)
}

// Save writes the presentation to path.
func (g *Generator) Save(path string) error {
	if g.pres == nil {
		return ErrNoPresentation
	}
	if err := g.pres.Save(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Request describes one generation run.
type Request struct {
	Images   []string
	Output   string
	Override bool
	// SlideSize applies to new presentations only; an existing file keeps
	// its own size even when it has no slides.
	SlideSize string
}

// Result summarizes a generation run.
type Result struct {
	Output      string
	SlidesAdded int
	TotalSlides int
	Images      int
}

// Generate creates or opens req.Output, adds req.Images and saves. The
// context is checked before every slide; a cancelled run writes nothing.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if req.Output == "" {
		return Result{}, errors.New("no output path")
	}
	if err := g.Create(req.Output, req.Override); err != nil {
		return Result{}, err
	}
	if req.SlideSize != "" && g.pres.IsNew() {
		dl, err := ParseLayout(req.SlideSize)
		if err != nil {
			return Result{}, err
		}
		g.pres.SetLayout(dl)
	}

	n, err := g.addImages(ctx, req.Images)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := g.Save(req.Output); err != nil {
		return Result{}, err
	}
	return Result{
		Output:      req.Output,
		SlidesAdded: n,
		TotalSlides: g.pres.SlideCount(),
		Images:      len(req.Images),
	}, nil
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		g.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return g.Logger
}

// trackedDocument adds cancellation and logging to a Presentation.
type trackedDocument struct {
	ctx    context.Context
	pres   *Presentation
	logger *log.Logger
}

func (d *trackedDocument) CanvasSize() layout.Canvas { return d.pres.CanvasSize() }

func (d *trackedDocument) AddBlankSlide() (assembler.Slide, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, err
	}
	s := d.pres.CreateSlide()
	d.logger.Debug("slide added", "slide", d.pres.SlideCount())
	return &trackedSlide{slide: s, logger: d.logger}, nil
}

type trackedSlide struct {
	slide  *Slide
	logger *log.Logger
}

func (s *trackedSlide) PlaceImage(ref string, p layout.Placement) error {
	if err := s.slide.PlaceImage(ref, p); err != nil {
		return err
	}
	s.logger.Debug("image placed", "image", ref, "x", p.X, "y", p.Y, "w", p.Width, "h", p.Height)
	return nil
}
