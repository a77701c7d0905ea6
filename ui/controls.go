package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/settings"
)

// errNoImages is shown when Generate is pressed with an empty list.
var errNoImages = errors.New("add at least one image first")

// Controls manages the output folder and Generate buttons.
type Controls struct {
	mu      sync.Mutex
	running bool
	ctx     context.Context

	generateBtn *widget.Button
	browseBtn   *widget.Button
	progress    *widget.ProgressBarInfinite

	form   *SettingsForm
	images *ImageList
	logger *log.Logger
	window fyne.Window

	container *fyne.Container
}

// NewControls creates the buttons. Generation runs are cancelled when ctx is.
func NewControls(ctx context.Context, form *SettingsForm, images *ImageList, win fyne.Window, logger *log.Logger) *Controls {
	c := &Controls{
		ctx:    ctx,
		form:   form,
		images: images,
		logger: logger,
		window: win,
	}

	c.generateBtn = widget.NewButtonWithIcon("Generate Presentation", theme.DocumentSaveIcon(), c.onGenerate)
	c.generateBtn.Importance = widget.HighImportance
	c.browseBtn = widget.NewButtonWithIcon("Output Folder...", theme.FolderOpenIcon(), c.onBrowse)
	c.progress = widget.NewProgressBarInfinite()
	c.progress.Hide()

	c.container = container.NewVBox(
		container.NewHBox(c.browseBtn, c.generateBtn),
		c.progress,
	)
	return c
}

// Container returns the controls container.
func (c *Controls) Container() *fyne.Container {
	return c.container
}

// onBrowse moves the output file into a folder picked by the user, keeping
// its file name.
func (c *Controls) onBrowse() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, c.window)
			return
		}
		if dir == nil {
			return
		}
		c.form.SetOutput(filepath.Join(dir.Path(), filepath.Base(c.form.Request(nil).Output)))
	}, c.window)
}

func (c *Controls) onGenerate() {
	images := c.images.Paths()
	if len(images) == 0 {
		dialog.ShowError(errNoImages, c.window)
		return
	}
	s, err := c.form.Settings()
	if err != nil {
		dialog.ShowError(err, c.window)
		return
	}
	c.generate(s, c.form.Request(images), false)
}

// generate runs req in the background. When the output holds content that
// appending would drop, the user is asked before running again with discard.
func (c *Controls) generate(s settings.Settings, req imagedeck.Request, discard bool) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	c.generateBtn.Disable()
	c.progress.Show()
	c.progress.Start()

	go func() {
		defer c.resetState()

		g := imagedeck.NewGenerator(s)
		g.Logger = c.logger
		g.DiscardUnsupported = discard
		res, err := g.Generate(c.ctx, req)
		if errors.Is(err, imagedeck.ErrLossyAppend) {
			msg := fmt.Sprintf("%s contains text, shapes or notes that cannot be kept.\n"+
				"Append anyway and remove them? Choose No and check \"Override existing file\" to replace it.",
				filepath.Base(req.Output))
			fyne.Do(func() {
				dialog.ShowConfirm("Discard Existing Content?", msg, func(ok bool) {
					if ok {
						c.generate(s, req, true)
					}
				}, c.window)
			})
			return
		}
		if err != nil {
			c.logger.Error("generation failed", "output", req.Output, "err", err)
			fyne.Do(func() { dialog.ShowError(err, c.window) })
			return
		}
		c.logger.Info("presentation saved", "output", res.Output, "slides", res.SlidesAdded)
		msg := fmt.Sprintf("Added %s to %s (%s total).",
			plural(res.SlidesAdded, "slide"), res.Output, plural(res.TotalSlides, "slide"))
		fyne.Do(func() { dialog.ShowInformation("Presentation Saved", msg, c.window) })
	}()
}

func (c *Controls) resetState() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	fyne.Do(func() {
		c.progress.Stop()
		c.progress.Hide()
		c.generateBtn.Enable()
	})
}
