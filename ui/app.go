// Package ui is the desktop window: a settings form, the image list with a
// thumbnail preview, and a button that generates the presentation.
package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"github.com/charmbracelet/log"

	"github.com/VantageDataChat/imagedeck/internal/config"
)

// BuildMainWindow creates and configures the main application window.
func BuildMainWindow(ctx context.Context, a fyne.App, cfg config.Config, logger *log.Logger) fyne.Window {
	win := a.NewWindow("Image Deck")
	win.Resize(NewWindowSize())

	images := &ImageList{}
	form := NewSettingsForm(cfg)
	panel := NewImagePanel(images, win, logger)
	controls := NewControls(ctx, form, images, win, logger)

	left := container.NewBorder(nil, controls.Container(), nil, nil,
		container.NewVScroll(form.Container()))

	content := container.NewHSplit(left, panel.Container())
	content.SetOffset(MainSplitRatio)

	win.SetContent(content)
	return win
}

// Run opens the main window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	a := app.NewWithID(AppID)
	win := BuildMainWindow(ctx, a, cfg, logger)

	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	logger.Debug("window opened")
	win.ShowAndRun()
	return ctx.Err()
}
