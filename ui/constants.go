package ui

import "fyne.io/fyne/v2"

// AppID identifies the application to the fyne driver.
const AppID = "io.github.vantagedatachat.imagedeck"

// Window dimensions
const (
	WindowWidth  = 860
	WindowHeight = 640
)

// ThumbnailSize is the edge of the square preview box, in pixels.
const ThumbnailSize = 200

// MainSplitRatio gives the settings form 45% of the window width.
const MainSplitRatio = 0.45

// NewWindowSize returns the default window size
func NewWindowSize() fyne.Size {
	return fyne.NewSize(WindowWidth, WindowHeight)
}

// imageExtensions are offered by the add-image dialog.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}
