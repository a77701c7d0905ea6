package ui

import (
	"image"
	"path/filepath"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/VantageDataChat/imagedeck"
)

// ImagePanel shows the image list with its edit buttons and a thumbnail of
// the selected image.
type ImagePanel struct {
	images   *ImageList
	selected int
	// loadSeq drops thumbnails that finish after a newer selection.
	loadSeq atomic.Uint64

	list    *widget.List
	preview *canvas.Image
	count   *widget.Label
	logger  *log.Logger
	window  fyne.Window

	addBtn    *widget.Button
	addDirBtn *widget.Button
	upBtn     *widget.Button
	downBtn   *widget.Button
	deleteBtn *widget.Button
	deleteAll *widget.Button
	container *fyne.Container
}

// NewImagePanel creates the panel. Dialogs open on win.
func NewImagePanel(images *ImageList, win fyne.Window, logger *log.Logger) *ImagePanel {
	ip := &ImagePanel{
		images:   images,
		selected: -1,
		logger:   logger,
		window:   win,
	}

	ip.list = widget.NewList(
		func() int {
			return ip.images.Len()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(filepath.Base(ip.images.At(id)))
		},
	)
	ip.list.OnSelected = ip.onSelected

	ip.preview = canvas.NewImageFromImage(nil)
	ip.preview.FillMode = canvas.ImageFillContain
	ip.preview.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))

	ip.count = widget.NewLabel("")
	ip.addBtn = widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), ip.onAdd)
	ip.addDirBtn = widget.NewButtonWithIcon("Add Folder", theme.FolderOpenIcon(), ip.onAddFolder)
	ip.upBtn = widget.NewButtonWithIcon("Up", theme.MoveUpIcon(), ip.onMoveUp)
	ip.downBtn = widget.NewButtonWithIcon("Down", theme.MoveDownIcon(), ip.onMoveDown)
	ip.deleteBtn = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), ip.onDelete)
	ip.deleteAll = widget.NewButtonWithIcon("Delete All", theme.ContentClearIcon(), ip.onDeleteAll)

	header := widget.NewLabel("Images")
	header.TextStyle = fyne.TextStyle{Bold: true}

	buttons := container.NewGridWithColumns(3,
		ip.addBtn, ip.addDirBtn, ip.deleteAll,
		ip.upBtn, ip.downBtn, ip.deleteBtn,
	)
	ip.container = container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()),
		container.NewVBox(buttons, ip.count, container.NewCenter(ip.preview)),
		nil, nil,
		ip.list,
	)

	ip.refresh()
	return ip
}

// Container returns the panel container.
func (ip *ImagePanel) Container() *fyne.Container {
	return ip.container
}

func (ip *ImagePanel) onAdd() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ip.window)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		ip.images.Add(path)
		ip.logger.Debug("image added", "path", path)
		ip.selectIndex(ip.images.Len() - 1)
	}, ip.window)
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

func (ip *ImagePanel) onAddFolder() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ip.window)
			return
		}
		if dir == nil {
			return
		}
		n, err := ip.addFolder(dir.Path())
		if err != nil {
			dialog.ShowError(err, ip.window)
			return
		}
		if n == 0 {
			dialog.ShowInformation("No Images", "The folder has no supported images.", ip.window)
		}
	}, ip.window)
}

// addFolder appends the images inside dir, sorted by name, and selects the
// first of them. It returns how many were added.
func (ip *ImagePanel) addFolder(dir string) (int, error) {
	paths, err := imagedeck.ImagesInDir(dir)
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, nil
	}
	first := ip.images.Len()
	ip.images.Add(paths...)
	ip.logger.Debug("folder added", "dir", dir, "images", len(paths))
	ip.selectIndex(first)
	return len(paths), nil
}

func (ip *ImagePanel) onMoveUp() {
	if ip.selected < 0 {
		return
	}
	ip.selectIndex(ip.images.MoveUp(ip.selected))
}

func (ip *ImagePanel) onMoveDown() {
	if ip.selected < 0 {
		return
	}
	ip.selectIndex(ip.images.MoveDown(ip.selected))
}

func (ip *ImagePanel) onDelete() {
	if !ip.images.Remove(ip.selected) {
		return
	}
	next := ip.selected
	if next >= ip.images.Len() {
		next = ip.images.Len() - 1
	}
	ip.selectIndex(next)
}

func (ip *ImagePanel) onDeleteAll() {
	if ip.images.Len() == 0 {
		return
	}
	dialog.ShowConfirm("Delete All", "Remove every image from the list?", func(ok bool) {
		if !ok {
			return
		}
		ip.images.Clear()
		ip.selectIndex(-1)
	}, ip.window)
}

// selectIndex selects row i, or clears the selection when i is negative.
func (ip *ImagePanel) selectIndex(i int) {
	ip.refresh()
	// unselect first so Select fires OnSelected even for the same row
	ip.list.UnselectAll()
	if i < 0 {
		ip.onSelected(-1)
		return
	}
	ip.list.Select(i)
}

func (ip *ImagePanel) onSelected(id widget.ListItemID) {
	ip.selected = id
	ip.updateButtons()

	seq := ip.loadSeq.Add(1)
	path := ip.images.At(id)
	if path == "" {
		ip.showThumbnail(seq, nil)
		return
	}
	go func() {
		img, err := imagedeck.Thumbnail(path, ThumbnailSize, ThumbnailSize)
		if err != nil {
			ip.logger.Warn("no preview", "path", path, "err", err)
		}
		fyne.Do(func() { ip.showThumbnail(seq, img) })
	}()
}

// showThumbnail displays img unless a newer selection has started loading.
func (ip *ImagePanel) showThumbnail(seq uint64, img image.Image) {
	if ip.loadSeq.Load() != seq {
		return
	}
	ip.preview.Image = img
	ip.preview.Refresh()
}

func (ip *ImagePanel) refresh() {
	ip.list.Refresh()
	ip.count.SetText(countText(ip.images.Len()))
	ip.updateButtons()
}

func (ip *ImagePanel) updateButtons() {
	n := ip.images.Len()
	setEnabled(ip.upBtn, ip.selected > 0)
	setEnabled(ip.downBtn, ip.selected >= 0 && ip.selected < n-1)
	setEnabled(ip.deleteBtn, ip.selected >= 0 && ip.selected < n)
	setEnabled(ip.deleteAll, n > 0)
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
