package ui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanel(t *testing.T) *ImagePanel {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("images")
	t.Cleanup(w.Close)
	return NewImagePanel(&ImageList{}, w, log.New(io.Discard))
}

func TestImagePanelAddFolder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	ip := newTestPanel(t)
	ip.images.Add("first.png")

	n, err := ip.addFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first.png", filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}, ip.images.Paths())
	assert.Equal(t, 1, ip.selected, "the first added image is selected")
	assert.Equal(t, countText(3), ip.count.Text)
}

func TestImagePanelAddFolderWithoutImages(t *testing.T) {
	ip := newTestPanel(t)

	n, err := ip.addFolder(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, ip.images.Len())

	_, err = ip.addFolder(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
