package ui

import (
	"fmt"
	"sync"

	"github.com/VantageDataChat/imagedeck/assembler"
)

// ImageList is the ordered list of image paths shown in the window. It is
// safe for concurrent use; the list widget reads it from the UI goroutine
// while thumbnails load in the background.
type ImageList struct {
	mu    sync.Mutex
	paths []string
}

// Add appends paths in order. Empty strings are ignored.
func (l *ImageList) Add(paths ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range paths {
		if p != "" {
			l.paths = append(l.paths, p)
		}
	}
}

// Len returns the number of images.
func (l *ImageList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.paths)
}

// At returns the path at i, or "" when i is out of range.
func (l *ImageList) At(i int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.paths) {
		return ""
	}
	return l.paths[i]
}

// Paths returns a copy of the list.
func (l *ImageList) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

// MoveUp swaps the image at i with the one before it and returns its new
// index. The first image, or an invalid index, stays where it is.
func (l *ImageList) MoveUp(i int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i <= 0 || i >= len(l.paths) {
		return i
	}
	l.paths[i-1], l.paths[i] = l.paths[i], l.paths[i-1]
	return i - 1
}

// MoveDown swaps the image at i with the one after it and returns its new
// index.
func (l *ImageList) MoveDown(i int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.paths)-1 {
		return i
	}
	l.paths[i], l.paths[i+1] = l.paths[i+1], l.paths[i]
	return i + 1
}

// Remove deletes the image at i and reports whether anything was removed.
func (l *ImageList) Remove(i int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.paths) {
		return false
	}
	l.paths = append(l.paths[:i], l.paths[i+1:]...)
	return true
}

// Clear removes every image.
func (l *ImageList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = nil
}

// countText summarizes n images and the slides they will fill.
func countText(n int) string {
	if n == 0 {
		return "No images"
	}
	slides := len(assembler.Group(make([]string, n)))
	return fmt.Sprintf("%s, %s", plural(n, "image"), plural(slides, "slide"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
