// Package raster captures a rendered HTML surface into a bitmap.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// ErrSurfaceNotFound means the mounted page has no element with the requested id.
	ErrSurfaceNotFound = errors.New("capture surface not found")
	// ErrEmptyCapture means the capture produced no pixels.
	ErrEmptyCapture = errors.New("capture produced an empty image")
	// ErrCaptureTooLarge means the surface exceeds what can be captured at any usable scale.
	ErrCaptureTooLarge = errors.New("capture exceeds the size limit")
	// ErrColorFormat means the captured bytes could not be decoded into an image.
	ErrColorFormat = errors.New("unsupported color format in capture")
)

// Link is a hyperlink box in surface-relative CSS pixels.
type Link struct {
	Href       string
	X, Y, W, H float64
}

// Request describes one capture.
type Request struct {
	SurfaceID       string
	ViewportWidth   int     // CSS pixels
	Scale           float64 // device pixels per CSS pixel
	Background      color.RGBA
	Expect          map[string]int // selector -> entry count that marks the surface as fully rendered
	ConvergeTimeout time.Duration
}

// Capture is the result of rasterizing a surface.
type Capture struct {
	Image     image.Image
	Scale     float64 // effective device pixels per CSS pixel
	CSSWidth  float64
	CSSHeight float64
	Links     []Link
	Converged bool
}

// Capturer rasterizes a mounted surface. Implementations are expected to be
// safe for sequential reuse.
type Capturer interface {
	Capture(ctx context.Context, s *Surface, req Request) (*Capture, error)
}

// Surface is an HTML document mounted off-screen for capture.
type Surface struct {
	dir  string
	path string
	once sync.Once
	err  error
}

// Mount writes html to a private temporary directory. Close removes it.
func Mount(html string) (*Surface, error) {
	dir, err := os.MkdirTemp("", "cvgen-surface-")
	if err != nil {
		return nil, fmt.Errorf("failed to create surface dir: %w", err)
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(html), 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to write surface: %w", err)
	}
	return &Surface{dir: dir, path: path}, nil
}

// URL is the file:// address of the mounted document.
func (s *Surface) URL() string {
	return "file://" + filepath.ToSlash(s.path)
}

// Path is the mounted file on disk.
func (s *Surface) Path() string { return s.path }

// Close removes the mounted document. It is safe to call more than once.
func (s *Surface) Close() error {
	s.once.Do(func() {
		s.err = os.RemoveAll(s.dir)
	})
	return s.err
}
