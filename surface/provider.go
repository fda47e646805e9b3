// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/rx"
)

// Provider owns one drawable bound to a window and keeps track of its size in
// device pixels and in points.
//
// Providers are NOT thread-safe. Each provider must be used from the
// goroutine that owns the window.
type Provider interface {
	// Image returns the drawable. The returned image is replaced by Resize;
	// callers must not keep it across a resize.
	Image() *image.RGBA

	// Size returns the drawable size in device pixels.
	Size() (width, height int)

	// Scale returns device pixels per point.
	Scale() float64

	// Bounds returns the drawable extent in points.
	Bounds() rx.Rect

	// PixelsToPoints converts device pixels to points.
	PixelsToPoints(p rx.Point) rx.Point

	// PointsToPixels converts points to device pixels.
	PointsToPixels(p rx.Point) rx.Point

	// StartPaint begins a frame.
	StartPaint()

	// EndPaint finishes a frame and presents it to the window.
	EndPaint() error

	// Resize destroys the drawable and creates a replacement of the given
	// pixel size bound to the same window. scale replaces the scale factor
	// when positive. After a failed Resize every call returns ErrSurfaceLost.
	Resize(width, height int, scale float64) error

	// Close releases the drawable and any connection to the window system.
	// Close is idempotent.
	Close() error
}

// New creates the provider matching win's handle: an in-memory Image for
// HandleNone, a presenting Window otherwise. scale is device pixels per
// point; non-positive values are treated as 1.
func New(win rx.Window, scale float64) (Provider, error) {
	if win == nil {
		return nil, fmt.Errorf("surface: nil window: %w", rx.ErrUnsupportedWindow)
	}
	w, h := win.Size()
	if win.Handle().Kind == rx.HandleNone {
		return NewImage(w, h, scale), nil
	}
	s, err := NewWindow(win, scale)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// geometry is the size bookkeeping shared by every provider.
type geometry struct {
	width, height int
	scale         float64
}

func newGeometry(width, height int, scale float64) geometry {
	if scale <= 0 {
		scale = 1
	}
	g := geometry{scale: scale}
	g.setSize(width, height)
	return g
}

// setSize stores a pixel size. Negative sizes are clamped to zero; zero-area
// surfaces are valid.
func (g *geometry) setSize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
}

// rescale replaces the scale factor. Non-positive values keep the current one.
func (g *geometry) rescale(scale float64) {
	if scale > 0 {
		g.scale = scale
	}
}

func (g *geometry) Size() (int, int) { return g.width, g.height }

func (g *geometry) Scale() float64 { return g.scale }

func (g *geometry) Bounds() rx.Rect {
	return rx.Rect{W: float64(g.width) / g.scale, H: float64(g.height) / g.scale}
}

func (g *geometry) PixelsToPoints(p rx.Point) rx.Point {
	return rx.PixelsToPoints(p, g.scale)
}

func (g *geometry) PointsToPixels(p rx.Point) rx.Point {
	return rx.PointsToPixels(p, g.scale)
}

func newRGBA(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}
