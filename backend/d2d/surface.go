// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/windows"

	"github.com/gogpu/rx"
)

// targets numbers render targets process-wide. Brushes are only valid on
// the target that created them.
var targets atomic.Uint64

// Surface wraps the ID2D1HwndRenderTarget bound to one window.
//
// The target is created with a DPI of 96 times the scale factor, so drawing
// coordinates are points and the target maps them to pixels.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	hwnd          windows.HWND
	width, height int
	scale         float64

	target *renderTarget
	gen    uint64
	closed bool
}

// NewSurface creates a render target for hwnd with a client area of
// width×height device pixels.
func NewSurface(hwnd windows.HWND, width, height int, scale float64) (*Surface, error) {
	if hwnd == 0 || !windows.IsWindow(hwnd) {
		return nil, fmt.Errorf("d2d: invalid HWND %#x: %w", uintptr(hwnd), rx.ErrUnsupportedWindow)
	}
	if scale <= 0 {
		scale = 1
	}
	s := &Surface{hwnd: hwnd, scale: scale}
	s.setSize(width, height)
	if err := s.create(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) setSize(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// pixelSize is the native target size. Direct2D rejects empty targets, so
// a zero-area surface keeps a one pixel target.
func (s *Surface) pixelSize() sizeU {
	return sizeU{Width: uint32(max(s.width, 1)), Height: uint32(max(s.height, 1))}
}

func (s *Surface) create() error {
	f, err := shared()
	if err != nil {
		return err
	}
	dpi := float32(96 * s.scale)
	rp := renderTargetProperties{
		PixelFormat: pixelFormat{
			Format:    dxgiFormatB8G8R8A8Unorm,
			AlphaMode: d2d1AlphaModePremultiplied,
		},
		DpiX: dpi,
		DpiY: dpi,
	}
	hp := hwndRenderTargetProperties{
		Hwnd:      s.hwnd,
		PixelSize: s.pixelSize(),
	}
	t, err := f.d2d.createHwndRenderTarget(&rp, &hp)
	if err != nil {
		return err
	}
	s.target = t
	s.gen = targets.Add(1)
	return nil
}

func (s *Surface) destroy() {
	if s.target != nil {
		s.target.release()
		s.target = nil
	}
}

// recreate replaces the render target, for example after the device was
// removed.
func (s *Surface) recreate() error {
	s.destroy()
	if err := s.create(); err != nil {
		return fmt.Errorf("d2d: recreate render target: %w: %w", rx.ErrSurfaceLost, err)
	}
	rx.Logger().Debug("d2d: render target recreated", "gen", s.gen)
	return nil
}

// Size returns the client area in device pixels.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Scale returns device pixels per point.
func (s *Surface) Scale() float64 { return s.scale }

// Bounds returns the client area in points.
func (s *Surface) Bounds() rx.Rect {
	return rx.Rect{W: float64(s.width) / s.scale, H: float64(s.height) / s.scale}
}

// PixelsToPoints converts device pixels to points.
func (s *Surface) PixelsToPoints(p rx.Point) rx.Point { return rx.PixelsToPoints(p, s.scale) }

// PointsToPixels converts points to device pixels.
func (s *Surface) PointsToPixels(p rx.Point) rx.Point { return rx.PointsToPixels(p, s.scale) }

// StartPaint begins drawing on the target.
func (s *Surface) StartPaint() {
	if s.target != nil {
		s.target.beginDraw()
	}
}

// EndPaint ends drawing and presents. When Direct2D asks for the target to
// be recreated the frame is dropped and a new target is created.
func (s *Surface) EndPaint() error {
	if s.closed {
		return rx.ErrClosed
	}
	if s.target == nil {
		return rx.ErrSurfaceLost
	}
	hr := s.target.endDraw()
	if uint32(hr) == d2dErrRecreateTarget {
		rx.Logger().Warn("d2d: render target lost, recreating")
		return s.recreate()
	}
	return check("EndDraw", hr)
}

// rescale replaces the scale factor and reports whether it changed.
// Non-positive values keep the current one.
func (s *Surface) rescale(scale float64) bool {
	if scale <= 0 || scale == s.scale {
		return false
	}
	s.scale = scale
	return true
}

// Resize resizes the target in place and falls back to recreating it. A new
// scale factor always recreates the target: an HWND render target keeps the
// DPI it was created with.
func (s *Surface) Resize(width, height int, scale float64) error {
	if s.closed {
		return rx.ErrClosed
	}
	s.setSize(width, height)
	if s.rescale(scale) {
		rx.Logger().Debug("d2d: scale changed", "scale", s.scale)
		return s.recreate()
	}
	if s.target != nil {
		err := s.target.resize(int(s.pixelSize().Width), int(s.pixelSize().Height))
		if err == nil {
			return nil
		}
		rx.Logger().Debug("d2d: in-place resize failed", "err", err)
	}
	return s.recreate()
}

// Close releases the render target. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.destroy()
	return nil
}

// errNoHWND is wrapped when a window reports the Win32 kind with no handle.
var errNoHWND = errors.New("window has no HWND")
