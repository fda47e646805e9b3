// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && darwin

package cairo

/*
#cgo pkg-config: cairo-quartz
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#include <cairo-quartz.h>
#import <Cocoa/Cocoa.h>

static void *rx_window_context(void *window) {
	NSGraphicsContext *gc = [NSGraphicsContext graphicsContextWithWindow:(NSWindow *)window];
	return [gc retain];
}

static CGContextRef rx_cg_context(void *gc) {
	return [(NSGraphicsContext *)gc CGContext];
}

static void rx_flush_context(void *gc) {
	[(NSGraphicsContext *)gc flushGraphics];
}

static void rx_release_context(void *gc) {
	[(NSGraphicsContext *)gc release];
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rx"
)

// QuartzSurface draws into the CoreGraphics context of an NSWindow.
//
// CoreGraphics works in points with the origin at the bottom left, so the
// surface is created in points and flipped with a device offset and a
// negative device scale.
type QuartzSurface struct {
	geometry
	gc     unsafe.Pointer
	surf   *C.cairo_surface_t
	closed bool
}

// NewQuartzSurface creates a surface for a Cocoa window.
func NewQuartzSurface(win rx.Window, scale float64) (*QuartzSurface, error) {
	h := win.Handle()
	if h.Kind != rx.HandleCocoa || h.NSWindow == 0 {
		return nil, fmt.Errorf("cairo: %s window: %w", h.Kind, rx.ErrUnsupportedWindow)
	}
	w, hgt := win.Size()
	s := &QuartzSurface{geometry: newGeometry(w, hgt, scale)}
	s.gc = C.rx_window_context(unsafe.Pointer(h.NSWindow))
	if s.gc == nil {
		return nil, rx.NativeError(Name, "graphicsContextWithWindow", 0, nil)
	}
	if err := s.create(); err != nil {
		C.rx_release_context(s.gc)
		return nil, err
	}
	return s, nil
}

func (s *QuartzSurface) create() error {
	b := s.Bounds()
	surf := C.cairo_quartz_surface_create_for_cg_context(C.rx_cg_context(s.gc),
		C.uint(b.W), C.uint(b.H))
	if err := surfaceStatus("cairo_quartz_surface_create_for_cg_context", surf); err != nil {
		C.cairo_surface_destroy(surf)
		return err
	}

	var ox, oy, sx, sy C.double
	C.cairo_surface_get_device_offset(surf, &ox, &oy)
	C.cairo_surface_get_device_scale(surf, &sx, &sy)
	C.cairo_surface_set_device_offset(surf, ox, oy+C.double(b.H))
	C.cairo_surface_set_device_scale(surf, sx, -sy)
	s.surf = surf
	return nil
}

func (s *QuartzSurface) native() *C.cairo_surface_t { return s.surf }

// StartPaint begins a frame.
func (s *QuartzSurface) StartPaint() {}

// EndPaint flushes the surface and the window's graphics context.
func (s *QuartzSurface) EndPaint() error {
	if s.closed {
		return rx.ErrClosed
	}
	C.cairo_surface_flush(s.surf)
	C.rx_flush_context(s.gc)
	return surfaceStatus("cairo_surface_flush", s.surf)
}

// Resize recreates the surface and reapplies the flip for the new height in
// points.
func (s *QuartzSurface) Resize(width, height int, scale float64) error {
	if s.closed {
		return rx.ErrClosed
	}
	if s.surf != nil {
		C.cairo_surface_destroy(s.surf)
		s.surf = nil
	}
	s.rescale(scale)
	s.setSize(width, height)
	return s.create()
}

// Close destroys the surface and releases the graphics context.
func (s *QuartzSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.surf != nil {
		C.cairo_surface_destroy(s.surf)
		s.surf = nil
	}
	C.rx_release_context(s.gc)
	s.gc = nil
	return nil
}

func newWindowSurface(win rx.Window, scale float64) (Surface, error) {
	s, err := NewQuartzSurface(win, scale)
	if err != nil {
		return nil, err
	}
	return s, nil
}
