// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && linux

package cairo

/*
#cgo pkg-config: cairo-xlib x11
#include <cairo-xlib.h>
#include <X11/Xlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rx"
)

// UnixSurface binds cairo to an X11 or a Wayland window. Only the arm named
// by kind is populated.
type UnixSurface struct {
	geometry
	kind rx.HandleKind
	surf *C.cairo_surface_t

	// X11
	display *C.Display

	// Wayland
	wl *waylandArm

	closed bool
}

// NewUnixSurface creates a surface for an X11 or Wayland window.
func NewUnixSurface(win rx.Window, scale float64) (*UnixSurface, error) {
	h := win.Handle()
	w, hgt := win.Size()
	s := &UnixSurface{geometry: newGeometry(w, hgt, scale), kind: h.Kind}

	switch h.Kind {
	case rx.HandleX11:
		if h.X11Display == 0 {
			return nil, fmt.Errorf("cairo: x11 window without Display: %w", rx.ErrUnsupportedWindow)
		}
		s.display = (*C.Display)(unsafe.Pointer(h.X11Display))
		visual := C.XDefaultVisual(s.display, C.int(h.X11Screen))
		surf := C.cairo_xlib_surface_create(s.display, C.Drawable(h.X11Window), visual,
			C.int(s.width), C.int(s.height))
		if err := surfaceStatus("cairo_xlib_surface_create", surf); err != nil {
			C.cairo_surface_destroy(surf)
			return nil, err
		}
		s.surf = surf
	case rx.HandleWayland:
		wl, err := newWaylandArm(h, s.width, s.height)
		if err != nil {
			return nil, err
		}
		s.wl = wl
		s.surf = wl.surf
	default:
		return nil, fmt.Errorf("cairo: %s window: %w", h.Kind, rx.ErrUnsupportedWindow)
	}

	s.applyScale(s.surf)
	rx.Logger().Debug("cairo: unix surface created", "kind", h.Kind, "width", s.width, "height", s.height)
	return s, nil
}

func (s *UnixSurface) native() *C.cairo_surface_t { return s.surf }

// StartPaint begins a frame.
func (s *UnixSurface) StartPaint() {}

// EndPaint flushes drawing to the window and, on Wayland, swaps buffers.
func (s *UnixSurface) EndPaint() error {
	if s.closed {
		return rx.ErrClosed
	}
	C.cairo_surface_flush(s.surf)
	if err := surfaceStatus("cairo_surface_flush", s.surf); err != nil {
		return err
	}
	switch s.kind {
	case rx.HandleX11:
		C.XFlush(s.display)
	case rx.HandleWayland:
		return s.wl.present()
	}
	return nil
}

// Resize resizes the surface in place. X11 and cairo-gl surfaces both
// support a new size without recreating the drawable; the device scale is
// applied again.
func (s *UnixSurface) Resize(width, height int, scale float64) error {
	if s.closed {
		return rx.ErrClosed
	}
	s.rescale(scale)
	s.setSize(width, height)
	switch s.kind {
	case rx.HandleX11:
		C.cairo_xlib_surface_set_size(s.surf, C.int(s.width), C.int(s.height))
	case rx.HandleWayland:
		s.wl.resize(s.width, s.height)
	}
	s.applyScale(s.surf)
	return surfaceStatus("cairo_surface_set_size", s.surf)
}

// Close destroys the surface. The window and its display stay owned by the
// caller.
func (s *UnixSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.kind == rx.HandleWayland {
		s.wl.close()
	} else if s.surf != nil {
		C.cairo_surface_destroy(s.surf)
	}
	s.surf = nil
	return nil
}

func newWindowSurface(win rx.Window, scale float64) (Surface, error) {
	s, err := NewUnixSurface(win, scale)
	if err != nil {
		return nil, err
	}
	return s, nil
}
