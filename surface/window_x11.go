// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux || freebsd || netbsd || openbsd || dragonfly

package surface

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/gogpu/rx"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// Window is a provider that renders into a back buffer and presents it to an
// X11 window with PutImage on EndPaint.
//
// Wayland windows are not supported by this provider: Wayland has no
// server-side drawing requests, so presenting needs a shared-memory or EGL
// client. NewWindow returns ErrUnsupportedWindow for them.
type Window struct {
	geometry

	conn   *xgb.Conn
	window xproto.Window
	gc     xproto.Gcontext
	depth  byte
	msb    bool
	maxReq int

	img    *image.RGBA
	wire   []byte
	closed bool
}

// NewWindow connects to the window's X server and prepares a back buffer of
// the window's current size.
func NewWindow(win rx.Window, scale float64) (*Window, error) {
	h := win.Handle()
	switch h.Kind {
	case rx.HandleX11:
	case rx.HandleWayland:
		return nil, fmt.Errorf("surface: wayland window: %w", rx.ErrUnsupportedWindow)
	default:
		return nil, fmt.Errorf("surface: %s window: %w", h.Kind, rx.ErrUnsupportedWindow)
	}

	conn, err := xgb.NewConnDisplay(h.X11DisplayName)
	if err != nil {
		return nil, rx.NativeError("software", "XOpenDisplay", 0, err)
	}

	w, hgt := win.Size()
	s := &Window{
		geometry: newGeometry(w, hgt, scale),
		conn:     conn,
		window:   xproto.Window(h.X11Window),
	}
	if err := s.init(); err != nil {
		conn.Close()
		return nil, err
	}
	s.img = newRGBA(s.width, s.height)
	rx.Logger().Debug("surface: x11 window bound",
		"window", h.X11Window, "depth", s.depth, "width", s.width, "height", s.height)
	return s, nil
}

func (s *Window) init() error {
	geom, err := xproto.GetGeometry(s.conn, xproto.Drawable(s.window)).Reply()
	if err != nil {
		return rx.NativeError("software", "GetGeometry", 0, err)
	}
	if geom.Depth != 24 && geom.Depth != 32 {
		return fmt.Errorf("surface: x11 visual depth %d: %w", geom.Depth, rx.ErrUnsupportedWindow)
	}
	s.depth = geom.Depth

	setup := xproto.Setup(s.conn)
	s.msb = setup.ImageByteOrder == xproto.ImageOrderMSBFirst
	s.maxReq = int(setup.MaximumRequestLength) * 4

	gc, err := xproto.NewGcontextId(s.conn)
	if err != nil {
		return rx.NativeError("software", "NewGcontextId", 0, err)
	}
	if err := xproto.CreateGCChecked(s.conn, gc, xproto.Drawable(s.window), 0, nil).Check(); err != nil {
		return rx.NativeError("software", "CreateGC", 0, err)
	}
	s.gc = gc
	return nil
}

// Image returns the back buffer.
func (s *Window) Image() *image.RGBA {
	return s.img
}

// StartPaint begins a frame.
func (s *Window) StartPaint() {}

// EndPaint converts the back buffer to the server's pixel layout and sends
// it in strips that fit the maximum request length.
func (s *Window) EndPaint() error {
	switch {
	case s.closed:
		return rx.ErrClosed
	case s.width == 0 || s.height == 0:
		return nil
	}

	stride := s.width * 4
	rows := (s.maxReq - putImageHeader) / stride
	if rows < 1 {
		return fmt.Errorf("surface: row of %d bytes exceeds request limit %d: %w",
			stride, s.maxReq, rx.ErrUnsupportedWindow)
	}
	for y := 0; y < s.height; y += rows {
		n := min(rows, s.height-y)
		data := s.encodeRows(y, n)
		err := xproto.PutImageChecked(s.conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(s.window), s.gc,
			uint16(s.width), uint16(n), 0, int16(y), 0, s.depth, data).Check()
		if err != nil {
			return rx.NativeError("software", "PutImage", 0, err)
		}
	}
	return nil
}

// encodeRows converts n rows starting at y into 32-bit ZPixmap pixels.
func (s *Window) encodeRows(y, n int) []byte {
	size := n * s.width * 4
	if cap(s.wire) < size {
		s.wire = make([]byte, size)
	}
	out := s.wire[:size]
	i := 0
	for row := y; row < y+n; row++ {
		src := s.img.Pix[row*s.img.Stride : row*s.img.Stride+s.width*4]
		for x := 0; x < len(src); x += 4 {
			r, g, b, a := src[x], src[x+1], src[x+2], src[x+3]
			if s.msb {
				out[i], out[i+1], out[i+2], out[i+3] = a, r, g, b
			} else {
				out[i], out[i+1], out[i+2], out[i+3] = b, g, r, a
			}
			i += 4
		}
	}
	return out
}

// Resize replaces the back buffer. The X window itself is resized by its
// owner; the GC stays bound to it.
func (s *Window) Resize(width, height int, scale float64) error {
	if s.closed {
		return rx.ErrClosed
	}
	s.rescale(scale)
	s.setSize(width, height)
	s.img = newRGBA(s.width, s.height)
	s.wire = nil
	rx.Logger().Debug("surface: x11 back buffer recreated", "width", s.width, "height", s.height)
	return nil
}

// Close frees the GC and closes the X connection. Close is idempotent.
func (s *Window) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	xproto.FreeGC(s.conn, s.gc)
	s.conn.Close()
	return nil
}
