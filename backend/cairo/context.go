// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

/*
#cgo pkg-config: cairo pangocairo
#include <pango/pangocairo.h>
*/
import "C"

import (
	"fmt"
	"image"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/rx"
)

var generation atomic.Uint64

// Context is the Cairo/Pango rx.RenderContext over a surface.
//
// Context is NOT safe for concurrent use.
type Context[S Surface] struct {
	surface S
	cfg     rx.Config
	win     rx.Window
	cr      *C.cairo_t
	pg      *C.PangoContext
	gen     uint64

	painting bool
	lost     bool
	closed   bool
}

var _ rx.RenderContext = (*Context[*ImageSurface])(nil)

// New creates a drawing handle and a text context for s. On failure s is
// closed.
func New[S Surface](s S) (*Context[S], error) {
	c := &Context[S]{surface: s}
	if err := c.create(); err != nil {
		s.Close()
		return nil, err
	}
	return c, nil
}

// NewImage creates an offscreen context of the given pixel size.
func NewImage(width, height int, opts ...rx.Option) (*Context[*ImageSurface], error) {
	cfg := rx.NewConfig(opts...)
	s, err := NewImageSurface(width, height, cfg.ScaleFactor)
	if err != nil {
		return nil, err
	}
	ctx, err := New(s)
	if err != nil {
		return nil, err
	}
	ctx.cfg = cfg
	return ctx, nil
}

// create builds the cairo context and the Pango context on the current
// surface, releasing the cairo context if the second step fails.
func (c *Context[S]) create() error {
	cr := C.cairo_create(c.surface.native())
	if err := statusError("cairo_create", C.cairo_status(cr)); err != nil {
		C.cairo_destroy(cr)
		return err
	}
	pg := C.pango_cairo_create_context(cr)
	if pg == nil {
		C.cairo_destroy(cr)
		return rx.NativeError(Name, "pango_cairo_create_context", 0, nil)
	}
	c.cr, c.pg = cr, pg
	c.gen = generation.Add(1)
	return nil
}

func (c *Context[S]) destroy() {
	if c.pg != nil {
		C.g_object_unref(C.gpointer(unsafe.Pointer(c.pg)))
		c.pg = nil
	}
	if c.cr != nil {
		C.cairo_destroy(c.cr)
		c.cr = nil
	}
}

// Surface returns the surface the context draws into.
func (c *Context[S]) Surface() S { return c.surface }

// Image returns a copy of the pixels when the context draws into an
// ImageSurface, and nil otherwise.
func (c *Context[S]) Image() *image.RGBA {
	if is, ok := any(c.surface).(*ImageSurface); ok {
		return is.Image()
	}
	return nil
}

// Backend returns "cairo".
func (c *Context[S]) Backend() string { return Name }

func (c *Context[S]) usable() bool { return !c.closed && !c.lost }

func (c *Context[S]) state() error {
	switch {
	case c.closed:
		return rx.ErrClosed
	case c.lost:
		return rx.ErrSurfaceLost
	}
	return nil
}

// StartPaint begins a frame and resets the user transform.
func (c *Context[S]) StartPaint() {
	if !c.usable() {
		return
	}
	c.painting = true
	C.cairo_identity_matrix(c.cr)
	c.surface.StartPaint()
}

// EndPaint presents the frame.
func (c *Context[S]) EndPaint() error {
	c.painting = false
	if err := c.state(); err != nil {
		return err
	}
	return c.surface.EndPaint()
}

func (c *Context[S]) setSource(col rx.Color) {
	C.cairo_set_source_rgba(c.cr, C.double(col.R), C.double(col.G), C.double(col.B), C.double(col.A))
}

// Clear paints the whole surface with col using the source operator and
// makes col the current color. Later drawing composites over again.
func (c *Context[S]) Clear(col rx.Color) {
	if !c.usable() {
		return
	}
	c.setSource(col)
	C.cairo_set_operator(c.cr, C.CAIRO_OPERATOR_SOURCE)
	C.cairo_paint(c.cr)
	C.cairo_set_operator(c.cr, C.CAIRO_OPERATOR_OVER)
}

// SetColor sets the source color of later drawing calls.
func (c *Context[S]) SetColor(col rx.Color) {
	if c.usable() {
		c.setSource(col)
	}
}

// StrokeRect outlines r.
func (c *Context[S]) StrokeRect(r rx.Rect, width float64) {
	if !c.usable() {
		return
	}
	C.cairo_set_line_width(c.cr, C.double(width))
	C.cairo_rectangle(c.cr, C.double(r.X), C.double(r.Y), C.double(r.W), C.double(r.H))
	C.cairo_stroke(c.cr)
}

// FillRect fills r.
func (c *Context[S]) FillRect(r rx.Rect) {
	if !c.usable() {
		return
	}
	C.cairo_rectangle(c.cr, C.double(r.X), C.double(r.Y), C.double(r.W), C.double(r.H))
	C.cairo_fill(c.cr)
}

// DrawLine strokes a line from a to b.
func (c *Context[S]) DrawLine(a, b rx.Point, width float64) {
	if !c.usable() {
		return
	}
	C.cairo_set_line_width(c.cr, C.double(width))
	C.cairo_move_to(c.cr, C.double(a.X), C.double(a.Y))
	C.cairo_line_to(c.cr, C.double(b.X), C.double(b.Y))
	C.cairo_stroke(c.cr)
}

// Translate appends a translation to the user transform.
func (c *Context[S]) Translate(p rx.Point) {
	if c.usable() {
		C.cairo_translate(c.cr, C.double(p.X), C.double(p.Y))
	}
}

// NewFont creates a Pango font description. Pango substitutes unknown
// families when the text is laid out.
func (c *Context[S]) NewFont(family string, size float64, weight rx.FontWeight, style rx.FontStyle) (rx.Font, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	return newFont(family, size, weight, style)
}

// NewTextLayout creates a Pango layout wrapped at width. Height limits the
// layout only where Pango applies it.
func (c *Context[S]) NewTextLayout(text string, f rx.Font, width, height float64) (rx.TextLayout, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	cf, err := asFont(f)
	if err != nil {
		return nil, err
	}
	return newTextLayout(c.pg, c.gen, text, cf, width, height)
}

func (c *Context[S]) show(p rx.Point, ly *C.PangoLayout) {
	C.cairo_save(c.cr)
	C.cairo_move_to(c.cr, C.double(p.X), C.double(p.Y))
	C.pango_cairo_show_layout(c.cr, ly)
	C.cairo_restore(c.cr)
}

// DrawText lays out text in r with a throwaway layout and draws it.
func (c *Context[S]) DrawText(r rx.Rect, text string, f rx.Font) {
	if !c.usable() {
		return
	}
	cf, err := asFont(f)
	if err != nil {
		rx.Logger().Warn("cairo: DrawText skipped", "err", err)
		return
	}
	l, err := newTextLayout(c.pg, c.gen, text, cf, r.W, r.H)
	if err != nil {
		rx.Logger().Warn("cairo: DrawText skipped", "err", err)
		return
	}
	defer l.Release()
	c.show(r.Min(), l.h.Value())
}

// DrawTextLayout draws l with its top-left corner at p, first updating it
// to the current cairo context.
func (c *Context[S]) DrawTextLayout(p rx.Point, l rx.TextLayout) {
	if !c.usable() {
		return
	}
	cl, err := asLayout(l)
	if err != nil {
		rx.Logger().Warn("cairo: DrawTextLayout skipped", "err", err)
		return
	}
	if cl.p.gen != c.gen {
		rx.Logger().Debug("cairo: layout re-sync", "from", cl.p.gen, "to", c.gen)
		cl.p.gen = c.gen
	}
	ly := cl.h.Value()
	C.pango_cairo_update_layout(c.cr, ly)
	c.show(p, ly)
}

// Bounds returns the surface extent in points.
func (c *Context[S]) Bounds() rx.Rect { return c.surface.Bounds() }

// PixelsToPoints converts device pixels to points.
func (c *Context[S]) PixelsToPoints(p rx.Point) rx.Point { return c.surface.PixelsToPoints(p) }

// PointsToPixels converts points to device pixels.
func (c *Context[S]) PointsToPixels(p rx.Point) rx.Point { return c.surface.PointsToPixels(p) }

// nextScale is the scale factor for a resize: a forced factor, else the
// window's. Contexts built without a window keep the surface's scale.
func (c *Context[S]) nextScale() float64 {
	if c.win == nil {
		return c.cfg.ScaleFactor
	}
	return c.cfg.Scale(c.win)
}

// Resize resizes the surface and recreates the cairo and Pango contexts.
// The scale factor is read again from the window. The transform and the
// source color are reset.
func (c *Context[S]) Resize(width, height int) error {
	if err := c.state(); err != nil {
		return err
	}
	if c.painting {
		return rx.ErrResizeInFrame
	}
	c.destroy()
	if err := c.surface.Resize(width, height, c.nextScale()); err != nil {
		c.lost = true
		return fmt.Errorf("cairo: resize to %dx%d: %w: %w", width, height, rx.ErrSurfaceLost, err)
	}
	if err := c.create(); err != nil {
		c.lost = true
		return fmt.Errorf("cairo: recreate context: %w: %w", rx.ErrSurfaceLost, err)
	}
	rx.Logger().Debug("cairo: context resized", "width", width, "height", height, "scale", c.surface.Scale())
	return nil
}

// Close destroys the contexts and the surface. Close is idempotent.
func (c *Context[S]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.painting = false
	c.destroy()
	return c.surface.Close()
}
