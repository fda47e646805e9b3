// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"fmt"

	"github.com/gogpu/rx"
)

// Context is the Direct2D rx.RenderContext.
//
// Context is NOT safe for concurrent use; call it from the goroutine that
// runs the window's message loop.
type Context struct {
	surface *Surface
	text    *factories
	cfg     rx.Config
	win     rx.Window

	// brush is the solid color brush every drawing call uses. It belongs
	// to the render target numbered gen.
	brush  *brush
	gen    uint64
	color  rx.Color
	tx, ty float64

	painting bool
	lost     bool
	closed   bool
}

var _ rx.RenderContext = (*Context)(nil)

// New creates a context drawing into s. On failure s is closed.
func New(s *Surface) (*Context, error) {
	f, err := shared()
	if err != nil {
		s.Close()
		return nil, err
	}
	c := &Context{surface: s, text: f, color: rx.RGB(0, 0, 0)}
	if err := c.sync(); err != nil {
		s.Close()
		return nil, err
	}
	return c, nil
}

// sync recreates the brush when the surface replaced its render target.
func (c *Context) sync() error {
	t := c.surface.target
	if t == nil {
		return rx.ErrSurfaceLost
	}
	if c.brush != nil && c.gen == c.surface.gen {
		return nil
	}
	c.releaseBrush()
	b, err := t.createSolidColorBrush(c.color)
	if err != nil {
		return err
	}
	c.brush, c.gen = b, c.surface.gen
	return nil
}

func (c *Context) releaseBrush() {
	if c.brush != nil {
		c.brush.release()
		c.brush = nil
	}
}

// Surface returns the surface the context draws into.
func (c *Context) Surface() *Surface { return c.surface }

// Backend returns "d2d".
func (c *Context) Backend() string { return Name }

// ready reports whether drawing calls may reach the target.
func (c *Context) ready() bool {
	if c.closed || c.lost {
		return false
	}
	if err := c.sync(); err != nil {
		rx.Logger().Warn("d2d: brush unavailable", "err", err)
		return false
	}
	return true
}

func (c *Context) state() error {
	switch {
	case c.closed:
		return rx.ErrClosed
	case c.lost:
		return rx.ErrSurfaceLost
	}
	return nil
}

func (c *Context) applyTransform() {
	c.surface.target.setTransform(matrix3x2F{M11: 1, M22: 1, DX: float32(c.tx), DY: float32(c.ty)})
}

// StartPaint begins a frame and resets the transform to identity.
func (c *Context) StartPaint() {
	if !c.ready() {
		return
	}
	c.painting = true
	c.surface.StartPaint()
	c.tx, c.ty = 0, 0
	c.applyTransform()
}

// EndPaint presents the frame. A render target lost by the device is
// recreated and the frame is dropped.
func (c *Context) EndPaint() error {
	c.painting = false
	if err := c.state(); err != nil {
		return err
	}
	if err := c.surface.EndPaint(); err != nil {
		if c.surface.target == nil {
			c.lost = true
		}
		return err
	}
	return nil
}

// Clear replaces every pixel with col and makes col the current color.
func (c *Context) Clear(col rx.Color) {
	if !c.ready() {
		return
	}
	c.setColor(col)
	c.surface.target.clear(col)
}

func (c *Context) setColor(col rx.Color) {
	c.color = col
	c.brush.setColor(col)
}

// SetColor sets the color of later drawing calls.
func (c *Context) SetColor(col rx.Color) {
	if c.ready() {
		c.setColor(col)
	}
}

// StrokeRect outlines r.
func (c *Context) StrokeRect(r rx.Rect, width float64) {
	if c.ready() {
		c.surface.target.drawRectangle(r, c.brush, width)
	}
}

// FillRect fills r.
func (c *Context) FillRect(r rx.Rect) {
	if c.ready() {
		c.surface.target.fillRectangle(r, c.brush)
	}
}

// DrawLine strokes a line from a to b.
func (c *Context) DrawLine(a, b rx.Point, width float64) {
	if c.ready() {
		c.surface.target.drawLine(a, b, c.brush, width)
	}
}

// Translate appends a translation to the transform.
func (c *Context) Translate(p rx.Point) {
	if !c.ready() {
		return
	}
	c.tx += p.X
	c.ty += p.Y
	c.applyTransform()
}

// NewFont creates a DirectWrite text format. DirectWrite substitutes
// unknown families when the text is laid out.
func (c *Context) NewFont(family string, size float64, weight rx.FontWeight, style rx.FontStyle) (rx.Font, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	return newFont(c.text, family, size, weight, style)
}

// NewTextLayout creates a DirectWrite layout in a width×height box.
func (c *Context) NewTextLayout(text string, f rx.Font, width, height float64) (rx.TextLayout, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	df, err := asFont(f)
	if err != nil {
		return nil, err
	}
	return newTextLayout(c.text, text, df, width, height)
}

// DrawText draws text wrapped to r without building a layout.
func (c *Context) DrawText(r rx.Rect, text string, f rx.Font) {
	if !c.ready() {
		return
	}
	df, err := asFont(f)
	if err != nil {
		rx.Logger().Warn("d2d: DrawText skipped", "err", err)
		return
	}
	c.surface.target.drawText(wide(text), df.format(), r, c.brush)
}

// DrawTextLayout draws l with its top-left corner at p.
func (c *Context) DrawTextLayout(p rx.Point, l rx.TextLayout) {
	if !c.ready() {
		return
	}
	dl, err := asLayout(l)
	if err != nil {
		rx.Logger().Warn("d2d: DrawTextLayout skipped", "err", err)
		return
	}
	dl.effects(c.surface.target, c.surface.gen)
	c.surface.target.drawTextLayout(p, dl.native(), c.brush)
}

// Bounds returns the client area in points.
func (c *Context) Bounds() rx.Rect { return c.surface.Bounds() }

// PixelsToPoints converts device pixels to points.
func (c *Context) PixelsToPoints(p rx.Point) rx.Point { return c.surface.PixelsToPoints(p) }

// PointsToPixels converts points to device pixels.
func (c *Context) PointsToPixels(p rx.Point) rx.Point { return c.surface.PointsToPixels(p) }

// nextScale is the scale factor for a resize: a forced factor, else the
// window's. Without a window the surface keeps its scale.
func (c *Context) nextScale() float64 {
	if c.win == nil {
		return c.cfg.ScaleFactor
	}
	return c.cfg.Scale(c.win)
}

// Resize resizes the render target, recreating it when the window's scale
// factor changed. The transform is reset and the color returns to black.
func (c *Context) Resize(width, height int) error {
	if err := c.state(); err != nil {
		return err
	}
	if c.painting {
		return rx.ErrResizeInFrame
	}
	if err := c.surface.Resize(width, height, c.nextScale()); err != nil {
		c.lost = true
		c.releaseBrush()
		return fmt.Errorf("d2d: resize to %dx%d: %w", width, height, err)
	}
	c.tx, c.ty = 0, 0
	c.color = rx.RGB(0, 0, 0)
	if c.brush != nil {
		c.brush.setColor(c.color)
	}
	rx.Logger().Debug("d2d: context resized", "width", width, "height", height, "scale", c.surface.Scale())
	return nil
}

// Close releases the brush and the render target. Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.painting = false
	c.releaseBrush()
	return c.surface.Close()
}
