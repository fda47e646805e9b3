package software

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/surface"
)

// Name is the registry name of the engine.
const Name = "software"

// generation numbers text contexts so layouts can tell when they were shaped
// through a context that has since been replaced.
var generation atomic.Uint64

// Context is the software engine's rx.RenderContext over a surface provider.
//
// Context is NOT safe for concurrent use.
type Context[S surface.Provider] struct {
	surface S
	cfg     rx.Config
	win     rx.Window
	canvas  *canvas
	text    *textContext

	painting bool
	lost     bool
	closed   bool
}

var _ rx.RenderContext = (*Context[*surface.Image])(nil)

// New builds a context over s. On failure s is closed.
func New[S surface.Provider](s S, cfg rx.Config) (*Context[S], error) {
	tc, err := newTextContext(cfg, generation.Add(1))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("software: text context: %w", err)
	}
	c := &Context[S]{
		surface: s,
		cfg:     cfg,
		canvas:  newCanvas(s.Image(), s.Scale()),
		text:    tc,
	}
	w, h := s.Size()
	rx.Logger().Debug("software: context created", "width", w, "height", h, "scale", s.Scale())
	return c, nil
}

// NewImage creates an offscreen context rendering into a width×height image.
//
// Example:
//
//	ctx, err := software.NewImage(640, 480)
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//	ctx.StartPaint()
//	ctx.Clear(rx.Hex("#ff8000"))
//	_ = ctx.EndPaint()
//	png.Encode(w, ctx.Image())
func NewImage(width, height int, opts ...rx.Option) (*Context[*surface.Image], error) {
	cfg := rx.NewConfig(opts...)
	scale := cfg.ScaleFactor
	if scale <= 0 {
		scale = 1
	}
	return New(surface.NewImage(width, height, scale), cfg)
}

// Surface returns the provider the context draws into.
func (c *Context[S]) Surface() S {
	return c.surface
}

// Image returns the pixels of the current surface. The image is replaced by
// Resize.
func (c *Context[S]) Image() *image.RGBA {
	return c.surface.Image()
}

// Backend returns "software".
func (c *Context[S]) Backend() string { return Name }

func (c *Context[S]) usable() bool {
	return !c.closed && !c.lost
}

func (c *Context[S]) state() error {
	switch {
	case c.closed:
		return rx.ErrClosed
	case c.lost:
		return rx.ErrSurfaceLost
	}
	return nil
}

// StartPaint begins a frame and resets the transform.
func (c *Context[S]) StartPaint() {
	if !c.usable() {
		return
	}
	c.painting = true
	c.surface.StartPaint()
	c.canvas.resetTransform()
}

// EndPaint ends the frame and presents the surface.
func (c *Context[S]) EndPaint() error {
	c.painting = false
	if err := c.state(); err != nil {
		return err
	}
	return c.surface.EndPaint()
}

// Clear replaces every pixel with col and makes it the current color.
func (c *Context[S]) Clear(col rx.Color) {
	if c.usable() {
		c.canvas.clear(col)
	}
}

// SetColor sets the color of later drawing calls.
func (c *Context[S]) SetColor(col rx.Color) {
	if c.usable() {
		c.canvas.setColor(col)
	}
}

// StrokeRect outlines r.
func (c *Context[S]) StrokeRect(r rx.Rect, width float64) {
	if c.usable() {
		c.canvas.strokeRect(r, width)
	}
}

// FillRect fills r.
func (c *Context[S]) FillRect(r rx.Rect) {
	if c.usable() {
		c.canvas.fillRect(r)
	}
}

// DrawLine draws a line from a to b.
func (c *Context[S]) DrawLine(a, b rx.Point, width float64) {
	if c.usable() {
		c.canvas.line(a, b, width)
	}
}

// Translate appends a translation to the transform.
func (c *Context[S]) Translate(p rx.Point) {
	if c.usable() {
		c.canvas.translate(p)
	}
}

// NewFont creates a font description. The family is resolved when text is
// shaped; unknown families fall back to the default family.
func (c *Context[S]) NewFont(family string, size float64, weight rx.FontWeight, style rx.FontStyle) (rx.Font, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	return newFont(family, size, weight, style)
}

// NewTextLayout shapes text with f and wraps it to width. Height is kept
// for the caller and does not clip the layout.
func (c *Context[S]) NewTextLayout(text string, f rx.Font, width, height float64) (rx.TextLayout, error) {
	if err := c.state(); err != nil {
		return nil, err
	}
	sf, err := asFont(f)
	if err != nil {
		return nil, err
	}
	return newTextLayout(c.text, text, sf, width, height), nil
}

// DrawText lays out text inside r and draws it.
func (c *Context[S]) DrawText(r rx.Rect, text string, f rx.Font) {
	if !c.usable() {
		return
	}
	sf, err := asFont(f)
	if err != nil {
		rx.Logger().Warn("software: DrawText skipped", "err", err)
		return
	}
	l := newTextLayout(c.text, text, sf, r.W, r.H)
	defer l.Release()
	l.h.Value().draw(c.canvas, r.Min(), c.canvas.color)
}

// DrawTextLayout draws l with its top-left corner at p.
func (c *Context[S]) DrawTextLayout(p rx.Point, l rx.TextLayout) {
	if !c.usable() {
		return
	}
	tl, err := asLayout(l)
	if err != nil {
		rx.Logger().Warn("software: DrawTextLayout skipped", "err", err)
		return
	}
	tl.sync(c.text)
	tl.h.Value().draw(c.canvas, p, c.canvas.color)
}

// Bounds returns the surface extent in points.
func (c *Context[S]) Bounds() rx.Rect {
	return c.surface.Bounds()
}

// PixelsToPoints converts device pixels to points.
func (c *Context[S]) PixelsToPoints(p rx.Point) rx.Point {
	return c.surface.PixelsToPoints(p)
}

// PointsToPixels converts points to device pixels.
func (c *Context[S]) PointsToPixels(p rx.Point) rx.Point {
	return c.surface.PointsToPixels(p)
}

// nextScale re-reads the scale factor for a resize. A forced scale factor
// wins over the window's. Without a window the surface keeps its scale.
func (c *Context[S]) nextScale() float64 {
	if c.win == nil {
		return c.cfg.ScaleFactor
	}
	return c.cfg.Scale(c.win)
}

// Resize recreates the surface, the canvas and the text context. The scale
// factor is read again from the window. The transform and the current color
// are reset.
func (c *Context[S]) Resize(width, height int) error {
	if err := c.state(); err != nil {
		return err
	}
	if c.painting {
		return rx.ErrResizeInFrame
	}

	c.canvas, c.text = nil, nil
	if err := c.surface.Resize(width, height, c.nextScale()); err != nil {
		c.lost = true
		return fmt.Errorf("software: resize to %dx%d: %w: %w", width, height, rx.ErrSurfaceLost, err)
	}
	tc, err := newTextContext(c.cfg, generation.Add(1))
	if err != nil {
		c.lost = true
		return fmt.Errorf("software: text context: %w: %w", rx.ErrSurfaceLost, err)
	}
	c.canvas = newCanvas(c.surface.Image(), c.surface.Scale())
	c.text = tc
	rx.Logger().Debug("software: context resized", "width", width, "height", height, "scale", c.surface.Scale())
	return nil
}

// Close releases the canvas, the text context and the surface.
// Close is idempotent.
func (c *Context[S]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.painting = false
	c.canvas, c.text = nil, nil
	st := outlines.Stats()
	rx.Logger().Debug("software: context closed",
		"outlines", st.Len, "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
	return c.surface.Close()
}
