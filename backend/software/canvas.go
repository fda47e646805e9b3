// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"image/draw"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/cache"
)

// canvas is the drawing handle: it paints into the provider's image with an
// anti-aliasing scanline rasterizer. All coordinates it accepts are points;
// it applies the current translation and the device scale.
//
// A canvas is bound to one image. Resize replaces the canvas.
type canvas struct {
	dst   *image.RGBA
	scale float64
	tx    float64
	ty    float64
	color rx.Color
	src   *image.Uniform
	ras   *vector.Rasterizer
	path  path
}

func newCanvas(dst *image.RGBA, scale float64) *canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &canvas{
		dst:   dst,
		scale: scale,
		ras:   vector.NewRasterizer(0, 0),
		src:   image.NewUniform(rx.Color{}),
	}
	c.setColor(rx.RGB(0, 0, 0))
	return c
}

func (c *canvas) setColor(col rx.Color) {
	c.color = col
	c.src.C = col
}

func (c *canvas) resetTransform() {
	c.tx, c.ty = 0, 0
}

func (c *canvas) translate(p rx.Point) {
	c.tx += p.X
	c.ty += p.Y
}

// device maps a point to device pixels.
func (c *canvas) device(x, y float64) (float64, float64) {
	return (x + c.tx) * c.scale, (y + c.ty) * c.scale
}

// clear replaces every pixel with col.
func (c *canvas) clear(col rx.Color) {
	c.setColor(col)
	draw.Draw(c.dst, c.dst.Bounds(), c.src, image.Point{}, draw.Src)
}

func (c *canvas) fillRect(r rx.Rect) {
	if r.Empty() {
		return
	}
	c.path.reset()
	c.rect(r.X, r.Y, r.X+r.W, r.Y+r.H, false)
	c.fill()
}

// strokeRect outlines r with a band of the given width centered on the edge.
// The band is the outer rectangle minus the inner one, wound in opposite
// directions so the nonzero rule leaves the hole empty.
func (c *canvas) strokeRect(r rx.Rect, width float64) {
	if !(width > 0) {
		return
	}
	hw := width / 2
	x0, y0 := r.X-hw, r.Y-hw
	x1, y1 := r.X+r.W+hw, r.Y+r.H+hw
	c.path.reset()
	c.rect(x0, y0, x1, y1, false)
	if ix0, iy0, ix1, iy1 := r.X+hw, r.Y+hw, r.X+r.W-hw, r.Y+r.H-hw; ix1 > ix0 && iy1 > iy0 {
		c.rect(ix0, iy0, ix1, iy1, true)
	}
	c.fill()
}

// line draws a segment with butt caps.
func (c *canvas) line(a, b rx.Point, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || !(width > 0) {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	c.path.reset()
	c.moveTo(a.X+nx, a.Y+ny)
	c.lineTo(b.X+nx, b.Y+ny)
	c.lineTo(b.X-nx, b.Y-ny)
	c.lineTo(a.X-nx, a.Y-ny)
	c.path.close()
	c.fill()
}

// rect adds a closed rectangle, clockwise on screen unless reverse is set.
func (c *canvas) rect(x0, y0, x1, y1 float64, reverse bool) {
	c.moveTo(x0, y0)
	if reverse {
		c.lineTo(x0, y1)
		c.lineTo(x1, y1)
		c.lineTo(x1, y0)
	} else {
		c.lineTo(x1, y0)
		c.lineTo(x1, y1)
		c.lineTo(x0, y1)
	}
	c.path.close()
}

func (c *canvas) moveTo(x, y float64) {
	x, y = c.device(x, y)
	c.path.moveTo(x, y)
}

func (c *canvas) lineTo(x, y float64) {
	x, y = c.device(x, y)
	c.path.lineTo(x, y)
}

// glyphKey identifies an outline independent of size and position.
type glyphKey struct {
	font *font.Font
	gid  font.GID
}

// outlines caches glyph outlines in font units, shared by every canvas.
var outlines = cache.New[glyphKey, []ot.Segment](4096)

func glyphOutline(face *font.Face, gid font.GID) []ot.Segment {
	return outlines.GetOrCreate(glyphKey{font: face.Font, gid: gid}, func() []ot.Segment {
		if o, ok := face.GlyphData(gid).(font.GlyphOutline); ok {
			return o.Segments
		}
		return nil
	})
}

// glyph fills the outline of gid with its origin at (x, y), the pen position
// on the baseline, in points. size is the em size in points.
func (c *canvas) glyph(face *font.Face, gid font.GID, x, y, size float64) {
	segs := glyphOutline(face, gid)
	if len(segs) == 0 {
		return
	}
	k := size / float64(face.Upem())
	pt := func(p ot.SegmentPoint) (float64, float64) {
		return c.device(x+float64(p.X)*k, y-float64(p.Y)*k)
	}
	c.path.reset()
	for _, s := range segs {
		switch s.Op {
		case ot.SegmentOpMoveTo:
			c.path.close()
			c.path.moveTo(pt(s.Args[0]))
		case ot.SegmentOpLineTo:
			c.path.lineTo(pt(s.Args[0]))
		case ot.SegmentOpQuadTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			c.path.quadTo(x1, y1, x2, y2)
		case ot.SegmentOpCubeTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			x3, y3 := pt(s.Args[2])
			c.path.cubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	c.path.close()
	c.fill()
}

// fill rasterizes the current path with the current color, compositing over
// the destination. Only the part of the path's bounding box that overlaps the
// image is rasterized.
func (c *canvas) fill() {
	p := &c.path
	if len(p.ops) == 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(p.minX)), int(math.Floor(p.minY)),
		int(math.Ceil(p.maxX)), int(math.Ceil(p.maxY)),
	).Intersect(c.dst.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	c.ras.Reset(box.Dx(), box.Dy())
	for _, op := range p.ops {
		a := op.pts
		switch op.kind {
		case opMove:
			c.ras.MoveTo(float32(a[0])-ox, float32(a[1])-oy)
		case opLine:
			c.ras.LineTo(float32(a[0])-ox, float32(a[1])-oy)
		case opQuad:
			c.ras.QuadTo(float32(a[0])-ox, float32(a[1])-oy, float32(a[2])-ox, float32(a[3])-oy)
		case opCube:
			c.ras.CubeTo(float32(a[0])-ox, float32(a[1])-oy, float32(a[2])-ox, float32(a[3])-oy,
				float32(a[4])-ox, float32(a[5])-oy)
		case opClose:
			c.ras.ClosePath()
		}
	}
	c.ras.Draw(c.dst, box, c.src, image.Point{})
}

type opKind uint8

const (
	opMove opKind = iota
	opLine
	opQuad
	opCube
	opClose
)

type pathOp struct {
	kind opKind
	pts  [6]float64
}

// path is a device-space path with a running bounding box.
type path struct {
	ops        []pathOp
	open       bool
	minX, minY float64
	maxX, maxY float64
}

func (p *path) reset() {
	p.ops = p.ops[:0]
	p.open = false
	p.minX, p.minY = math.Inf(1), math.Inf(1)
	p.maxX, p.maxY = math.Inf(-1), math.Inf(-1)
}

func (p *path) extend(x, y float64) {
	p.minX = math.Min(p.minX, x)
	p.minY = math.Min(p.minY, y)
	p.maxX = math.Max(p.maxX, x)
	p.maxY = math.Max(p.maxY, y)
}

func (p *path) moveTo(x, y float64) {
	p.extend(x, y)
	p.ops = append(p.ops, pathOp{kind: opMove, pts: [6]float64{x, y}})
	p.open = true
}

func (p *path) lineTo(x, y float64) {
	p.extend(x, y)
	p.ops = append(p.ops, pathOp{kind: opLine, pts: [6]float64{x, y}})
}

// quadTo and cubeTo extend the box by their control points, which bound the
// curve.
func (p *path) quadTo(x1, y1, x2, y2 float64) {
	p.extend(x1, y1)
	p.extend(x2, y2)
	p.ops = append(p.ops, pathOp{kind: opQuad, pts: [6]float64{x1, y1, x2, y2}})
}

func (p *path) cubeTo(x1, y1, x2, y2, x3, y3 float64) {
	p.extend(x1, y1)
	p.extend(x2, y2)
	p.extend(x3, y3)
	p.ops = append(p.ops, pathOp{kind: opCube, pts: [6]float64{x1, y1, x2, y2, x3, y3}})
}

func (p *path) close() {
	if !p.open {
		return
	}
	p.ops = append(p.ops, pathOp{kind: opClose})
	p.open = false
}
