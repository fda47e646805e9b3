// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

/*
#cgo pkg-config: cairo
#include <cairo.h>
*/
import "C"

import (
	"image"
	"unsafe"

	"github.com/gogpu/rx"
)

// Surface is a cairo surface bound to a window or to memory.
//
// Surfaces are NOT thread-safe.
type Surface interface {
	// native returns the current cairo surface. It changes on Resize.
	native() *C.cairo_surface_t

	// Size returns the surface size in device pixels.
	Size() (width, height int)

	// Scale returns device pixels per point.
	Scale() float64

	// Bounds returns the surface extent in points.
	Bounds() rx.Rect

	PixelsToPoints(p rx.Point) rx.Point
	PointsToPixels(p rx.Point) rx.Point

	StartPaint()
	EndPaint() error

	// Resize recreates the surface, or resizes it in place where cairo
	// supports that, for a new size in device pixels. A positive scale
	// replaces the scale factor.
	Resize(width, height int, scale float64) error

	// Close destroys the surface. Close is idempotent.
	Close() error
}

type geometry struct {
	width, height int
	scale         float64
}

func newGeometry(width, height int, scale float64) geometry {
	if scale <= 0 {
		scale = 1
	}
	return geometry{width: max(width, 0), height: max(height, 0), scale: scale}
}

func (g *geometry) setSize(width, height int) {
	g.width, g.height = max(width, 0), max(height, 0)
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

// applyScale makes user space units points on s.
func (g *geometry) applyScale(s *C.cairo_surface_t) {
	C.cairo_surface_set_device_scale(s, C.double(g.scale), C.double(g.scale))
}

// ImageSurface is an in-memory ARGB32 surface.
type ImageSurface struct {
	geometry
	surf   *C.cairo_surface_t
	closed bool
}

// NewImageSurface creates an image surface of the given pixel size.
func NewImageSurface(width, height int, scale float64) (*ImageSurface, error) {
	s := &ImageSurface{geometry: newGeometry(width, height, scale)}
	if err := s.create(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ImageSurface) create() error {
	surf := C.cairo_image_surface_create(C.CAIRO_FORMAT_ARGB32, C.int(s.width), C.int(s.height))
	if err := surfaceStatus("cairo_image_surface_create", surf); err != nil {
		C.cairo_surface_destroy(surf)
		return err
	}
	s.applyScale(surf)
	s.surf = surf
	return nil
}

func (s *ImageSurface) native() *C.cairo_surface_t { return s.surf }

// StartPaint begins a frame.
func (s *ImageSurface) StartPaint() {}

// EndPaint flushes pending drawing.
func (s *ImageSurface) EndPaint() error {
	if s.surf == nil {
		return rx.ErrSurfaceLost
	}
	C.cairo_surface_flush(s.surf)
	return surfaceStatus("cairo_surface_flush", s.surf)
}

// Resize replaces the surface with one of the new size.
func (s *ImageSurface) Resize(width, height int, scale float64) error {
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

// Close destroys the surface.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.surf != nil {
		C.cairo_surface_destroy(s.surf)
		s.surf = nil
	}
	return nil
}

// Image copies the surface into a new *image.RGBA. Both formats are
// premultiplied; cairo stores each pixel as a native-endian uint32.
func (s *ImageSurface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if s.surf == nil || s.width == 0 || s.height == 0 {
		return img
	}
	C.cairo_surface_flush(s.surf)
	data := C.cairo_image_surface_get_data(s.surf)
	stride := int(C.cairo_image_surface_get_stride(s.surf))
	if data == nil {
		return img
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(data)), stride*s.height)
	for y := 0; y < s.height; y++ {
		row := src[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < s.width; x++ {
			px := *(*uint32)(unsafe.Pointer(&row[4*x]))
			dst[4*x+0] = uint8(px >> 16)
			dst[4*x+1] = uint8(px >> 8)
			dst[4*x+2] = uint8(px)
			dst[4*x+3] = uint8(px >> 24)
		}
	}
	return img
}
