// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/rx"
)

// Image is a headless provider that renders into an *image.RGBA.
//
// It backs offscreen contexts, image export and tests.
//
// Example:
//
//	s := surface.NewImage(800, 600, 1)
//	defer s.Close()
//	img := s.Image()
type Image struct {
	geometry
	img    *image.RGBA
	closed bool
}

// NewImage creates an in-memory provider of the given pixel size.
func NewImage(width, height int, scale float64) *Image {
	s := &Image{geometry: newGeometry(width, height, scale)}
	s.img = newRGBA(s.width, s.height)
	return s
}

// Image returns the backing image.
func (s *Image) Image() *image.RGBA {
	return s.img
}

// StartPaint begins a frame. Image surfaces need no preparation.
func (s *Image) StartPaint() {}

// EndPaint finishes a frame. The pixels are already in the image.
func (s *Image) EndPaint() error {
	if s.closed {
		return rx.ErrClosed
	}
	return nil
}

// Resize discards the image and allocates a new one of the given size.
// Resizing to the current size still recreates the image.
func (s *Image) Resize(width, height int, scale float64) error {
	if s.closed {
		return rx.ErrClosed
	}
	s.rescale(scale)
	s.setSize(width, height)
	s.img = newRGBA(s.width, s.height)
	rx.Logger().Debug("surface: image resized", "width", s.width, "height", s.height, "scale", s.scale)
	return nil
}

// Close releases the image. Close is idempotent.
func (s *Image) Close() error {
	s.closed = true
	s.img = newRGBA(0, 0)
	return nil
}
