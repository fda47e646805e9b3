// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawables of the pure-Go rendering engine.
//
// A Provider owns one drawable bound to a window together with its size in
// device pixels and in points. Two providers exist:
//
//   - Image: an in-memory *image.RGBA for offscreen rendering and tests
//   - Window: a back buffer presented to an X11 window on EndPaint
//
// # Resize
//
// Resize never reuses the drawable: the old buffer is dropped and a new one
// of the requested size is allocated, even when the size is unchanged.
// Zero-area sizes are valid and a later Resize recovers from them.
//
// # Coordinates
//
// Drawing happens in points. The scale factor captured at construction, and
// again at each Resize, maps points to device pixels:
//
//	s := surface.NewImage(1920, 1080, 1.5)
//	s.Bounds()                          // 1280×720 points
//	s.PixelsToPoints(rx.Xy(96, 48))     // (64, 32)
//
// Providers are NOT thread-safe and must be used from the goroutine that
// owns the window.
package surface
