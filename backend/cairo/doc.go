// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cairo is the Cairo/Pango rx engine for Linux and macOS.
//
// The engine is built only with the cairo build tag, because it links the
// system cairo, pango and pangocairo libraries through cgo:
//
//	go build -tags cairo ./...
//
// One Context type serves every platform. It is generic over the surface it
// draws into:
//
//   - ImageSurface: an in-memory ARGB32 surface, for offscreen rendering.
//   - UnixSurface: an X11 window through cairo-xlib, or a Wayland surface
//     through EGL and cairo-gl (additionally needs the cairowayland tag).
//   - QuartzSurface: an NSWindow through the window's CoreGraphics context.
//
// Importing the package registers the "cairo" backend with priority 50.
// Text ranges are rune indices; they are translated to the UTF-8 byte
// offsets Pango works in.
package cairo
