// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d2d provides the Direct2D/DirectWrite engine for Windows.
//
// The engine binds an ID2D1HwndRenderTarget to a Win32 window and lays text
// out with IDWriteTextLayout. It registers itself as "d2d" with priority 100,
// so it is preferred over every other engine when the window handle is an
// HWND:
//
//	import _ "github.com/gogpu/rx/backend/d2d"
//
// COM methods are called through their vtables with syscall.SyscallN; no cgo
// is involved. Only windows/amd64 is supported, where the calling convention
// passes the leading float arguments in the registers SyscallN fills.
//
// Direct2D addresses text in UTF-16 code units. Range calls on a TextLayout
// take rune indices like every other engine and are translated here.
//
// Text color ranges are implemented as drawing effects holding solid color
// brushes. Brushes belong to a render target, so a layout recreates its
// brushes the first time it is drawn after the target was recreated.
package d2d
