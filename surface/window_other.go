// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !(linux || freebsd || netbsd || openbsd || dragonfly)

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/rx"
)

// Window is unavailable on this platform: the pure-Go engine can only present
// to X11 windows. Native windows are served by the platform's own backend.
type Window struct {
	geometry
}

// NewWindow always fails with ErrUnsupportedWindow on this platform.
func NewWindow(win rx.Window, scale float64) (*Window, error) {
	return nil, fmt.Errorf("surface: %s window: %w", win.Handle().Kind, rx.ErrUnsupportedWindow)
}

func (s *Window) Image() *image.RGBA             { return nil }
func (s *Window) StartPaint()                    {}
func (s *Window) EndPaint() error                { return rx.ErrUnsupportedWindow }
func (s *Window) Resize(int, int, float64) error { return rx.ErrUnsupportedWindow }
func (s *Window) Close() error                   { return nil }
