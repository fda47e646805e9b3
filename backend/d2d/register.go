// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/gogpu/rx"
)

func init() {
	rx.Register(Name, Priority, open, available)
}

// open binds a context to a Win32 window. Offscreen windows are left to the
// portable engines.
func open(win rx.Window, cfg rx.Config) (rx.RenderContext, error) {
	h := win.Handle()
	if h.Kind != rx.HandleWin32 {
		return nil, fmt.Errorf("d2d: %s window: %w", h.Kind, rx.ErrUnsupportedWindow)
	}
	if h.HWND == 0 {
		return nil, fmt.Errorf("d2d: %w: %w", errNoHWND, rx.ErrUnsupportedWindow)
	}
	w, hgt := win.Size()
	s, err := NewSurface(windows.HWND(h.HWND), w, hgt, cfg.Scale(win))
	if err != nil {
		return nil, err
	}
	ctx, err := New(s)
	if err != nil {
		return nil, err
	}
	ctx.cfg, ctx.win = cfg, win
	return ctx, nil
}
