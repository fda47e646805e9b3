// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

import "github.com/gogpu/rx"

func init() {
	rx.Register(Name, Priority, open, available)
}

// open binds a context to win: an image surface for offscreen windows, the
// platform's window surface otherwise.
func open(win rx.Window, cfg rx.Config) (rx.RenderContext, error) {
	scale := cfg.Scale(win)
	var (
		s   Surface
		err error
	)
	if win.Handle().Kind == rx.HandleNone {
		w, h := win.Size()
		s, err = NewImageSurface(w, h, scale)
	} else {
		s, err = newWindowSurface(win, scale)
	}
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
