// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && linux && !cairowayland

package cairo

/*
#cgo pkg-config: cairo
#include <cairo.h>
*/
import "C"

import (
	"fmt"

	"github.com/gogpu/rx"
)

// waylandArm is empty when cairo-gl support is not compiled in.
type waylandArm struct {
	surf *C.cairo_surface_t
}

func newWaylandArm(rx.Handle, int, int) (*waylandArm, error) {
	return nil, fmt.Errorf("cairo: wayland needs the cairowayland build tag: %w", rx.ErrUnsupportedWindow)
}

func (*waylandArm) resize(int, int) {}

func (*waylandArm) present() error { return nil }

func (*waylandArm) close() {}
