// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

/*
#cgo pkg-config: cairo pangocairo
#include <cairo.h>
*/
import "C"

import (
	"errors"

	"github.com/gogpu/rx"
)

// Name is the registry name of the engine.
const Name = "cairo"

// Priority is the selection priority of the engine: above the pure-Go
// engine, below platform-native engines.
const Priority = 50

// minVersion is the oldest cairo with device scale support, 1.14.0, in the
// encoding of cairo_version.
const minVersion = 11400

// Version returns the runtime cairo version string.
func Version() string {
	return C.GoString(C.cairo_version_string())
}

// available reports whether the linked cairo is recent enough.
func available() bool {
	return int(C.cairo_version()) >= minVersion
}

// statusError converts a cairo status into an *rx.Error, or nil on success.
func statusError(op string, status C.cairo_status_t) error {
	if status == C.CAIRO_STATUS_SUCCESS {
		return nil
	}
	msg := C.GoString(C.cairo_status_to_string(status))
	return rx.NativeError(Name, op, int64(status), errors.New(msg))
}

func surfaceStatus(op string, s *C.cairo_surface_t) error {
	return statusError(op, C.cairo_surface_status(s))
}
