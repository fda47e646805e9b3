// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

/*
#cgo pkg-config: pango
#include <stdlib.h>
#include <pango/pango.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
)

// Font wraps a PangoFontDescription. The description is freed with the last
// clone.
type Font struct {
	h      *refcount.Handle[*C.PangoFontDescription]
	family string
	size   float64
	weight rx.FontWeight
	style  rx.FontStyle
}

var _ rx.Font = (*Font)(nil)

func pangoWeight(w rx.FontWeight) C.PangoWeight {
	switch w {
	case rx.WeightLight:
		return C.PANGO_WEIGHT_LIGHT
	case rx.WeightBold:
		return C.PANGO_WEIGHT_BOLD
	default:
		return C.PANGO_WEIGHT_NORMAL
	}
}

func pangoStyle(s rx.FontStyle) C.PangoStyle {
	if s == rx.StyleItalic {
		return C.PANGO_STYLE_ITALIC
	}
	return C.PANGO_STYLE_NORMAL
}

// pangoUnits converts points to Pango units.
func pangoUnits(v float64) C.int {
	return C.int(v * C.PANGO_SCALE)
}

func fromPango(v C.int) float64 {
	return float64(v) / C.PANGO_SCALE
}

func newFont(family string, size float64, weight rx.FontWeight, style rx.FontStyle) (*Font, error) {
	fd := C.pango_font_description_new()
	if fd == nil {
		return nil, rx.NativeError(Name, "pango_font_description_new", 0, nil)
	}
	cs := C.CString(family)
	defer C.free(unsafe.Pointer(cs))
	C.pango_font_description_set_family(fd, cs)
	// Pango ignores negative sizes and falls back to its default.
	if size >= 0 {
		C.pango_font_description_set_size(fd, C.gint(pangoUnits(size)))
	}
	C.pango_font_description_set_weight(fd, pangoWeight(weight))
	C.pango_font_description_set_style(fd, pangoStyle(style))

	return &Font{
		h: refcount.New(fd, func(fd *C.PangoFontDescription) {
			C.pango_font_description_free(fd)
		}),
		family: family,
		size:   size,
		weight: weight,
		style:  style,
	}, nil
}

// Clone returns a new reference to the same description.
func (f *Font) Clone() rx.Font {
	c := *f
	c.h = f.h.Clone()
	return &c
}

// Release drops this reference.
func (f *Font) Release() { f.h.Release() }

func (f *Font) Family() string        { return f.family }
func (f *Font) Size() float64         { return f.size }
func (f *Font) Weight() rx.FontWeight { return f.weight }
func (f *Font) Style() rx.FontStyle   { return f.style }

func asFont(f rx.Font) (*Font, error) {
	cf, ok := f.(*Font)
	if !ok || cf == nil {
		return nil, fmt.Errorf("cairo: font %T: %w", f, rx.ErrForeignObject)
	}
	return cf, nil
}
