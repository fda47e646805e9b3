// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build cairo && (linux || darwin)

package cairo

/*
#cgo pkg-config: pangocairo
#include <stdlib.h>
#include <pango/pangocairo.h>
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
	"github.com/gogpu/rx/internal/textindex"
)

// paragraph is the Go-side state shared by all clones of a layout.
type paragraph struct {
	text  string
	index *textindex.Index
	font  *Font
	attrs *C.PangoAttrList
	gen   uint64
}

func (p *paragraph) free() {
	p.font.Release()
	if p.attrs != nil {
		C.pango_attr_list_unref(p.attrs)
		p.attrs = nil
	}
}

// TextLayout wraps a PangoLayout. Clones add a GObject reference.
type TextLayout struct {
	h *refcount.Handle[*C.PangoLayout]
	p *paragraph
}

var _ rx.TextLayout = (*TextLayout)(nil)

func gref(ly *C.PangoLayout)   { C.g_object_ref(C.gpointer(unsafe.Pointer(ly))) }
func gunref(ly *C.PangoLayout) { C.g_object_unref(C.gpointer(unsafe.Pointer(ly))) }

func newTextLayout(pg *C.PangoContext, gen uint64, text string, f *Font, width, height float64) (*TextLayout, error) {
	ly := C.pango_layout_new(pg)
	if ly == nil {
		return nil, rx.NativeError(Name, "pango_layout_new", 0, nil)
	}
	cs := C.CString(text)
	defer C.free(unsafe.Pointer(cs))
	C.pango_layout_set_text(ly, cs, C.int(len(text)))
	C.pango_layout_set_font_description(ly, f.h.Value())
	C.pango_layout_set_wrap(ly, C.PANGO_WRAP_WORD_CHAR)
	if width > 0 {
		C.pango_layout_set_width(ly, pangoUnits(width))
	}
	if height > 0 {
		C.pango_layout_set_height(ly, pangoUnits(height))
	}

	p := &paragraph{
		text:  text,
		index: textindex.New(text),
		font:  f.Clone().(*Font),
		gen:   gen,
	}
	return &TextLayout{h: refcount.NewNative(ly, gref, gunref), p: p}, nil
}

func asLayout(l rx.TextLayout) (*TextLayout, error) {
	cl, ok := l.(*TextLayout)
	if !ok || cl == nil {
		return nil, fmt.Errorf("cairo: layout %T: %w", l, rx.ErrForeignObject)
	}
	return cl, nil
}

// Clone returns a new reference to the same PangoLayout.
func (l *TextLayout) Clone() rx.TextLayout {
	return &TextLayout{h: l.h.Clone(), p: l.p}
}

// Release drops this reference. The last release frees the layout, its
// attribute list and its font reference.
func (l *TextLayout) Release() {
	if l.h.Release() {
		l.p.free()
	}
}

// Text returns the laid out text.
func (l *TextLayout) Text() string { return l.p.text }

// change applies a to the runes in r. pango_attr_list_change replaces
// attributes of the same type on the range, which gives last-write-wins.
// The layout gets a copy of the list so that it re-lays out.
func (l *TextLayout) change(r rx.TextRange, a *C.PangoAttribute) {
	s, e := l.p.index.ByteRange(r.Start, r.End)
	if e <= s {
		C.pango_attribute_destroy(a)
		return
	}
	a.start_index = C.guint(s)
	a.end_index = C.guint(e)
	if l.p.attrs == nil {
		l.p.attrs = C.pango_attr_list_new()
	}
	C.pango_attr_list_change(l.p.attrs, a)

	cp := C.pango_attr_list_copy(l.p.attrs)
	C.pango_layout_set_attributes(l.h.Value(), cp)
	C.pango_attr_list_unref(cp)
}

func color16(v float64) C.guint16 {
	return C.guint16(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}

// ColorRange sets the foreground color and alpha of the runes in r.
func (l *TextLayout) ColorRange(r rx.TextRange, c rx.Color) {
	l.change(r, C.pango_attr_foreground_new(color16(c.R), color16(c.G), color16(c.B)))
	l.change(r, C.pango_attr_foreground_alpha_new(color16(c.A)))
}

// StyleRange sets the slant of the runes in r.
func (l *TextLayout) StyleRange(r rx.TextRange, s rx.FontStyle) {
	l.change(r, C.pango_attr_style_new(pangoStyle(s)))
}

// WeightRange sets the weight of the runes in r.
func (l *TextLayout) WeightRange(r rx.TextRange, w rx.FontWeight) {
	l.change(r, C.pango_attr_weight_new(pangoWeight(w)))
}

// UnderlineRange toggles a single underline on the runes in r.
func (l *TextLayout) UnderlineRange(r rx.TextRange, underline bool) {
	u := C.PangoUnderline(C.PANGO_UNDERLINE_NONE)
	if underline {
		u = C.PANGO_UNDERLINE_SINGLE
	}
	l.change(r, C.pango_attr_underline_new(u))
}

// SizeRange sets the size in points of the runes in r.
func (l *TextLayout) SizeRange(r rx.TextRange, size float64) {
	if !(size > 0) {
		return
	}
	l.change(r, C.pango_attr_size_new(pangoUnits(size)))
}

// HitTest returns the rune under p. Pango reports whether p fell inside the
// layout's characters.
func (l *TextLayout) HitTest(p rx.Point) (int, rx.Rect, bool) {
	var idx, trailing C.int
	inside := C.pango_layout_xy_to_index(l.h.Value(), pangoUnits(p.X), pangoUnits(p.Y), &idx, &trailing)
	if inside == 0 {
		return 0, rx.Rect{}, false
	}
	i := l.p.index.RuneFromByte(int(idx))
	box := l.CharBounds(i)
	if !box.Contains(p) {
		return 0, rx.Rect{}, false
	}
	return i, box, true
}

// CharBounds returns the box of the rune at index. The text length yields a
// zero-width box after the last rune.
func (l *TextLayout) CharBounds(index int) rx.Rect {
	n := l.p.index.Len()
	index = max(0, min(index, n))
	var pos C.PangoRectangle
	C.pango_layout_index_to_pos(l.h.Value(), C.int(l.p.index.Byte(index)), &pos)
	r := rx.Rect{
		X: fromPango(pos.x),
		Y: fromPango(pos.y),
		W: fromPango(pos.width),
		H: fromPango(pos.height),
	}
	// Right-to-left runs report a negative width.
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if index == n {
		r.W = 0
	}
	return r
}

// Bounds returns the logical extent of the wrapped lines.
func (l *TextLayout) Bounds() rx.Rect {
	var logical C.PangoRectangle
	C.pango_layout_get_extents(l.h.Value(), nil, &logical)
	return rx.Rect{W: fromPango(logical.width), H: fromPango(logical.height)}
}
