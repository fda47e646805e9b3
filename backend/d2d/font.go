// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"fmt"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
)

func dwriteWeight(w rx.FontWeight) uint32 {
	switch w {
	case rx.WeightLight:
		return dwriteFontWeightLight
	case rx.WeightBold:
		return dwriteFontWeightBold
	default:
		return dwriteFontWeightRegular
	}
}

func dwriteStyle(s rx.FontStyle) uint32 {
	if s == rx.StyleItalic {
		return dwriteFontStyleItalic
	}
	return dwriteFontStyleNormal
}

// Font wraps an IDWriteTextFormat. Clones share the format and hold a COM
// reference each.
type Font struct {
	h      *refcount.Handle[*textFormat]
	family string
	size   float64
	weight rx.FontWeight
	style  rx.FontStyle
}

var _ rx.Font = (*Font)(nil)

func formatAddRef(tf *textFormat)  { tf.addRef() }
func formatRelease(tf *textFormat) { tf.release() }

func newFont(f *factories, family string, size float64, weight rx.FontWeight, style rx.FontStyle) (*Font, error) {
	tf, err := f.dwrite.createTextFormat(family, dwriteWeight(weight), dwriteStyle(style), size)
	if err != nil {
		return nil, err
	}
	if err := tf.setWordWrapping(dwriteWordWrappingWrap); err != nil {
		tf.release()
		return nil, err
	}
	return &Font{
		h:      refcount.NewNative(tf, formatAddRef, formatRelease),
		family: family,
		size:   size,
		weight: weight,
		style:  style,
	}, nil
}

// Clone returns a new reference to the same text format.
func (f *Font) Clone() rx.Font {
	c := *f
	c.h = f.h.Clone()
	return &c
}

// Release drops this reference. Releasing twice is a no-op.
func (f *Font) Release() {
	f.h.Release()
}

// Family returns the requested family name.
func (f *Font) Family() string { return f.family }

// Size returns the size in points.
func (f *Font) Size() float64 { return f.size }

// Weight returns the requested weight.
func (f *Font) Weight() rx.FontWeight { return f.weight }

// Style returns the requested style.
func (f *Font) Style() rx.FontStyle { return f.style }

func (f *Font) format() *textFormat { return f.h.Value() }

func asFont(f rx.Font) (*Font, error) {
	df, ok := f.(*Font)
	if !ok || df == nil {
		return nil, fmt.Errorf("d2d: font %T: %w", f, rx.ErrForeignObject)
	}
	return df, nil
}
