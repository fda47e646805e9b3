// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"unsafe"

	"github.com/gogpu/rx"
)

// Vtable slots. Each interface continues the numbering of the one it
// extends.
const (
	// ID2D1Factory
	slotCreateHwndRenderTarget = 14

	// ID2D1RenderTarget
	slotCreateSolidColorBrush = 8
	slotDrawLine              = 15
	slotDrawRectangle         = 16
	slotFillRectangle         = 17
	slotDrawText              = 27
	slotDrawTextLayout        = 28
	slotSetTransform          = 30
	slotClear                 = 47
	slotBeginDraw             = 48
	slotEndDraw               = 49

	// ID2D1HwndRenderTarget
	slotResize = 58

	// ID2D1SolidColorBrush
	slotSetColor = 8

	// IDWriteFactory
	slotCreateTextFormat = 15
	slotCreateTextLayout = 18

	// IDWriteTextFormat
	slotSetWordWrapping = 5

	// IDWriteTextLayout
	slotSetFontWeight       = 32
	slotSetFontStyle        = 33
	slotSetFontSize         = 35
	slotSetUnderline        = 36
	slotSetDrawingEffect    = 38
	slotGetMetrics          = 60
	slotHitTestPoint        = 64
	slotHitTestTextPosition = 65
)

type d2dFactory struct{ comObject }

func (f *d2dFactory) createHwndRenderTarget(rp *renderTargetProperties, hp *hwndRenderTargetProperties) (*renderTarget, error) {
	var t *renderTarget
	hr := f.call(slotCreateHwndRenderTarget,
		uintptr(unsafe.Pointer(rp)),
		uintptr(unsafe.Pointer(hp)),
		uintptr(unsafe.Pointer(&t)),
	)
	if err := check("CreateHwndRenderTarget", hr); err != nil {
		return nil, err
	}
	return t, nil
}

// renderTarget is an ID2D1HwndRenderTarget.
type renderTarget struct{ comObject }

func (t *renderTarget) createSolidColorBrush(c rx.Color) (*brush, error) {
	col := toColorF(c)
	var b *brush
	hr := t.call(slotCreateSolidColorBrush,
		uintptr(unsafe.Pointer(&col)),
		0,
		uintptr(unsafe.Pointer(&b)),
	)
	if err := check("CreateSolidColorBrush", hr); err != nil {
		return nil, err
	}
	return b, nil
}

func (t *renderTarget) beginDraw() { t.call(slotBeginDraw) }

func (t *renderTarget) endDraw() uintptr { return t.call(slotEndDraw, 0, 0) }

func (t *renderTarget) clear(c rx.Color) {
	col := toColorF(c)
	t.call(slotClear, uintptr(unsafe.Pointer(&col)))
}

func (t *renderTarget) setTransform(m matrix3x2F) {
	t.call(slotSetTransform, uintptr(unsafe.Pointer(&m)))
}

func (t *renderTarget) drawLine(a, b rx.Point, br *brush, width float64) {
	t.call(slotDrawLine, point2F(a), point2F(b), uintptr(unsafe.Pointer(br)), f32(width), 0)
}

func (t *renderTarget) drawRectangle(r rx.Rect, br *brush, width float64) {
	rc := toRectF(r)
	t.call(slotDrawRectangle, uintptr(unsafe.Pointer(&rc)), uintptr(unsafe.Pointer(br)), f32(width), 0)
}

func (t *renderTarget) fillRectangle(r rx.Rect, br *brush) {
	rc := toRectF(r)
	t.call(slotFillRectangle, uintptr(unsafe.Pointer(&rc)), uintptr(unsafe.Pointer(br)))
}

func (t *renderTarget) drawText(text []uint16, f *textFormat, r rx.Rect, br *brush) {
	rc := toRectF(r)
	t.call(slotDrawText,
		uintptr(unsafe.Pointer(first(text))),
		uintptr(len(text)),
		uintptr(unsafe.Pointer(f)),
		uintptr(unsafe.Pointer(&rc)),
		uintptr(unsafe.Pointer(br)),
		d2d1DrawTextOptionsEnableColorFont,
		dwriteMeasuringModeNatural,
	)
}

func (t *renderTarget) drawTextLayout(p rx.Point, l *textLayout, br *brush) {
	t.call(slotDrawTextLayout,
		point2F(p),
		uintptr(unsafe.Pointer(l)),
		uintptr(unsafe.Pointer(br)),
		d2d1DrawTextOptionsEnableColorFont,
	)
}

func (t *renderTarget) resize(width, height int) error {
	sz := sizeU{Width: uint32(width), Height: uint32(height)}
	return check("ID2D1HwndRenderTarget::Resize", t.call(slotResize, uintptr(unsafe.Pointer(&sz))))
}

// brush is an ID2D1SolidColorBrush.
type brush struct{ comObject }

func (b *brush) setColor(c rx.Color) {
	col := toColorF(c)
	b.call(slotSetColor, uintptr(unsafe.Pointer(&col)))
}

type dwriteFactory struct{ comObject }

func (f *dwriteFactory) createTextFormat(family string, weight, style uint32, size float64) (*textFormat, error) {
	name, err := utf16z(family)
	if err != nil {
		return nil, err
	}
	locale, _ := utf16z("")
	var tf *textFormat
	hr := f.call(slotCreateTextFormat,
		uintptr(unsafe.Pointer(&name[0])),
		0,
		uintptr(weight),
		uintptr(style),
		dwriteFontStretchNormal,
		f32(size),
		uintptr(unsafe.Pointer(&locale[0])),
		uintptr(unsafe.Pointer(&tf)),
	)
	if err := check("CreateTextFormat", hr); err != nil {
		return nil, err
	}
	return tf, nil
}

func (f *dwriteFactory) createTextLayout(text []uint16, tf *textFormat, width, height float64) (*textLayout, error) {
	var l *textLayout
	hr := f.call(slotCreateTextLayout,
		uintptr(unsafe.Pointer(first(text))),
		uintptr(len(text)),
		uintptr(unsafe.Pointer(tf)),
		f32(width),
		f32(height),
		uintptr(unsafe.Pointer(&l)),
	)
	if err := check("CreateTextLayout", hr); err != nil {
		return nil, err
	}
	return l, nil
}

// textFormat is an IDWriteTextFormat.
type textFormat struct{ comObject }

func (tf *textFormat) setWordWrapping(mode uint32) error {
	return check("SetWordWrapping", tf.call(slotSetWordWrapping, uintptr(mode)))
}

// textLayout is an IDWriteTextLayout. Positions and lengths are UTF-16
// code units.
type textLayout struct{ comObject }

func (l *textLayout) setFontWeight(weight uint32, pos, n int) {
	l.call(slotSetFontWeight, uintptr(weight), pair(uint32(pos), uint32(n)))
}

func (l *textLayout) setFontStyle(style uint32, pos, n int) {
	l.call(slotSetFontStyle, uintptr(style), pair(uint32(pos), uint32(n)))
}

func (l *textLayout) setFontSize(size float64, pos, n int) {
	l.call(slotSetFontSize, f32(size), pair(uint32(pos), uint32(n)))
}

func (l *textLayout) setUnderline(on bool, pos, n int) {
	l.call(slotSetUnderline, boolArg(on), pair(uint32(pos), uint32(n)))
}

func (l *textLayout) setDrawingEffect(effect *brush, pos, n int) {
	l.call(slotSetDrawingEffect, uintptr(unsafe.Pointer(effect)), pair(uint32(pos), uint32(n)))
}

func (l *textLayout) metrics() textMetrics {
	var m textMetrics
	l.call(slotGetMetrics, uintptr(unsafe.Pointer(&m)))
	return m
}

func (l *textLayout) hitTestPoint(p rx.Point) (hitTestMetrics, bool) {
	var (
		trailing, inside int32
		m                hitTestMetrics
	)
	l.call(slotHitTestPoint,
		f32(p.X),
		f32(p.Y),
		uintptr(unsafe.Pointer(&trailing)),
		uintptr(unsafe.Pointer(&inside)),
		uintptr(unsafe.Pointer(&m)),
	)
	return m, inside != 0
}

func (l *textLayout) hitTestTextPosition(pos int, trailing bool) (x, y float32, m hitTestMetrics) {
	l.call(slotHitTestTextPosition,
		uintptr(pos),
		boolArg(trailing),
		uintptr(unsafe.Pointer(&x)),
		uintptr(unsafe.Pointer(&y)),
		uintptr(unsafe.Pointer(&m)),
	)
	return x, y, m
}
