// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"fmt"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
	"github.com/gogpu/rx/internal/textindex"
)

// colorSpan is a ColorRange call in UTF-16 units.
type colorSpan struct {
	pos, n int
	color  rx.Color
}

// paragraph is the Go-side state shared by all clones of a layout.
type paragraph struct {
	text  string
	index *textindex.Index
	font  *Font

	// colors are applied as drawing effects in call order. brushes[i]
	// realizes colors[i] on the render target numbered target.
	colors  []colorSpan
	brushes []*brush
	target  uint64
}

func (p *paragraph) releaseBrushes() {
	for _, b := range p.brushes {
		b.release()
	}
	p.brushes = nil
}

func (p *paragraph) free() {
	p.font.Release()
	p.releaseBrushes()
	p.colors = nil
}

// TextLayout wraps an IDWriteTextLayout. Clones hold a COM reference each
// and share the paragraph.
type TextLayout struct {
	h *refcount.Handle[*textLayout]
	p *paragraph
}

var _ rx.TextLayout = (*TextLayout)(nil)

func layoutAddRef(l *textLayout)  { l.addRef() }
func layoutRelease(l *textLayout) { l.release() }

func newTextLayout(f *factories, text string, font *Font, width, height float64) (*TextLayout, error) {
	// DirectWrite needs a finite box; non-positive extents mean unbounded.
	if width <= 0 {
		width = maxExtent
	}
	if height <= 0 {
		height = maxExtent
	}
	tl, err := f.dwrite.createTextLayout(wide(text), font.format(), width, height)
	if err != nil {
		return nil, err
	}
	p := &paragraph{
		text:  text,
		index: textindex.New(text),
		font:  font.Clone().(*Font),
	}
	return &TextLayout{h: refcount.NewNative(tl, layoutAddRef, layoutRelease), p: p}, nil
}

// maxExtent stands in for an unbounded layout width or height.
const maxExtent = 1 << 24

func asLayout(l rx.TextLayout) (*TextLayout, error) {
	dl, ok := l.(*TextLayout)
	if !ok || dl == nil {
		return nil, fmt.Errorf("d2d: layout %T: %w", l, rx.ErrForeignObject)
	}
	return dl, nil
}

// Clone returns a new reference to the same layout.
func (l *TextLayout) Clone() rx.TextLayout {
	return &TextLayout{h: l.h.Clone(), p: l.p}
}

// Release drops this reference. The paragraph is freed with the last one.
func (l *TextLayout) Release() {
	if l.h.Release() {
		l.p.free()
	}
}

// Text returns the laid out text.
func (l *TextLayout) Text() string { return l.p.text }

func (l *TextLayout) native() *textLayout { return l.h.Value() }

// span converts a rune range to a DWRITE_TEXT_RANGE. ok is false for an
// empty range.
func (l *TextLayout) span(r rx.TextRange) (pos, n int, ok bool) {
	r = r.Clamp(l.p.index.Len())
	pos, n = l.p.index.UTF16Range(r.Start, r.End)
	return pos, n, n > 0
}

// ColorRange colors r. The brush is created when the layout is next drawn.
func (l *TextLayout) ColorRange(r rx.TextRange, c rx.Color) {
	if pos, n, ok := l.span(r); ok {
		l.p.colors = append(l.p.colors, colorSpan{pos: pos, n: n, color: c})
	}
}

// StyleRange sets the slant of r.
func (l *TextLayout) StyleRange(r rx.TextRange, s rx.FontStyle) {
	if pos, n, ok := l.span(r); ok {
		l.native().setFontStyle(dwriteStyle(s), pos, n)
	}
}

// WeightRange sets the weight of r.
func (l *TextLayout) WeightRange(r rx.TextRange, w rx.FontWeight) {
	if pos, n, ok := l.span(r); ok {
		l.native().setFontWeight(dwriteWeight(w), pos, n)
	}
}

// UnderlineRange turns underlining of r on or off.
func (l *TextLayout) UnderlineRange(r rx.TextRange, underline bool) {
	if pos, n, ok := l.span(r); ok {
		l.native().setUnderline(underline, pos, n)
	}
}

// SizeRange sets the size of r in points. Non-positive sizes are ignored.
func (l *TextLayout) SizeRange(r rx.TextRange, size float64) {
	if !(size > 0) {
		return
	}
	if pos, n, ok := l.span(r); ok {
		l.native().setFontSize(size, pos, n)
	}
}

// effects realizes pending color spans as brushes on t. Brushes made for an
// earlier target are dropped and every span is applied again.
func (l *TextLayout) effects(t *renderTarget, gen uint64) {
	p := l.p
	if p.target != gen {
		if len(p.brushes) > 0 {
			rx.Logger().Debug("d2d: layout re-sync", "from", p.target, "to", gen)
		}
		p.releaseBrushes()
		p.target = gen
	}
	for i := len(p.brushes); i < len(p.colors); i++ {
		cs := p.colors[i]
		b, err := t.createSolidColorBrush(cs.color)
		if err != nil {
			rx.Logger().Warn("d2d: text color skipped", "err", err)
			return
		}
		l.native().setDrawingEffect(b, cs.pos, cs.n)
		p.brushes = append(p.brushes, b)
	}
}

// HitTest returns the rune under p and its box.
func (l *TextLayout) HitTest(p rx.Point) (int, rx.Rect, bool) {
	m, inside := l.native().hitTestPoint(p)
	if !inside {
		return 0, rx.Rect{}, false
	}
	box := rx.Rect{X: float64(m.Left), Y: float64(m.Top), W: float64(m.Width), H: float64(m.Height)}
	return l.p.index.RuneFromUTF16(int(m.TextPosition)), box, true
}

// CharBounds returns the box of the rune at index. Past the end it returns
// a zero-width box at the trailing edge of the last rune.
func (l *TextLayout) CharBounds(index int) rx.Rect {
	ix := l.p.index
	n := ix.Len()
	index = max(index, 0)
	if index >= n {
		if n == 0 {
			_, y, m := l.native().hitTestTextPosition(0, false)
			return rx.Rect{Y: float64(y), H: float64(m.Height)}
		}
		x, y, m := l.native().hitTestTextPosition(ix.UTF16(n-1), true)
		return rx.Rect{X: float64(x), Y: float64(y), H: float64(m.Height)}
	}
	_, _, m := l.native().hitTestTextPosition(ix.UTF16(index), false)
	return rx.Rect{X: float64(m.Left), Y: float64(m.Top), W: float64(m.Width), H: float64(m.Height)}
}

// Bounds returns the layout box after wrapping.
func (l *TextLayout) Bounds() rx.Rect {
	m := l.native().metrics()
	return rx.Rect{X: float64(m.Left), Y: float64(m.Top), W: float64(m.Width), H: float64(m.Height)}
}
