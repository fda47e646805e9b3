// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
)

// shapeScale is the number of shaping units per point. The shaper rounds
// the em size up to a whole unit, so shaping in 1/16 pt keeps fractional
// sizes exact enough.
const shapeScale = 16

func toShape(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * shapeScale * 64))
}

func fromShape(v fixed.Int26_6) float64 {
	return float64(v) / (64 * shapeScale)
}

// placedGlyph is a glyph positioned in layout coordinates.
type placedGlyph struct {
	id      font.GID
	x, y    float64
	advance float64
	cluster int
}

type glyphRun struct {
	face   *font.Face
	size   float64
	glyphs []placedGlyph
}

type line struct {
	top      float64
	baseline float64
	height   float64
	width    float64
	runs     []glyphRun
}

// paragraph is the state shared by all clones of a TextLayout.
type paragraph struct {
	text   string
	runes  []rune
	font   *Font
	width  float64
	height float64
	attrs  *attrList

	// Shaping results, valid while gen matches tc and dirty is false.
	tc     *textContext
	gen    uint64
	dirty  bool
	styles []runeStyle
	lines  []line
	boxes  []rx.Rect
	bounds rx.Rect
}

// TextLayout is the software engine's rx.TextLayout.
type TextLayout struct {
	h *refcount.Handle[*paragraph]
}

var _ rx.TextLayout = (*TextLayout)(nil)

func newTextLayout(tc *textContext, text string, f *Font, width, height float64) *TextLayout {
	p := &paragraph{
		text:   text,
		runes:  []rune(text),
		font:   f.Clone().(*Font),
		width:  width,
		height: height,
		dirty:  true,
	}
	l := &TextLayout{
		h: refcount.New(p, func(p *paragraph) {
			p.font.Release()
			p.tc, p.lines, p.boxes, p.styles = nil, nil, nil, nil
		}),
	}
	l.sync(tc)
	return l
}

// asLayout returns l as a software TextLayout, or ErrForeignObject.
func asLayout(l rx.TextLayout) (*TextLayout, error) {
	tl, ok := l.(*TextLayout)
	if !ok || tl == nil {
		return nil, fmt.Errorf("software: layout %T: %w", l, rx.ErrForeignObject)
	}
	return tl, nil
}

// Clone returns a new reference to the same paragraph.
func (l *TextLayout) Clone() rx.TextLayout {
	return &TextLayout{h: l.h.Clone()}
}

// Release drops this reference. The paragraph and its font reference are
// released with the last clone.
func (l *TextLayout) Release() {
	l.h.Release()
}

// Text returns the laid out text.
func (l *TextLayout) Text() string { return l.h.Value().text }

func (l *TextLayout) add(a attr) {
	p := l.h.Value()
	if p.attrs == nil {
		p.attrs = &attrList{}
	}
	p.attrs.add(a)
	p.dirty = true
}

// ColorRange sets the color of the runes in r.
func (l *TextLayout) ColorRange(r rx.TextRange, c rx.Color) {
	l.add(attr{kind: attrColor, span: r, color: c})
}

// StyleRange sets the slant of the runes in r.
func (l *TextLayout) StyleRange(r rx.TextRange, s rx.FontStyle) {
	l.add(attr{kind: attrStyle, span: r, style: s})
}

// WeightRange sets the weight of the runes in r.
func (l *TextLayout) WeightRange(r rx.TextRange, w rx.FontWeight) {
	l.add(attr{kind: attrWeight, span: r, weight: w})
}

// UnderlineRange toggles the underline of the runes in r.
func (l *TextLayout) UnderlineRange(r rx.TextRange, underline bool) {
	l.add(attr{kind: attrUnderline, span: r, underline: underline})
}

// SizeRange sets the size, in points, of the runes in r. Non-positive sizes
// are ignored.
func (l *TextLayout) SizeRange(r rx.TextRange, size float64) {
	if !(size > 0) {
		return
	}
	l.add(attr{kind: attrSize, span: r, size: size})
}

// HitTest returns the rune under p.
func (l *TextLayout) HitTest(pt rx.Point) (int, rx.Rect, bool) {
	p := l.metrics()
	for i, b := range p.boxes {
		if b.Contains(pt) {
			return i, b, true
		}
	}
	return 0, rx.Rect{}, false
}

// CharBounds returns the box of the rune at index. Indices past the end
// yield a zero-width box after the last rune.
func (l *TextLayout) CharBounds(index int) rx.Rect {
	p := l.metrics()
	n := len(p.boxes)
	if index < 0 {
		index = 0
	}
	if index < n {
		return p.boxes[index]
	}
	if n == 0 {
		var h float64
		if len(p.lines) > 0 {
			h = p.lines[0].height
		}
		return rx.Rect{H: h}
	}
	last := p.boxes[n-1]
	return rx.Rect{X: last.X + last.W, Y: last.Y, H: last.H}
}

// Bounds returns the box of the wrapped lines.
func (l *TextLayout) Bounds() rx.Rect {
	return l.metrics().bounds
}

// metrics returns the paragraph, shaped with the text context it was last
// drawn through.
func (l *TextLayout) metrics() *paragraph {
	p := l.h.Value()
	l.sync(p.tc)
	return p
}

// sync re-shapes the paragraph when its attributes changed or when tc is not
// the text context it was shaped with.
func (l *TextLayout) sync(tc *textContext) {
	p := l.h.Value()
	if !p.dirty && p.tc == tc && p.gen == tc.gen {
		return
	}
	if !p.dirty {
		rx.Logger().Debug("software: layout re-sync", "from", p.gen, "to", tc.gen)
	}
	p.shape(tc)
	p.tc = tc
	p.gen = tc.gen
	p.dirty = false
}

// baseDirection returns the direction of the first strong character.
func baseDirection(runes []rune) di.Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

func isLineControl(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

// shape splits the text into runs of equal font properties, shapes each run
// and wraps the result to the layout width.
func (p *paragraph) shape(tc *textContext) {
	fd := p.font.desc()
	n := len(p.runes)
	p.styles = p.attrs.resolve(n, runeStyle{style: fd.style, weight: fd.weight, size: fd.size})
	dir := baseDirection(p.runes)
	lang := language.DefaultLanguage()

	var outs []shaping.Output
	for start := 0; start < n; {
		end := start + 1
		for end < n && p.styles[end].shapesLike(p.styles[start]) {
			end++
		}
		s := p.styles[start]
		tc.query(fd.family, s.weight, s.style)
		in := shaping.Input{
			Text:      p.runes,
			RunStart:  start,
			RunEnd:    end,
			Direction: dir,
			Size:      toShape(s.size),
			Language:  lang,
		}
		for _, seg := range tc.seg.Split(in, tc.fonts) {
			if seg.Face == nil {
				continue
			}
			outs = append(outs, tc.shaper.Shape(seg))
		}
		start = end
	}

	p.lines = p.lines[:0]
	p.boxes = make([]rx.Rect, n)
	placed := make([]bool, n)
	var top float64

	if len(outs) > 0 {
		maxWidth := fixed.Int26_6(math.MaxInt32)
		if p.width > 0 {
			maxWidth = toShape(p.width)
		}
		cfg := shaping.WrapConfig{Direction: dir, BreakPolicy: shaping.WhenNecessary}
		wrapped, _ := tc.wrapper.WrapParagraphF(cfg, maxWidth, p.runes, shaping.NewSliceIterator(outs))
		for _, runs := range wrapped {
			ln := p.layLine(runs, top, placed)
			top += ln.height
			p.lines = append(p.lines, ln)
		}
	}
	if len(p.lines) == 0 {
		// Empty text still has the height of one line for caret placement.
		tc.query(fd.family, fd.weight, fd.style)
		ln := line{}
		if face := tc.face(' '); face != nil {
			if ext, ok := face.FontHExtents(); ok {
				k := fd.size / float64(face.Upem())
				ln.baseline = float64(ext.Ascender) * k
				ln.height = float64(ext.Ascender-ext.Descender+ext.LineGap) * k
			}
		}
		p.lines = append(p.lines, ln)
		top = ln.height
	}

	// Runes the shaper dropped get an empty box at the end of the line that
	// precedes them.
	for i := range p.boxes {
		if placed[i] {
			continue
		}
		prev := rx.Rect{H: p.lines[0].height}
		if i > 0 {
			b := p.boxes[i-1]
			prev = rx.Rect{X: b.X + b.W, Y: b.Y, H: b.H}
		}
		p.boxes[i] = prev
	}

	var w float64
	for _, ln := range p.lines {
		w = math.Max(w, ln.width)
	}
	p.bounds = rx.Rect{W: w, H: top}
}

// layLine positions one wrapped line, in visual order, and records the box
// of each rune it covers.
func (p *paragraph) layLine(runs shaping.Line, top float64, placed []bool) line {
	runs = slices.Clone(runs)
	slices.SortStableFunc(runs, func(a, b shaping.Output) int {
		return int(a.VisualIndex) - int(b.VisualIndex)
	})

	var ascent, descent, gap float64
	for _, r := range runs {
		ascent = math.Max(ascent, fromShape(r.LineBounds.Ascent))
		descent = math.Max(descent, -fromShape(r.LineBounds.Descent))
		gap = math.Max(gap, fromShape(r.LineBounds.Gap))
	}
	ln := line{top: top, baseline: top + ascent, height: ascent + descent + gap}

	type span struct {
		lo, hi float64
		count  int
	}
	clusters := make(map[int]*span)

	var x float64
	for _, r := range runs {
		gr := glyphRun{face: r.Face, size: fromShape(r.Size)}
		gr.glyphs = make([]placedGlyph, 0, len(r.Glyphs))
		for _, g := range r.Glyphs {
			adv := fromShape(g.Advance)
			if g.ClusterIndex < len(p.runes) && isLineControl(p.runes[g.ClusterIndex]) {
				adv = 0
			} else {
				gr.glyphs = append(gr.glyphs, placedGlyph{
					id:      g.GlyphID,
					x:       x + fromShape(g.XOffset),
					y:       ln.baseline - fromShape(g.YOffset),
					advance: adv,
					cluster: g.ClusterIndex,
				})
			}
			s, ok := clusters[g.ClusterIndex]
			if !ok {
				s = &span{lo: x, hi: x, count: max(g.RuneCount, 1)}
				clusters[g.ClusterIndex] = s
			}
			s.lo = math.Min(s.lo, x)
			s.hi = math.Max(s.hi, x+adv)
			x += adv
		}
		ln.runs = append(ln.runs, gr)
	}
	ln.width = x

	// A cluster of several runes is split evenly between them.
	for start, s := range clusters {
		step := (s.hi - s.lo) / float64(s.count)
		for k := 0; k < s.count; k++ {
			i := start + k
			if i >= len(p.boxes) {
				break
			}
			p.boxes[i] = rx.Rect{X: s.lo + float64(k)*step, Y: top, W: step, H: ln.height}
			placed[i] = true
		}
	}
	return ln
}

// draw paints the paragraph with its top-left corner at origin. Runes
// without a color override use def.
func (p *paragraph) draw(c *canvas, origin rx.Point, def rx.Color) {
	defer c.setColor(def)
	for _, ln := range p.lines {
		for _, gr := range ln.runs {
			for _, g := range gr.glyphs {
				c.setColor(p.colorAt(g.cluster, def))
				c.glyph(gr.face, g.id, origin.X+g.x, origin.Y+g.y, gr.size)
			}
			p.underline(c, origin, ln, gr, def)
		}
	}
}

func (p *paragraph) colorAt(i int, def rx.Color) rx.Color {
	if i < len(p.styles) && p.styles[i].hasColor {
		return p.styles[i].color
	}
	return def
}

// underline draws the underline of a glyph run, merging adjacent glyphs of
// the same color into one bar.
func (p *paragraph) underline(c *canvas, origin rx.Point, ln line, gr glyphRun, def rx.Color) {
	if gr.face == nil {
		return
	}
	k := gr.size / float64(gr.face.Upem())
	pos := float64(gr.face.LineMetric(font.UnderlinePosition)) * k
	thick := float64(gr.face.LineMetric(font.UnderlineThickness)) * k
	if thick <= 0 {
		thick = gr.size / 14
	}
	thick = math.Max(thick, 1/c.scale)
	y := origin.Y + ln.baseline - pos - thick/2

	var (
		open  bool
		x0    float64
		x1    float64
		color rx.Color
	)
	flush := func() {
		if open {
			c.setColor(color)
			c.fillRect(rx.Rect{X: origin.X + x0, Y: y, W: x1 - x0, H: thick})
			open = false
		}
	}
	for _, g := range gr.glyphs {
		if g.cluster >= len(p.styles) || !p.styles[g.cluster].underline {
			flush()
			continue
		}
		col := p.colorAt(g.cluster, def)
		if open && col == color && g.x <= x1+1e-6 {
			x1 = math.Max(x1, g.x+g.advance)
			continue
		}
		flush()
		open, x0, x1, color = true, g.x, g.x+g.advance, col
	}
	flush()
}
