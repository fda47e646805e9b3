package software

import "github.com/gogpu/rx"

type attrKind uint8

const (
	attrColor attrKind = iota
	attrStyle
	attrWeight
	attrUnderline
	attrSize
)

// attr is one range override. Only the field named by kind is meaningful.
type attr struct {
	kind      attrKind
	span      rx.TextRange
	color     rx.Color
	style     rx.FontStyle
	weight    rx.FontWeight
	underline bool
	size      float64
}

// attrList records range overrides in call order. Resolution applies them in
// the same order, so for each property the last call covering a rune wins.
type attrList struct {
	attrs []attr
}

func (l *attrList) add(a attr) {
	l.attrs = append(l.attrs, a)
}

// runeStyle is the resolved style of a single rune.
type runeStyle struct {
	color     rx.Color
	hasColor  bool
	style     rx.FontStyle
	weight    rx.FontWeight
	underline bool
	size      float64
}

// shapesLike reports whether two runes can be shaped in the same run.
// Color and underline are applied at draw time and do not split runs.
func (s runeStyle) shapesLike(o runeStyle) bool {
	return s.style == o.style && s.weight == o.weight && s.size == o.size
}

// resolve returns the style of each of the n runes, starting from base.
// A nil list yields base everywhere.
func (l *attrList) resolve(n int, base runeStyle) []runeStyle {
	out := make([]runeStyle, n)
	for i := range out {
		out[i] = base
	}
	if l == nil {
		return out
	}
	for _, a := range l.attrs {
		r := a.span.Clamp(n)
		for i := r.Start; i < r.End; i++ {
			s := &out[i]
			switch a.kind {
			case attrColor:
				s.color, s.hasColor = a.color, true
			case attrStyle:
				s.style = a.style
			case attrWeight:
				s.weight = a.weight
			case attrUnderline:
				s.underline = a.underline
			case attrSize:
				s.size = a.size
			}
		}
	}
	return out
}
