package rx

import "strconv"

// FontWeight selects the stroke thickness of a font.
type FontWeight uint8

const (
	// WeightRegular is the normal weight (400).
	WeightRegular FontWeight = iota

	// WeightLight is a thinner weight (300).
	WeightLight

	// WeightBold is a heavier weight (700).
	WeightBold
)

// String returns the string representation of the weight.
func (w FontWeight) String() string {
	switch w {
	case WeightRegular:
		return "Regular"
	case WeightLight:
		return "Light"
	case WeightBold:
		return "Bold"
	default:
		return "FontWeight(" + strconv.Itoa(int(w)) + ")"
	}
}

// CSS returns the numeric weight on the 100..900 scale.
func (w FontWeight) CSS() int {
	switch w {
	case WeightLight:
		return 300
	case WeightBold:
		return 700
	default:
		return 400
	}
}

// FontStyle selects the slant of a font.
type FontStyle uint8

const (
	// StyleNormal is an upright face.
	StyleNormal FontStyle = iota

	// StyleItalic is an italic or oblique face.
	StyleItalic
)

// String returns the string representation of the style.
func (s FontStyle) String() string {
	switch s {
	case StyleNormal:
		return "Normal"
	case StyleItalic:
		return "Italic"
	default:
		return "FontStyle(" + strconv.Itoa(int(s)) + ")"
	}
}

// TextRange is a half-open span [Start, End) of rune indices into the text of
// a TextLayout. Indices count Unicode scalar values on every backend; each
// backend translates them to its native unit (UTF-8 bytes, UTF-16 code units).
type TextRange struct {
	Start, End int
}

// Span is a convenience function to create a TextRange.
func Span(start, end int) TextRange {
	return TextRange{Start: start, End: end}
}

// Len returns the number of runes covered by the range.
func (r TextRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Clamp returns the range limited to [0, n).
func (r TextRange) Clamp(n int) TextRange {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.Start > n {
		r.Start = n
	}
	if r.End > n {
		r.End = n
	}
	if r.End < r.Start {
		r.End = r.Start
	}
	return r
}

// Contains reports whether index i falls inside the range.
func (r TextRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}
