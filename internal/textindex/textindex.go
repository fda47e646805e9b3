// Package textindex translates between rune indices and the native index
// units of text engines: UTF-8 byte offsets (Pango) and UTF-16 code units
// (DirectWrite).
//
// Out-of-range rune indices clamp to the end of the text. Native offsets that
// fall inside a multi-unit encoding map to the rune containing them.
package textindex

import (
	"sort"
	"unicode/utf8"
)

// Index is a precomputed offset table for one string.
// The tables hold one entry per rune plus a terminal entry for the end.
type Index struct {
	bytes []int
	u16   []int
}

// New builds the offset tables for s.
func New(s string) *Index {
	n := utf8.RuneCountInString(s)
	ix := &Index{
		bytes: make([]int, 0, n+1),
		u16:   make([]int, 0, n+1),
	}
	u := 0
	for b, r := range s {
		ix.bytes = append(ix.bytes, b)
		ix.u16 = append(ix.u16, u)
		u += utf16Len(r)
	}
	ix.bytes = append(ix.bytes, len(s))
	ix.u16 = append(ix.u16, u)
	return ix
}

func utf16Len(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// Len returns the number of runes.
func (ix *Index) Len() int {
	return len(ix.bytes) - 1
}

// Bytes returns the length of the text in UTF-8 bytes.
func (ix *Index) Bytes() int {
	return ix.bytes[len(ix.bytes)-1]
}

// UTF16Len returns the length of the text in UTF-16 code units.
func (ix *Index) UTF16Len() int {
	return ix.u16[len(ix.u16)-1]
}

func (ix *Index) clamp(r int) int {
	if r < 0 {
		return 0
	}
	if n := ix.Len(); r > n {
		return n
	}
	return r
}

// Byte returns the UTF-8 byte offset of rune r.
func (ix *Index) Byte(r int) int {
	return ix.bytes[ix.clamp(r)]
}

// UTF16 returns the UTF-16 code unit offset of rune r.
func (ix *Index) UTF16(r int) int {
	return ix.u16[ix.clamp(r)]
}

// RuneFromByte returns the rune containing byte offset b.
func (ix *Index) RuneFromByte(b int) int {
	return lookup(ix.bytes, b)
}

// RuneFromUTF16 returns the rune containing UTF-16 offset u.
func (ix *Index) RuneFromUTF16(u int) int {
	return lookup(ix.u16, u)
}

func lookup(table []int, off int) int {
	if off <= 0 {
		return 0
	}
	end := len(table) - 1
	if off >= table[end] {
		return end
	}
	// First entry greater than off, minus one, is the containing rune.
	return sort.SearchInts(table, off+1) - 1
}

// ByteRange converts a half-open rune range to byte offsets.
func (ix *Index) ByteRange(start, end int) (int, int) {
	return ix.Byte(start), ix.Byte(end)
}

// UTF16Range converts a half-open rune range to a UTF-16 start and length,
// the form DWRITE_TEXT_RANGE expects.
func (ix *Index) UTF16Range(start, end int) (pos, length int) {
	s, e := ix.UTF16(start), ix.UTF16(end)
	if e < s {
		e = s
	}
	return s, e - s
}
