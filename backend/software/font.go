package software

import (
	"fmt"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/internal/refcount"
)

// fontDesc is the immutable descriptor shared by all clones of a Font.
// Faces are resolved against a text context at shaping time, so a
// descriptor outlives the context that created it.
type fontDesc struct {
	family string
	size   float64
	weight rx.FontWeight
	style  rx.FontStyle
}

// Font is the software engine's rx.Font.
type Font struct {
	h *refcount.Handle[*fontDesc]
}

var _ rx.Font = (*Font)(nil)

// newFont rejects sizes the shaper cannot lay out. Unknown families are not
// an error.
func newFont(family string, size float64, weight rx.FontWeight, style rx.FontStyle) (*Font, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("software: font size %v must be positive", size)
	}
	d := &fontDesc{family: family, size: size, weight: weight, style: style}
	return &Font{h: refcount.New(d, nil)}, nil
}

// Clone returns a new reference to the same descriptor.
func (f *Font) Clone() rx.Font {
	return &Font{h: f.h.Clone()}
}

// Release drops this reference. Releasing twice is a no-op.
func (f *Font) Release() {
	f.h.Release()
}

// Family returns the requested family name.
func (f *Font) Family() string { return f.h.Value().family }

// Size returns the size in points.
func (f *Font) Size() float64 { return f.h.Value().size }

// Weight returns the requested weight.
func (f *Font) Weight() rx.FontWeight { return f.h.Value().weight }

// Style returns the requested style.
func (f *Font) Style() rx.FontStyle { return f.h.Value().style }

func (f *Font) desc() *fontDesc { return f.h.Value() }

// asFont returns f as a software Font, or ErrForeignObject.
func asFont(f rx.Font) (*Font, error) {
	sf, ok := f.(*Font)
	if !ok || sf == nil {
		return nil, fmt.Errorf("software: font %T: %w", f, rx.ErrForeignObject)
	}
	return sf, nil
}
