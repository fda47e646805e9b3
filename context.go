package rx

// RenderContext is the stateful 2D drawing API bound to one window surface.
//
// A RenderContext owns exactly one native surface, one drawing handle and one
// text context at a time. It is NOT safe for concurrent use: every call must
// come from the goroutine that drives the window's message loop.
//
// Frame discipline: StartPaint must precede all drawing calls of a frame and
// EndPaint must follow them. Resize must not be called between StartPaint and
// EndPaint. Drawing outside a paint bracket is a caller error and is not
// defended against.
type RenderContext interface {
	// StartPaint begins a frame and resets the transform to identity.
	StartPaint()

	// EndPaint ends a frame and presents it.
	EndPaint() error

	// Clear sets the current color to c and replaces every pixel of the
	// surface with it (source compositing, no blending).
	Clear(c Color)

	// SetColor sets the color used by all subsequent stroke, fill, line and
	// text calls. The color is not preserved across Resize.
	SetColor(c Color)

	// StrokeRect outlines r with a line of the given width.
	StrokeRect(r Rect, width float64)

	// FillRect fills r.
	FillRect(r Rect)

	// DrawLine draws a straight line from a to b.
	DrawLine(a, b Point, width float64)

	// Translate appends a translation to the current transform.
	Translate(p Point)

	// NewFont resolves a font by family name in the platform font registry.
	// Unknown families are substituted by the platform's default.
	NewFont(family string, size float64, weight FontWeight, style FontStyle) (Font, error)

	// NewTextLayout creates a paragraph of text wrapped to width×height.
	NewTextLayout(text string, f Font, width, height float64) (TextLayout, error)

	// DrawText draws unmeasured text wrapped to r using a throwaway layout.
	DrawText(r Rect, text string, f Font)

	// DrawTextLayout draws a persistent layout with its top-left at p.
	DrawTextLayout(p Point, l TextLayout)

	// Bounds returns the surface extent in points.
	Bounds() Rect

	// PixelsToPoints converts a device-pixel coordinate (as delivered by raw
	// input events) into points.
	PixelsToPoints(p Point) Point

	// PointsToPixels converts points into device pixels.
	PointsToPixels(p Point) Point

	// Resize recreates the surface, drawing handle and text context for a new
	// window size in device pixels. The window's scale factor is read again
	// unless one was forced with WithScaleFactor.
	Resize(width, height int) error

	// Backend returns the registry name of the engine behind the context.
	Backend() string

	// Close releases the drawing handle, text context and surface.
	Close() error
}

// Font is an immutable, shareable font description.
//
// Fonts are reference counted: Clone returns a new handle sharing the same
// native descriptor, and Release drops one reference. The native descriptor
// is freed when the last reference is released. Releasing the same handle
// twice is a no-op.
type Font interface {
	Clone() Font
	Release()

	Family() string
	Size() float64
	Weight() FontWeight
	Style() FontStyle
}

// TextLayout is a shaped and wrapped paragraph bound to one Font, with
// optional per-range style overrides.
//
// Layouts are reference counted like Fonts. A layout keeps its own reference
// on its font, so releasing every caller-held Font clone does not invalidate
// it. Clones share the same paragraph: a range call on one clone is visible
// through every other clone.
//
// Range calls take rune indices. Overlapping calls for the same property use
// last-write-wins semantics; different properties do not interact.
type TextLayout interface {
	Clone() TextLayout
	Release()

	// Text returns the laid out text.
	Text() string

	ColorRange(r TextRange, c Color)
	StyleRange(r TextRange, s FontStyle)
	WeightRange(r TextRange, w FontWeight)
	UnderlineRange(r TextRange, underline bool)
	SizeRange(r TextRange, size float64)

	// HitTest maps p, in the layout's local coordinate space, to the rune
	// index under it and that character's box. ok is false when p does not
	// fall inside any character.
	HitTest(p Point) (index int, box Rect, ok bool)

	// CharBounds returns the box of the character at index, for caret
	// rendering. An index equal to the text length yields a zero-width box
	// after the last character.
	CharBounds(index int) Rect

	// Bounds returns the overall layout box after wrapping.
	Bounds() Rect
}
