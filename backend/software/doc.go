// Package software is the pure-Go rx engine.
//
// Drawing uses an anti-aliasing scanline rasterizer (golang.org/x/image/vector)
// over the *image.RGBA of a surface.Provider. Text is shaped with HarfBuzz and
// wrapped by github.com/go-text/typesetting, with faces looked up in the
// system fonts and in the embedded Go font family, which is always present.
//
// Importing the package registers the "software" backend:
//
//	import _ "github.com/gogpu/rx/backend/software"
//
// Offscreen contexts can also be created directly:
//
//	ctx, err := software.NewImage(800, 600, rx.WithSystemFonts(false))
//
// Text indices are runes. Glyph outlines are cached process-wide.
package software
