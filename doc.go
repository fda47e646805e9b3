// Package rx is a portable 2D render context over native graphics engines.
//
// A RenderContext binds one window surface to a drawing engine and offers a
// small stateful API: rectangles, lines, translations, fonts and styled
// text layouts. Each engine lives in its own package and registers itself
// on import:
//
//   - backend/d2d: Direct2D and DirectWrite on Windows
//   - backend/cairo: Cairo and Pango on Linux and macOS (build tag cairo)
//   - backend/software: pure Go, everywhere
//
// Package platform imports the engines suited to the build target.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rx"
//	    "github.com/gogpu/rx/platform"
//	)
//
//	rc, err := platform.New(win)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
//	font, _ := rc.NewFont("Sans", 14, rx.WeightRegular, rx.StyleNormal)
//	defer font.Release()
//
//	rc.StartPaint()
//	rc.Clear(rx.RGB(1, 1, 1))
//	rc.SetColor(rx.Hex("#1c7ed6"))
//	rc.FillRect(rx.Xywh(10, 10, 100, 40))
//	rc.DrawText(rx.Xywh(10, 60, 200, 20), "hello", font)
//	err = rc.EndPaint()
//
// # Coordinates
//
// Drawing happens in points. The window's scale factor (device pixels per
// point), read at creation and at each Resize, maps points to device pixels;
// PixelsToPoints converts raw input coordinates back.
//
// # Frames and resizing
//
// Drawing calls belong between StartPaint and EndPaint. Resize recreates
// the surface, the drawing handle and the text context, and is refused
// inside a frame with ErrResizeInFrame. When the replacement surface cannot
// be created the context is lost: drawing calls become no-ops and the
// fallible calls return ErrSurfaceLost.
//
// # Text
//
// Fonts and text layouts are reference counted handles owned by the engine
// that created them. Range calls on a TextLayout take rune indices; the
// engines translate them to UTF-8 bytes or UTF-16 code units as needed.
//
// # Logging
//
// rx logs through log/slog and is silent by default. See SetLogger.
package rx
