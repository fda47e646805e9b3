// Package platform links the rendering engines suited to the target OS and
// creates contexts from them.
//
// Importing platform registers the pure-Go software engine everywhere,
// Direct2D on Windows and, when built with the cairo tag, Cairo on Linux
// and macOS. New then picks the highest priority engine that can bind to
// the window:
//
//	rc, err := platform.New(win)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
package platform

import (
	"github.com/gogpu/rx"

	_ "github.com/gogpu/rx/backend/software"
)

// New creates a RenderContext for win from the engines linked into the
// program. See rx.New for the selection rules.
func New(win rx.Window, opts ...rx.Option) (rx.RenderContext, error) {
	return rx.New(win, opts...)
}

// Backends returns the names of the linked engines that can run on this
// system, highest priority first.
func Backends() []string {
	return rx.AvailableBackends()
}
