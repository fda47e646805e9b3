package software

import (
	"github.com/gogpu/rx"
	"github.com/gogpu/rx/surface"
)

// Priority is the selection priority of the software engine. It is the
// lowest of the built-in engines.
const Priority = 10

func init() {
	rx.Register(Name, Priority, open, nil)
}

// open binds a context to win: an in-memory image for offscreen windows,
// an X11 window where the platform has one.
func open(win rx.Window, cfg rx.Config) (rx.RenderContext, error) {
	p, err := surface.New(win, cfg.Scale(win))
	if err != nil {
		return nil, err
	}
	ctx, err := New(p, cfg)
	if err != nil {
		return nil, err
	}
	ctx.win = win
	return ctx, nil
}
