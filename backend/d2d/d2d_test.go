// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package d2d

import (
	"errors"
	"testing"

	"github.com/gogpu/rx"
)

func testFactories(t *testing.T) *factories {
	t.Helper()
	f, err := shared()
	if err != nil {
		t.Skipf("DirectWrite unavailable: %v", err)
	}
	return f
}

func TestHRESULT(t *testing.T) {
	if failed(0) {
		t.Error("S_OK reported as failure")
	}
	if failed(1) {
		t.Error("S_FALSE reported as failure")
	}
	if !failed(d2dErrRecreateTarget) {
		t.Error("D2DERR_RECREATE_TARGET not reported as failure")
	}

	err := check("EndDraw", d2dErrRecreateTarget)
	code, ok := rx.StatusCode(err)
	if !ok || code != d2dErrRecreateTarget {
		t.Errorf("StatusCode() = %#x, %v", code, ok)
	}
}

func TestPair(t *testing.T) {
	got := pair(3, 7)
	if got&0xffffffff != 3 || got>>32 != 7 {
		t.Errorf("pair(3, 7) = %#x", got)
	}
}

func TestOpenRejectsOffscreen(t *testing.T) {
	_, err := open(rx.Offscreen{Width: 10, Height: 10}, rx.NewConfig())
	if !errors.Is(err, rx.ErrUnsupportedWindow) {
		t.Errorf("open(Offscreen) error = %v, want ErrUnsupportedWindow", err)
	}
}

func TestNewSurfaceInvalidHWND(t *testing.T) {
	_, err := NewSurface(0, 10, 10, 1)
	if !errors.Is(err, rx.ErrUnsupportedWindow) {
		t.Errorf("NewSurface(0) error = %v, want ErrUnsupportedWindow", err)
	}
}

func TestFont(t *testing.T) {
	f := testFactories(t)

	font, err := newFont(f, "Segoe UI", 14, rx.WeightBold, rx.StyleItalic)
	if err != nil {
		t.Fatalf("newFont() error = %v", err)
	}
	clone := font.Clone()
	font.Release()
	font.Release()
	if clone.Family() != "Segoe UI" || clone.Size() != 14 || clone.Weight() != rx.WeightBold || clone.Style() != rx.StyleItalic {
		t.Errorf("clone = %s %v %v %v", clone.Family(), clone.Size(), clone.Weight(), clone.Style())
	}
	clone.Release()

	// DirectWrite itself rejects the size; the error carries its HRESULT.
	_, err = newFont(f, "Segoe UI", 0, rx.WeightRegular, rx.StyleNormal)
	if code, ok := rx.StatusCode(err); !ok || code == 0 {
		t.Errorf("newFont(size 0) = %v, want a DirectWrite error", err)
	}
}

func TestLayout(t *testing.T) {
	f := testFactories(t)

	font, err := newFont(f, "Segoe UI", 20, rx.WeightRegular, rx.StyleNormal)
	if err != nil {
		t.Fatalf("newFont() error = %v", err)
	}
	// U+1F600 takes two UTF-16 units.
	l, err := newTextLayout(f, "a\U0001F600b", font, 400, 0)
	font.Release()
	if err != nil {
		t.Fatalf("newTextLayout() error = %v", err)
	}
	defer l.Release()

	b := l.Bounds()
	if b.W <= 0 || b.H <= 0 {
		t.Fatalf("Bounds() = %+v", b)
	}

	end := l.CharBounds(3)
	if end.W != 0 || end.H <= 0 {
		t.Errorf("CharBounds(end) = %+v, want zero width", end)
	}
	last := l.CharBounds(2)
	if last.X <= 0 || last.W <= 0 {
		t.Errorf("CharBounds(2) = %+v", last)
	}

	idx, box, ok := l.HitTest(rx.Xy(last.X+last.W/2, last.Y+last.H/2))
	if !ok || idx != 2 {
		t.Errorf("HitTest() = %d, %+v, %v; want index 2", idx, box, ok)
	}
	if _, _, ok := l.HitTest(rx.Xy(-50, -50)); ok {
		t.Error("HitTest outside should miss")
	}
	if idx, _, ok := l.HitTest(rx.Xy(0, 0)); !ok || idx != 0 {
		t.Errorf("HitTest(0, 0) = %d, %v; want 0, true", idx, ok)
	}

	l.ColorRange(rx.Span(1, 2), rx.RGB(1, 0, 0))
	if len(l.p.colors) != 1 || l.p.colors[0].pos != 1 || l.p.colors[0].n != 2 {
		t.Errorf("colors = %+v, want one span at 1 of 2 units", l.p.colors)
	}
	l.ColorRange(rx.Span(5, 9), rx.RGB(0, 0, 1))
	if len(l.p.colors) != 1 {
		t.Error("out-of-range ColorRange should be dropped")
	}
}

func TestLayoutClonesShareParagraph(t *testing.T) {
	f := testFactories(t)

	font, err := newFont(f, "Segoe UI", 12, rx.WeightRegular, rx.StyleNormal)
	if err != nil {
		t.Fatalf("newFont() error = %v", err)
	}
	defer font.Release()
	l, err := newTextLayout(f, "hello", font, 0, 0)
	if err != nil {
		t.Fatalf("newTextLayout() error = %v", err)
	}
	c := l.Clone().(*TextLayout)
	c.ColorRange(rx.Span(0, 2), rx.RGB(0, 1, 0))
	if len(l.p.colors) != 1 {
		t.Error("ColorRange on a clone not visible through the original")
	}
	l.Release()
	if c.p.font.h.Released() {
		t.Error("paragraph freed while a clone is alive")
	}
	c.Release()
	if !c.p.font.h.Released() {
		t.Error("paragraph not freed with the last clone")
	}
}

type movingWindow struct {
	scale float64
}

func (m *movingWindow) Size() (int, int)     { return 400, 400 }
func (m *movingWindow) ScaleFactor() float64 { return m.scale }
func (m *movingWindow) Handle() rx.Handle    { return rx.Handle{Kind: rx.HandleWin32} }

func TestResizeScale(t *testing.T) {
	win := &movingWindow{scale: 1}
	c := &Context{win: win, cfg: rx.DefaultConfig()}
	if got := c.nextScale(); got != 1 {
		t.Errorf("nextScale() = %v, want 1", got)
	}
	win.scale = 2
	if got := c.nextScale(); got != 2 {
		t.Errorf("nextScale() after move = %v, want 2", got)
	}
	c.cfg.ScaleFactor = 3
	if got := c.nextScale(); got != 3 {
		t.Errorf("nextScale() with forced factor = %v, want 3", got)
	}

	s := &Surface{scale: 1}
	s.setSize(400, 400)
	if s.rescale(0) || s.rescale(1) {
		t.Error("rescale without a new factor should keep the target")
	}
	if !s.rescale(2) {
		t.Error("rescale(2) should ask for a new target")
	}
	if got, want := s.Bounds(), rx.Xywh(0, 0, 200, 200); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if got, want := s.PixelsToPoints(rx.Xy(100, 100)), rx.Xy(50, 50); got != want {
		t.Errorf("PixelsToPoints() = %v, want %v", got, want)
	}
}
