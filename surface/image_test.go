// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/rx"
)

func TestNewImage(t *testing.T) {
	s := NewImage(100, 50, 1)
	defer s.Close()

	w, h := s.Size()
	if w != 100 || h != 50 {
		t.Errorf("Size() = %dx%d, want 100x50", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("image bounds = %v", b)
	}
	if s.Bounds() != rx.Xywh(0, 0, 100, 50) {
		t.Errorf("Bounds() = %+v", s.Bounds())
	}
}

func TestImageZeroSize(t *testing.T) {
	s := NewImage(0, 0, 2)
	defer s.Close()

	if len(s.Image().Pix) != 0 {
		t.Errorf("zero-area image should have no pixels, got %d bytes", len(s.Image().Pix))
	}
	if !s.Bounds().Empty() {
		t.Errorf("Bounds() = %+v, want empty", s.Bounds())
	}
	if err := s.EndPaint(); err != nil {
		t.Errorf("EndPaint() on zero-area surface = %v", err)
	}

	if err := s.Resize(40, 20, 0); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if s.Bounds() != rx.Xywh(0, 0, 20, 10) {
		t.Errorf("Bounds() after recovery = %+v, want 20x10 points", s.Bounds())
	}
}

func TestImageNegativeSizeClamped(t *testing.T) {
	s := NewImage(-5, 10, 1)
	if w, h := s.Size(); w != 0 || h != 10 {
		t.Errorf("Size() = %dx%d, want 0x10", w, h)
	}
}

func TestImageResizeRecreates(t *testing.T) {
	s := NewImage(10, 10, 1)
	defer s.Close()

	before := s.Image()
	before.Pix[0] = 0xff

	if err := s.Resize(10, 10, 0); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	after := s.Image()
	if after == before {
		t.Error("Resize to the same size should still allocate a new image")
	}
	if after.Pix[0] != 0 {
		t.Error("new image should start transparent")
	}
}

func TestImageResizeIdempotent(t *testing.T) {
	a := NewImage(10, 10, 1.25)
	b := NewImage(10, 10, 1.25)

	if err := a.Resize(300, 200, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.Resize(300, 200, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.Resize(300, 200, 0); err != nil {
		t.Fatal(err)
	}

	aw, ah := a.Size()
	bw, bh := b.Size()
	if aw != bw || ah != bh || a.Bounds() != b.Bounds() {
		t.Errorf("resize twice differs from once: %dx%d %+v vs %dx%d %+v",
			aw, ah, a.Bounds(), bw, bh, b.Bounds())
	}
}

func TestImageResizeRescales(t *testing.T) {
	s := NewImage(200, 200, 1)
	defer s.Close()

	if err := s.Resize(400, 400, 2); err != nil {
		t.Fatal(err)
	}
	if s.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", s.Scale())
	}
	if s.Bounds() != rx.Xywh(0, 0, 200, 200) {
		t.Errorf("Bounds() = %+v, want 200x200 points", s.Bounds())
	}
	if got := s.PixelsToPoints(rx.Xy(100, 100)); got != rx.Xy(50, 50) {
		t.Errorf("PixelsToPoints = %v, want (50, 50)", got)
	}

	if err := s.Resize(300, 300, 0); err != nil {
		t.Fatal(err)
	}
	if s.Scale() != 2 {
		t.Errorf("Scale() after Resize without scale = %v, want 2", s.Scale())
	}
}

func TestImageCoordinateRoundTrip(t *testing.T) {
	for _, scale := range []float64{1, 1.25, 1.5, 2} {
		s := NewImage(200, 100, scale)
		p := rx.Xy(17, 93)
		got := s.PixelsToPoints(s.PointsToPixels(p))
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("scale %v: round trip %v -> %v", scale, p, got)
		}
		b := s.Bounds()
		if math.Abs(b.W-200/scale) > 1e-9 || math.Abs(b.H-100/scale) > 1e-9 {
			t.Errorf("scale %v: Bounds() = %+v", scale, b)
		}
	}
}

func TestImageScaleExample(t *testing.T) {
	s := NewImage(1920, 1080, 1.5)
	if got := s.PixelsToPoints(rx.Xy(96, 48)); got != rx.Xy(64, 32) {
		t.Errorf("PixelsToPoints = %v, want (64, 32)", got)
	}
	if s.Bounds() != rx.Xywh(0, 0, 1280, 720) {
		t.Errorf("Bounds() = %+v, want 1280x720", s.Bounds())
	}
}

func TestImageClosed(t *testing.T) {
	s := NewImage(10, 10, 1)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := s.Resize(5, 5, 0); !errors.Is(err, rx.ErrClosed) {
		t.Errorf("Resize after Close = %v, want ErrClosed", err)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := New(rx.Offscreen{Width: 64, Height: 32, Scale: 2}, 2)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer p.Close()

	if _, ok := p.(*Image); !ok {
		t.Errorf("offscreen window should yield *Image, got %T", p)
	}
	if p.Bounds() != rx.Xywh(0, 0, 32, 16) {
		t.Errorf("Bounds() = %+v", p.Bounds())
	}
}

type fakeWindow struct {
	handle rx.Handle
}

func (w fakeWindow) Size() (int, int)     { return 10, 10 }
func (w fakeWindow) ScaleFactor() float64 { return 1 }
func (w fakeWindow) Handle() rx.Handle    { return w.handle }

func TestNewProviderUnsupported(t *testing.T) {
	for _, kind := range []rx.HandleKind{rx.HandleWayland, rx.HandleWin32, rx.HandleCocoa} {
		p, err := New(fakeWindow{handle: rx.Handle{Kind: kind}}, 1)
		if !errors.Is(err, rx.ErrUnsupportedWindow) {
			t.Errorf("%s: New() = %v, want ErrUnsupportedWindow", kind, err)
		}
		if p != nil {
			t.Errorf("%s: New() returned provider %T on error, want nil", kind, p)
		}
	}
	if _, err := New(nil, 1); !errors.Is(err, rx.ErrUnsupportedWindow) {
		t.Errorf("New(nil) = %v, want ErrUnsupportedWindow", err)
	}
}
