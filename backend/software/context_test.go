package software

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/surface"
)

func newTestContext(t *testing.T, w, h int, opts ...rx.Option) *Context[*surface.Image] {
	t.Helper()
	opts = append([]rx.Option{rx.WithSystemFonts(false)}, opts...)
	ctx, err := NewImage(w, h, opts...)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

// assertPixel checks the pixel at (x, y) within one unit per channel.
func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

var (
	orange      = color.RGBA{255, 128, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	black       = color.RGBA{0, 0, 0, 255}
	transparent = color.RGBA{}
)

// TestFrameBracket clears, fills a rectangle and samples both regions.
func TestFrameBracket(t *testing.T) {
	ctx := newTestContext(t, 200, 200)

	ctx.StartPaint()
	ctx.Clear(rx.Hex("#ff8000"))
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.FillRect(rx.Xywh(64, 64, 100, 100))
	if err := ctx.EndPaint(); err != nil {
		t.Fatalf("EndPaint: %v", err)
	}

	img := ctx.Image()
	assertPixel(t, img, 10, 10, orange)
	assertPixel(t, img, 100, 100, blue)
	assertPixel(t, img, 163, 163, blue)
	assertPixel(t, img, 164, 164, orange)
}

// TestClearReplacesPixels checks that Clear does not blend with the previous
// contents.
func TestClearReplacesPixels(t *testing.T) {
	ctx := newTestContext(t, 8, 8)

	ctx.StartPaint()
	ctx.Clear(rx.RGB(1, 1, 1))
	ctx.Clear(rx.RGBA(1, 0, 0, 0.5))
	ctx.EndPaint()

	got := ctx.Image().RGBAAt(4, 4)
	if got.G != 0 || got.B != 0 || !near(got.A, 128) || !near(got.R, 128) {
		t.Errorf("pixel = %v, want premultiplied half red", got)
	}
}

// TestClearSetsColor checks that the clear color becomes the current color.
func TestClearSetsColor(t *testing.T) {
	ctx := newTestContext(t, 20, 20)

	ctx.StartPaint()
	ctx.Clear(rx.Hex("#ff8000"))
	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	ctx.EndPaint()

	assertPixel(t, ctx.Image(), 5, 5, orange)
}

// TestTranslate checks that translations accumulate within a frame and that
// StartPaint resets them.
func TestTranslate(t *testing.T) {
	ctx := newTestContext(t, 100, 100)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.Translate(rx.Xy(10, 10))
	ctx.Translate(rx.Xy(10, 10))
	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	ctx.EndPaint()

	img := ctx.Image()
	assertPixel(t, img, 25, 25, blue)
	assertPixel(t, img, 5, 5, transparent)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 0))
	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	ctx.EndPaint()

	assertPixel(t, img, 5, 5, black)
}

// TestStrokeRect checks that the band is centered on the edge and the
// interior stays untouched.
func TestStrokeRect(t *testing.T) {
	ctx := newTestContext(t, 100, 100)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.StrokeRect(rx.Xywh(20, 20, 60, 60), 4)
	ctx.EndPaint()

	img := ctx.Image()
	assertPixel(t, img, 19, 50, blue)
	assertPixel(t, img, 20, 50, blue)
	assertPixel(t, img, 80, 50, blue)
	assertPixel(t, img, 50, 79, blue)
	assertPixel(t, img, 50, 50, transparent)
	assertPixel(t, img, 10, 10, transparent)
}

// TestStrokeRectWide checks that a band wider than the rectangle fills it.
func TestStrokeRectWide(t *testing.T) {
	ctx := newTestContext(t, 40, 40)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.StrokeRect(rx.Xywh(10, 10, 10, 10), 12)
	ctx.EndPaint()

	assertPixel(t, ctx.Image(), 15, 15, blue)
}

// TestDrawLine draws a horizontal line and samples across it.
func TestDrawLine(t *testing.T) {
	ctx := newTestContext(t, 100, 100)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 0))
	ctx.DrawLine(rx.Xy(10, 50), rx.Xy(90, 50), 4)
	ctx.DrawLine(rx.Xy(10, 10), rx.Xy(10, 10), 4)
	ctx.EndPaint()

	img := ctx.Image()
	assertPixel(t, img, 50, 49, black)
	assertPixel(t, img, 50, 50, black)
	assertPixel(t, img, 50, 40, transparent)
	assertPixel(t, img, 5, 50, transparent)
	assertPixel(t, img, 10, 10, transparent)
}

// TestScaleFactor checks that drawing and coordinates follow the device scale.
func TestScaleFactor(t *testing.T) {
	ctx := newTestContext(t, 200, 100, rx.WithScaleFactor(2))

	if got, want := ctx.Bounds(), rx.Xywh(0, 0, 100, 50); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got, want := ctx.PixelsToPoints(rx.Xy(30, 30)), rx.Xy(15, 15); got != want {
		t.Errorf("PixelsToPoints() = %v, want %v", got, want)
	}
	if got, want := ctx.PointsToPixels(rx.Xy(15, 15)), rx.Xy(30, 30); got != want {
		t.Errorf("PointsToPixels() = %v, want %v", got, want)
	}

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.FillRect(rx.Xywh(10, 10, 10, 10))
	ctx.EndPaint()

	img := ctx.Image()
	assertPixel(t, img, 30, 30, blue)
	assertPixel(t, img, 15, 15, transparent)
}

// TestResizeResetsState checks that Resize recreates the surface and drops the
// transform and the current color.
func TestResizeResetsState(t *testing.T) {
	ctx := newTestContext(t, 50, 50)

	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.Translate(rx.Xy(40, 40))
	ctx.EndPaint()

	if err := ctx.Resize(100, 80); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := ctx.Surface().Size(); w != 100 || h != 80 {
		t.Fatalf("Size() = %dx%d, want 100x80", w, h)
	}

	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	img := ctx.Image()
	if got := img.Bounds(); got != image.Rect(0, 0, 100, 80) {
		t.Fatalf("image bounds = %v", got)
	}
	assertPixel(t, img, 5, 5, black)
	assertPixel(t, img, 45, 45, transparent)
}

// TestResizeInFrame checks that Resize is refused between StartPaint and
// EndPaint.
func TestResizeInFrame(t *testing.T) {
	ctx := newTestContext(t, 50, 50)

	ctx.StartPaint()
	if err := ctx.Resize(60, 60); !errors.Is(err, rx.ErrResizeInFrame) {
		t.Errorf("Resize() during paint = %v, want ErrResizeInFrame", err)
	}
	if err := ctx.EndPaint(); err != nil {
		t.Fatalf("EndPaint: %v", err)
	}
	if err := ctx.Resize(60, 60); err != nil {
		t.Errorf("Resize() after paint = %v", err)
	}
}

// TestResizeZeroArea checks that an empty surface is usable and recovers.
func TestResizeZeroArea(t *testing.T) {
	ctx := newTestContext(t, 50, 50)

	if err := ctx.Resize(0, 0); err != nil {
		t.Fatalf("Resize(0, 0): %v", err)
	}
	if b := ctx.Bounds(); !b.Empty() {
		t.Errorf("Bounds() = %v, want empty", b)
	}

	ctx.StartPaint()
	ctx.Clear(rx.RGB(1, 1, 1))
	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	ctx.DrawText(rx.Xywh(0, 0, 10, 10), "x", mustFont(t, ctx, 12))
	if err := ctx.EndPaint(); err != nil {
		t.Errorf("EndPaint: %v", err)
	}

	if err := ctx.Resize(10, 10); err != nil {
		t.Fatalf("Resize(10, 10): %v", err)
	}
	ctx.StartPaint()
	ctx.Clear(rx.Hex("#ff8000"))
	ctx.EndPaint()
	assertPixel(t, ctx.Image(), 5, 5, orange)
}

// TestClose checks the closed state.
func TestClose(t *testing.T) {
	ctx := newTestContext(t, 10, 10)

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := ctx.NewFont("Go", 12, rx.WeightRegular, rx.StyleNormal); !errors.Is(err, rx.ErrClosed) {
		t.Errorf("NewFont() = %v, want ErrClosed", err)
	}
	if err := ctx.Resize(20, 20); !errors.Is(err, rx.ErrClosed) {
		t.Errorf("Resize() = %v, want ErrClosed", err)
	}
	ctx.StartPaint()
	ctx.FillRect(rx.Xywh(0, 0, 5, 5))
	if err := ctx.EndPaint(); !errors.Is(err, rx.ErrClosed) {
		t.Errorf("EndPaint() = %v, want ErrClosed", err)
	}
}

// TestRegistered checks that the package registers itself and serves
// offscreen windows.
func TestRegistered(t *testing.T) {
	ctx, err := rx.New(rx.Offscreen{Width: 32, Height: 16, Scale: 2},
		rx.WithBackend(Name), rx.WithSystemFonts(false))
	if err != nil {
		t.Fatalf("rx.New: %v", err)
	}
	defer ctx.Close()

	if got := ctx.Backend(); got != Name {
		t.Errorf("Backend() = %q, want %q", got, Name)
	}
	if got, want := ctx.Bounds(), rx.Xywh(0, 0, 16, 8); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

// TestUnsupportedWindow checks that window kinds without a provider fail with
// ErrUnsupportedWindow.
func TestUnsupportedWindow(t *testing.T) {
	_, err := open(fakeWindow{kind: rx.HandleCocoa}, rx.DefaultConfig())
	if !errors.Is(err, rx.ErrUnsupportedWindow) {
		t.Errorf("open() = %v, want ErrUnsupportedWindow", err)
	}
}

type fakeWindow struct {
	kind rx.HandleKind
}

func (fakeWindow) Size() (int, int)     { return 10, 10 }
func (fakeWindow) ScaleFactor() float64 { return 1 }
func (w fakeWindow) Handle() rx.Handle  { return rx.Handle{Kind: w.kind} }

// movingWindow is an offscreen window whose size and scale change, like a
// window dragged between monitors.
type movingWindow struct {
	w, h  int
	scale float64
}

func (m *movingWindow) Size() (int, int)     { return m.w, m.h }
func (m *movingWindow) ScaleFactor() float64 { return m.scale }
func (m *movingWindow) Handle() rx.Handle    { return rx.Handle{Kind: rx.HandleNone} }

// TestResizeRereadsScale checks that Resize picks up a new window scale.
func TestResizeRereadsScale(t *testing.T) {
	win := &movingWindow{w: 200, h: 200, scale: 1}
	ctx, err := rx.New(win, rx.WithBackend(Name), rx.WithSystemFonts(false))
	if err != nil {
		t.Fatalf("rx.New: %v", err)
	}
	defer ctx.Close()

	if got, want := ctx.Bounds(), rx.Xywh(0, 0, 200, 200); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}

	win.w, win.h, win.scale = 400, 400, 2
	if err := ctx.Resize(400, 400); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got, want := ctx.Bounds(), rx.Xywh(0, 0, 200, 200); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got, want := ctx.PixelsToPoints(rx.Xy(100, 100)), rx.Xy(50, 50); got != want {
		t.Errorf("PixelsToPoints() = %v, want %v", got, want)
	}

	// Drawing follows the new scale: a 10pt square covers 20 pixels.
	ctx.StartPaint()
	ctx.SetColor(rx.RGB(0, 0, 1))
	ctx.FillRect(rx.Xywh(0, 0, 10, 10))
	ctx.EndPaint()
	img := ctx.(*Context[surface.Provider]).Image()
	assertPixel(t, img, 15, 15, blue)
	assertPixel(t, img, 25, 25, transparent)
}

// TestResizeForcedScale checks that WithScaleFactor still wins after the
// window scale changes.
func TestResizeForcedScale(t *testing.T) {
	win := &movingWindow{w: 300, h: 300, scale: 1}
	ctx, err := rx.New(win, rx.WithBackend(Name), rx.WithSystemFonts(false), rx.WithScaleFactor(3))
	if err != nil {
		t.Fatalf("rx.New: %v", err)
	}
	defer ctx.Close()

	win.scale = 2
	if err := ctx.Resize(300, 300); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got, want := ctx.Bounds(), rx.Xywh(0, 0, 100, 100); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

// TestResizeTwiceMatchesOnce checks that repeating a resize changes nothing.
func TestResizeTwiceMatchesOnce(t *testing.T) {
	draw := func(ctx *Context[*surface.Image]) {
		ctx.StartPaint()
		ctx.Clear(rx.RGB(1, 1, 1))
		ctx.SetColor(rx.RGB(0, 0, 1))
		ctx.FillRect(rx.Xywh(5, 5, 20, 10))
		ctx.DrawText(rx.Xywh(0, 20, 60, 30), "Hi", mustFont(t, ctx, 14))
		if err := ctx.EndPaint(); err != nil {
			t.Fatalf("EndPaint: %v", err)
		}
	}

	once := newTestContext(t, 40, 40, rx.WithScaleFactor(1.5))
	twice := newTestContext(t, 40, 40, rx.WithScaleFactor(1.5))
	if err := once.Resize(90, 75); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := twice.Resize(90, 75); err != nil {
			t.Fatal(err)
		}
	}

	if once.Bounds() != twice.Bounds() {
		t.Errorf("Bounds() = %v after one resize, %v after two", once.Bounds(), twice.Bounds())
	}
	if a, b := once.Image().Bounds(), twice.Image().Bounds(); a != b {
		t.Fatalf("image bounds = %v after one resize, %v after two", a, b)
	}
	draw(once)
	draw(twice)
	if !bytes.Equal(once.Image().Pix, twice.Image().Pix) {
		t.Error("rendered pixels differ between one and two resizes")
	}
}
