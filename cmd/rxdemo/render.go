package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/rx"
	"github.com/gogpu/rx/platform"
)

// imager is implemented by contexts drawing into memory.
type imager interface {
	Image() *image.RGBA
}

// render draws the demo frame into an offscreen context and writes it to
// path. It returns the name of the engine used.
func render(path string, width, height int, opts ...rx.Option) (string, error) {
	rc, err := platform.New(rx.Offscreen{Width: width, Height: height}, opts...)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if err := paint(rc); err != nil {
		return "", err
	}

	im, ok := rc.(imager)
	if !ok || im.Image() == nil {
		return "", fmt.Errorf("rxdemo: %s context cannot export pixels", rc.Backend())
	}
	if err := savePNG(path, im.Image()); err != nil {
		return "", err
	}
	return rc.Backend(), nil
}

func paint(rc rx.RenderContext) error {
	title, err := rc.NewFont("Sans", 28, rx.WeightBold, rx.StyleNormal)
	if err != nil {
		return err
	}
	defer title.Release()
	body, err := rc.NewFont("Sans", 16, rx.WeightRegular, rx.StyleNormal)
	if err != nil {
		return err
	}
	defer body.Release()

	b := rc.Bounds()
	para, err := rc.NewTextLayout(
		"rx draws through Direct2D, Cairo or pure Go. Ranges can be colored, bold, italic, underlined or resized.",
		body, b.W-80, 0)
	if err != nil {
		return err
	}
	defer para.Release()
	para.ColorRange(rx.Span(0, 2), rx.Hex("#d9480f"))
	para.WeightRange(rx.Span(17, 25), rx.WeightBold)
	para.StyleRange(rx.Span(27, 32), rx.StyleItalic)
	para.UnderlineRange(rx.Span(36, 43), true)
	para.SizeRange(rx.Span(0, 2), 22)

	rc.StartPaint()
	rc.Clear(rx.Hex("#f8f9fa"))

	rc.SetColor(rx.Hex("#1c7ed6"))
	rc.FillRect(rx.Xywh(0, 0, b.W, 64))
	rc.SetColor(rx.RGB(1, 1, 1))
	rc.DrawText(rx.Xywh(40, 14, b.W-80, 40), "rx demo", title)

	rc.SetColor(rx.Hex("#495057"))
	rc.StrokeRect(rx.Xywh(20, 84, b.W-40, b.H-104), 2)

	rc.Translate(rx.Xy(40, 104))
	rc.SetColor(rx.Hex("#212529"))
	rc.DrawTextLayout(rx.Xy(0, 0), para)

	pb := para.Bounds()
	rc.SetColor(rx.Hex("#adb5bd"))
	rc.DrawLine(rx.Xy(0, pb.H+12), rx.Xy(pb.W, pb.H+12), 1)

	caret := para.CharBounds(len([]rune(para.Text())))
	rc.SetColor(rx.Hex("#d9480f"))
	rc.DrawLine(rx.Xy(caret.X, caret.Y), rx.Xy(caret.X, caret.Y+caret.H), 2)

	rc.Translate(rx.Xy(0, pb.H+32))
	for i := 0; i < 6; i++ {
		t := float64(i) / 5
		rc.SetColor(rx.RGBA(0.1+0.8*t, 0.4, 0.9-0.8*t, 0.85))
		rc.FillRect(rx.Xywh(float64(i)*56, 0, 48, 48))
	}

	return rc.EndPaint()
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rxdemo: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("rxdemo: encode %s: %w", path, err)
	}
	return f.Close()
}
