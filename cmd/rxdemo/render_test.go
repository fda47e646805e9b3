package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/rx"
)

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.png")
	name, err := render(path, 320, 240, rx.WithBackend("software"), rx.WithSystemFonts(false))
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if name != "software" {
		t.Errorf("backend = %q, want software", name)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("image size = %v, want 320x240", b)
	}

	// Header band is filled blue.
	r, g, bl, _ := img.At(5, 5).RGBA()
	if bl>>8 < 0xc0 || r>>8 > 0x40 || g>>8 < 0x60 {
		t.Errorf("header pixel = %d,%d,%d, want blue", r>>8, g>>8, bl>>8)
	}
}
