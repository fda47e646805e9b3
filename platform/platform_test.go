package platform

import (
	"slices"
	"testing"

	"github.com/gogpu/rx"
)

func TestSoftwareLinked(t *testing.T) {
	if !slices.Contains(Backends(), "software") {
		t.Fatalf("Backends() = %v, want software", Backends())
	}
}

func TestNewOffscreen(t *testing.T) {
	rc, err := New(rx.Offscreen{Width: 40, Height: 20, Scale: 2}, rx.WithSystemFonts(false))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer rc.Close()

	if !slices.Contains(Backends(), rc.Backend()) {
		t.Errorf("Backend() = %q, not in %v", rc.Backend(), Backends())
	}
	if got := rc.Bounds(); got != rx.Xywh(0, 0, 20, 10) {
		t.Errorf("Bounds() = %+v, want 20x10", got)
	}

	rc.StartPaint()
	rc.Clear(rx.RGB(1, 1, 1))
	rc.FillRect(rx.Xywh(2, 2, 4, 4))
	if err := rc.EndPaint(); err != nil {
		t.Errorf("EndPaint() error = %v", err)
	}
}

func TestNamedBackend(t *testing.T) {
	rc, err := New(rx.Offscreen{Width: 8, Height: 8}, rx.WithBackend("software"), rx.WithSystemFonts(false))
	if err != nil {
		t.Fatalf("New(software) error = %v", err)
	}
	defer rc.Close()
	if rc.Backend() != "software" {
		t.Errorf("Backend() = %q, want software", rc.Backend())
	}
}
