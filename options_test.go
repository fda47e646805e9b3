package rx

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.SystemFonts {
		t.Error("SystemFonts should default to true")
	}
	if cfg.DefaultFamily != "Go" {
		t.Errorf("DefaultFamily = %q, want Go", cfg.DefaultFamily)
	}
	if cfg.Backend != "" {
		t.Errorf("Backend = %q, want empty", cfg.Backend)
	}
}

func TestNewConfigOptions(t *testing.T) {
	t.Setenv(EnvBackend, "")

	cfg := NewConfig(
		WithBackend("cairo"),
		WithScaleFactor(2),
		WithSystemFonts(false),
		WithFontCacheDir("/tmp/fonts"),
		WithDefaultFamily("DejaVu Sans"),
	)
	if cfg.Backend != "cairo" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.ScaleFactor != 2 {
		t.Errorf("ScaleFactor = %v", cfg.ScaleFactor)
	}
	if cfg.SystemFonts {
		t.Error("SystemFonts should be false")
	}
	if cfg.FontCacheDir != "/tmp/fonts" {
		t.Errorf("FontCacheDir = %q", cfg.FontCacheDir)
	}
	if cfg.DefaultFamily != "DejaVu Sans" {
		t.Errorf("DefaultFamily = %q", cfg.DefaultFamily)
	}
}

func TestNewConfigEnvBackend(t *testing.T) {
	t.Setenv(EnvBackend, "software")

	if got := NewConfig().Backend; got != "software" {
		t.Errorf("Backend from env = %q, want software", got)
	}
	if got := NewConfig(WithBackend("d2d")).Backend; got != "d2d" {
		t.Errorf("explicit backend = %q, want d2d", got)
	}
}

func TestConfigScale(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		win  Window
		want float64
	}{
		{"window", Config{}, Offscreen{Scale: 1.5}, 1.5},
		{"override", Config{ScaleFactor: 2}, Offscreen{Scale: 1.5}, 2},
		{"zero window scale", Config{}, Offscreen{}, 1},
		{"negative window scale", Config{}, Offscreen{Scale: -1}, 1},
		{"nil window", Config{}, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Scale(tt.win); got != tt.want {
				t.Errorf("Scale() = %v, want %v", got, tt.want)
			}
		})
	}
}
