package rx

import "os"

// EnvBackend names the environment variable consulted by New when no
// backend was requested with WithBackend.
const EnvBackend = "RX_BACKEND"

// Option configures a RenderContext during creation.
//
// Example:
//
//	rc, err := rx.New(win, rx.WithBackend("cairo"), rx.WithScaleFactor(2))
type Option func(*Config)

// Config holds the resolved creation options. Backend factories receive it
// by value.
type Config struct {
	// Backend forces a named backend. Empty selects by priority.
	Backend string

	// ScaleFactor overrides the window's scale factor when positive.
	ScaleFactor float64

	// SystemFonts enables scanning the system font directories. When false
	// only the embedded fonts of the pure-Go engine are used.
	SystemFonts bool

	// FontCacheDir is where the font index is cached. Empty uses the user
	// cache directory.
	FontCacheDir string

	// DefaultFamily is the family substituted for unknown font names.
	DefaultFamily string
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		SystemFonts:   true,
		DefaultFamily: "Go",
	}
}

// NewConfig applies opts over DefaultConfig and fills Backend from the
// environment when it was not set explicitly.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == "" {
		cfg.Backend = os.Getenv(EnvBackend)
	}
	return cfg
}

// Scale resolves the effective scale factor for win.
func (c Config) Scale(win Window) float64 {
	if c.ScaleFactor > 0 {
		return c.ScaleFactor
	}
	if win != nil {
		if s := win.ScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

// WithBackend forces the named backend instead of selecting by priority.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithScaleFactor overrides the scale factor reported by the window.
func WithScaleFactor(f float64) Option {
	return func(c *Config) {
		c.ScaleFactor = f
	}
}

// WithSystemFonts enables or disables the system font scan.
func WithSystemFonts(enabled bool) Option {
	return func(c *Config) {
		c.SystemFonts = enabled
	}
}

// WithFontCacheDir sets the directory for the font index cache.
func WithFontCacheDir(dir string) Option {
	return func(c *Config) {
		c.FontCacheDir = dir
	}
}

// WithDefaultFamily sets the family used when a requested family is unknown.
func WithDefaultFamily(name string) Option {
	return func(c *Config) {
		c.DefaultFamily = name
	}
}
