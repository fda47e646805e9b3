package software

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/rx"
)

// EmbeddedFamily is the family of the fonts compiled into the engine. It is
// always available, so it is the last resort of every font query.
const EmbeddedFamily = "Go"

type embeddedFace struct {
	name   string
	font   *font.Font
	aspect font.Aspect
}

// embeddedFonts parses the Go font family once per process.
// font.Font is read-only and safe to share between text contexts.
var embeddedFonts = sync.OnceValues(func() ([]embeddedFace, error) {
	sources := []struct {
		name   string
		ttf    []byte
		style  font.Style
		weight font.Weight
	}{
		{"regular", goregular.TTF, font.StyleNormal, font.WeightNormal},
		{"bold", gobold.TTF, font.StyleNormal, font.WeightBold},
		{"italic", goitalic.TTF, font.StyleItalic, font.WeightNormal},
		{"bolditalic", gobolditalic.TTF, font.StyleItalic, font.WeightBold},
	}
	faces := make([]embeddedFace, 0, len(sources))
	for _, src := range sources {
		face, err := font.ParseTTF(bytes.NewReader(src.ttf))
		if err != nil {
			return nil, fmt.Errorf("software: parse embedded font %s: %w", src.name, err)
		}
		faces = append(faces, embeddedFace{
			name:   src.name,
			font:   face.Font,
			aspect: font.Aspect{Style: src.style, Weight: src.weight, Stretch: font.StretchNormal},
		})
	}
	return faces, nil
})

// scanLogger forwards fontscan diagnostics to the rx logger at debug level.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...any) {
	log := rx.Logger()
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug("software: fontscan: " + fmt.Sprintf(format, args...))
}

// textContext is the text engine of one drawing handle: the font registry,
// the shaper and the line wrapper. It is recreated on every Resize.
// Layouts remember the text context they were shaped with and re-shape
// when drawn through a newer one.
//
// textContext is not safe for concurrent use.
type textContext struct {
	fonts    *fontscan.FontMap
	shaper   shaping.HarfbuzzShaper
	seg      shaping.Segmenter
	wrapper  shaping.LineWrapper
	fallback string
	gen      uint64
}

// newTextContext builds a font registry holding the embedded Go family and,
// when enabled, the system fonts.
func newTextContext(cfg rx.Config, gen uint64) (*textContext, error) {
	faces, err := embeddedFonts()
	if err != nil {
		return nil, err
	}

	fm := fontscan.NewFontMap(scanLogger{})
	if cfg.SystemFonts {
		if err := fm.UseSystemFonts(cfg.FontCacheDir); err != nil {
			rx.Logger().Warn("software: system font scan failed, using embedded fonts", "err", err)
		}
	}
	for _, f := range faces {
		fm.AddFace(font.NewFace(f.font),
			fontscan.Location{File: "embedded:go-" + f.name},
			font.Description{Family: EmbeddedFamily, Aspect: f.aspect})
	}

	fallback := cfg.DefaultFamily
	if fallback == "" {
		fallback = EmbeddedFamily
	}
	return &textContext{fonts: fm, fallback: fallback, gen: gen}, nil
}

// query selects the faces for a family and style. The configured default
// family and the embedded family are appended so that unknown families are
// substituted rather than rejected.
func (tc *textContext) query(family string, weight rx.FontWeight, style rx.FontStyle) {
	families := []string{family}
	if tc.fallback != family {
		families = append(families, tc.fallback)
	}
	if tc.fallback != EmbeddedFamily && family != EmbeddedFamily {
		families = append(families, EmbeddedFamily)
	}
	tc.fonts.SetQuery(fontscan.Query{
		Families: families,
		Aspect:   aspectOf(weight, style),
	})
}

func aspectOf(weight rx.FontWeight, style rx.FontStyle) font.Aspect {
	a := font.Aspect{
		Style:   font.StyleNormal,
		Weight:  font.Weight(weight.CSS()),
		Stretch: font.StretchNormal,
	}
	if style == rx.StyleItalic {
		a.Style = font.StyleItalic
	}
	return a
}

// face resolves the face that renders r for the current query.
func (tc *textContext) face(r rune) *font.Face {
	return tc.fonts.ResolveFace(r)
}
