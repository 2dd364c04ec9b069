package shape

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultTextInitial   = 0.5
	DefaultTextWidthFill = 0.8
	DefaultTextHeightCap = 0.8
)

var goBold = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Text is a string drawn bold and centered on both axes. It is sized so its
// advance spans WidthFill of the canvas width, capped at HeightCap of the
// canvas height.
//
// Fonts is the fallback chain: the first font that has a glyph for every rune
// wins, otherwise the one covering the most runes. Go Bold always closes the
// chain, so Latin digits render without any configured font; CJK text needs a
// CJK-capable font in Fonts (see SystemFonts). Runes the chosen font has no
// glyph for are left out instead of drawn as .notdef boxes.
type Text struct {
	Value     string
	Fonts     []*opentype.Font
	Initial   float64
	WidthFill float64
	HeightCap float64
}

func (t Text) Rasterize(dst *image.RGBA) error {
	if t.Value == "" {
		return nil
	}

	f, err := t.font()
	if err != nil {
		return err
	}
	value := drawable(f, t.Value)
	if value == "" {
		return nil
	}

	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	size := math.Min(w, h) * orDefault(t.Initial, DefaultTextInitial)
	adv, err := measure(f, size, value)
	if err != nil {
		return err
	}
	if adv > 0 {
		size *= w * orDefault(t.WidthFill, DefaultTextWidthFill) / adv
	}
	if maxSize := h * orDefault(t.HeightCap, DefaultTextHeightCap); size > maxSize {
		size = maxSize
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return fmt.Errorf("font face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	adv = fixedToFloat(font.MeasureString(face, value))
	ascent, descent := fixedToFloat(m.Ascent), fixedToFloat(m.Descent)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(float64(b.Min.X) + (w-adv)/2),
			Y: floatToFixed(float64(b.Min.Y) + h/2 + (ascent-descent)/2),
		},
	}
	d.DrawString(value)
	return nil
}

func (t Text) font() (*opentype.Font, error) {
	chain := make([]*opentype.Font, 0, len(t.Fonts)+1)
	for _, f := range t.Fonts {
		if f != nil {
			chain = append(chain, f)
		}
	}
	if fb, err := goBold(); err == nil {
		chain = append(chain, fb)
	}
	if len(chain) == 0 {
		return nil, ErrNoFont
	}

	var buf sfnt.Buffer
	best, bestCov := chain[0], -1
	for _, f := range chain {
		cov, total := coverage(f, &buf, t.Value)
		if cov == total {
			return f, nil
		}
		if cov > bestCov {
			best, bestCov = f, cov
		}
	}
	return best, nil
}

// coverage counts the non-space runes of s that f has glyphs for.
func coverage(f *opentype.Font, buf *sfnt.Buffer, s string) (covered, total int) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if idx, err := f.GlyphIndex(buf, r); err == nil && idx != 0 {
			covered++
		}
	}
	return covered, total
}

// drawable drops the runes of s that f maps to glyph 0.
func drawable(f *opentype.Font, s string) string {
	var buf sfnt.Buffer
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		if idx, err := f.GlyphIndex(&buf, r); err != nil || idx == 0 {
			return -1
		}
		return r
	}, s)
}

func measure(f *opentype.Font, size float64, s string) (float64, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return 0, fmt.Errorf("font face: %w", err)
	}
	defer face.Close()
	return fixedToFloat(font.MeasureString(face, s)), nil
}

// LoadFont reads a TrueType/OpenType font or the first face of a collection
// (.ttc), which is how most CJK system fonts ship.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f, err := opentype.Parse(data); err == nil {
		return f, nil
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	if coll.NumFonts() == 0 {
		return nil, fmt.Errorf("%w: %s is an empty collection", ErrNoFont, path)
	}
	return coll.Font(0)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
