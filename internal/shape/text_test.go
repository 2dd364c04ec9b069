package shape

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crowdmorph/internal/geom"
)

func foregroundBounds(t *testing.T, src Source, w, h int) (lo, hi geom.Point, n int) {
	t.Helper()
	img, err := Render(src, w, h)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	pts := Extract(img, 1)
	lo, hi = geom.Pt(math.Inf(1), math.Inf(1)), geom.Pt(math.Inf(-1), math.Inf(-1))
	for _, p := range pts {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi, len(pts)
}

func TestTextCentered(t *testing.T) {
	lo, hi, n := foregroundBounds(t, Text{Value: "1650"}, 400, 200)
	if n == 0 {
		t.Fatal("expected painted pixels")
	}

	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	if math.Abs(cx-200) > 15 {
		t.Errorf("expected horizontal center near 200, got %.1f", cx)
	}
	if math.Abs(cy-100) > 20 {
		t.Errorf("expected vertical center near 100, got %.1f", cy)
	}
	if width := hi.X - lo.X; width < 250 || width > 340 {
		t.Errorf("expected text about 80%% of the width, got %.1f", width)
	}
}

func TestTextHeightCap(t *testing.T) {
	lo, hi, n := foregroundBounds(t, Text{Value: "1"}, 400, 100)
	if n == 0 {
		t.Fatal("expected painted pixels")
	}
	if hi.Y-lo.Y > 80 {
		t.Errorf("glyph taller than the 80%% cap: %.1f", hi.Y-lo.Y)
	}
	if hi.X-lo.X > 200 {
		t.Errorf("capped glyph should not span the width, got %.1f", hi.X-lo.X)
	}
}

func TestTextEmpty(t *testing.T) {
	pts, err := seeded().Sample(Text{}, 60, 60, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range pts {
		if p != geom.Pt(30, 30) {
			t.Errorf("expected center fallback, got %v", p)
		}
	}
}

func TestTextFallbackFont(t *testing.T) {
	f, err := Text{Value: "1650"}.font()
	if err != nil {
		t.Fatalf("expected bundled font: %v", err)
	}
	bold, _ := goBold()
	if f != bold {
		t.Error("expected Go Bold when no fonts are configured")
	}

	// glyphs missing everywhere still resolve to a font rather than failing
	if _, err := (Text{Value: "圆周旅迹"}).font(); err != nil {
		t.Errorf("expected best-effort font, got %v", err)
	}
}

func TestTextSkipsMissingGlyphs(t *testing.T) {
	// Go Bold has no CJK glyphs; none of them may paint a .notdef box
	img, err := Render(Text{Value: "圆周旅迹"}, 320, 90)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if pts := Extract(img, 1); len(pts) != 0 {
		t.Errorf("expected nothing painted, got %d pixels", len(pts))
	}

	pts, err := seeded().Sample(Text{Value: "圆周旅迹"}, 320, 90, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range pts {
		if p != geom.Pt(160, 45) {
			t.Errorf("expected center fallback, got %v", p)
		}
	}
}

func TestTextMixedScriptDrawsCoveredRunes(t *testing.T) {
	mixed, err := Render(Text{Value: "圆16迹50"}, 400, 200)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	plain, err := Render(Text{Value: "1650"}, 400, 200)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	a, b := Extract(mixed, 1), Extract(plain, 1)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected the digits alone, got %d pixels vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d: expected %v, got %v", i, b[i], a[i])
		}
	}
}

func TestFindSystemFonts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ttc", "b.ttc"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := FindSystemFonts([]string{
		filepath.Join(dir, "b.ttc"),
		filepath.Join(dir, "*.ttc"),
		filepath.Join(dir, "missing.ttc"),
	})
	want := []string{filepath.Join(dir, "b.ttc"), filepath.Join(dir, "a.ttc")}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSystemFontsCoverCJK(t *testing.T) {
	fonts := SystemFonts()
	if len(fonts) == 0 {
		t.Skip("no CJK system font installed")
	}
	f, err := Text{Value: "圆周旅迹", Fonts: fonts}.font()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := drawable(f, "圆周旅迹"); got != "圆周旅迹" {
		t.Errorf("expected every rune covered, got %q", got)
	}
}

func TestLoadFontMissing(t *testing.T) {
	if _, err := LoadFont("/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
}
