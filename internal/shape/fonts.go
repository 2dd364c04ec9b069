package shape

import (
	"path/filepath"
	"sync"

	"golang.org/x/image/font/opentype"
)

// SystemFontPatterns are glob patterns for CJK-capable fonts that ship with
// common desktops, in preference order.
var SystemFontPatterns = []string{
	"/usr/share/fonts/*/NotoSansCJK*-Bold.ttc",
	"/usr/share/fonts/*/*/NotoSansCJK*-Bold.ttc",
	"/usr/share/fonts/*/NotoSansCJK*.ttc",
	"/usr/share/fonts/*/*/NotoSansCJK*.ttc",
	"/usr/share/fonts/*/SourceHanSans*.ttc",
	"/usr/share/fonts/*/*/SourceHanSans*.ttc",
	"C:\\Windows\\Fonts\\msyhbd.ttc",
	"C:\\Windows\\Fonts\\msyh.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/usr/share/fonts/*/wqy-microhei.ttc",
	"/usr/share/fonts/*/*/wqy-microhei.ttc",
}

// FindSystemFonts returns the existing files matching patterns, in pattern
// order and without duplicates.
func FindSystemFonts(patterns []string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(pat)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	return paths
}

var systemFonts = sync.OnceValue(func() []*opentype.Font {
	var fonts []*opentype.Font
	for _, path := range FindSystemFonts(SystemFontPatterns) {
		if f, err := LoadFont(path); err == nil {
			fonts = append(fonts, f)
		}
	}
	return fonts
})

// SystemFonts loads the installed fonts matched by SystemFontPatterns. The
// result is cached; unreadable files are skipped.
func SystemFonts() []*opentype.Font {
	return systemFonts()
}
