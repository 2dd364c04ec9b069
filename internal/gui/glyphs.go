package gui

import "sort"

// codepoints returns the distinct runes of labels plus printable ASCII for
// the HUD, sorted.
func codepoints(labels []string) []rune {
	seen := make(map[rune]bool)
	for r := rune(32); r < 127; r++ {
		seen[r] = true
	}
	seen['°'] = true
	for _, l := range labels {
		for _, r := range l {
			seen[r] = true
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
