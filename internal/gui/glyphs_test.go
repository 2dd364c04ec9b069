package gui

import "testing"

func TestCodepoints(t *testing.T) {
	got := codepoints([]string{"圆周", "周a"})

	has := func(r rune) bool {
		for _, c := range got {
			if c == r {
				return true
			}
		}
		return false
	}
	for _, r := range []rune{'圆', '周', 'a', 'Z', '°'} {
		if !has(r) {
			t.Errorf("missing %q", r)
		}
	}

	count := 0
	for _, c := range got {
		if c == '周' {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one 周, got %d", count)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatal("codepoints not sorted")
		}
	}
}
