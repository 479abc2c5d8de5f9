package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTabAtXMatchesRenderedWidths(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i, tab := range Tabs {
			w := TabVisualWidth(tab, i == active)
			if got := TabAtX(pos+w/2, active); got != i {
				t.Fatalf("active=%d x=%d -> tab %d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
		if got := TabAtX(pos+5, active); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestRenderTabBarWidth(t *testing.T) {
	total := len(Tabs) - 1
	for i, tab := range Tabs {
		total += TabVisualWidth(tab, i == 1)
	}
	bar := RenderTabBar(1, 100)
	if w := lipgloss.Width(bar); w != 100 {
		t.Fatalf("tab bar width = %d, want 100", w)
	}
	if total >= 100 {
		t.Fatalf("tabs need %d columns", total)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('x'); got != len(Tabs)-1 {
		t.Fatalf("x -> %d", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Fatalf("z -> %d", got)
	}
}
