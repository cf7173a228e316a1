package view

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/glabrego/arcade-cli/internal/catalog"
	tuitheme "github.com/glabrego/arcade-cli/internal/tui/theme"
)

func TestRenderItemLine_CategoryAtRightEdge(t *testing.T) {
	th := tuitheme.Default()
	line := RenderItemLine(ItemLineParams{
		Item:  catalog.Item{Title: "Space War", Category: "Action"},
		Width: 50,
	}, th)
	plain := stripANSI(line)
	if !strings.HasSuffix(plain, "[Action]") {
		t.Fatalf("expected category suffix at right edge, got %q", plain)
	}
	if got := utf8.RuneCountInString(plain); got != 50 {
		t.Fatalf("expected line width 50, got %d (%q)", got, plain)
	}
	if !strings.Contains(plain, " 1. Space War") {
		t.Fatalf("expected numbered title, got %q", plain)
	}
}

func TestRenderItemLine_Markers(t *testing.T) {
	th := tuitheme.Default()
	plain := stripANSI(RenderItemLine(ItemLineParams{
		Item:       catalog.Item{Title: "Chess", Category: "Board"},
		Bookmarked: true,
		Active:     true,
		Position:   4,
		Width:      40,
	}, th))
	if !strings.HasPrefix(plain, "  > ★  5. Chess") {
		t.Fatalf("unexpected markers: %q", plain)
	}
}

func TestRenderItemLine_TruncatesLongTitle(t *testing.T) {
	th := tuitheme.Default()
	plain := stripANSI(RenderItemLine(ItemLineParams{
		Item:  catalog.Item{Title: strings.Repeat("Long", 20), Category: "Puzzle"},
		Width: 40,
	}, th))
	if !strings.Contains(plain, "...") {
		t.Fatalf("expected truncated title, got %q", plain)
	}
	if !strings.HasSuffix(plain, "[Puzzle]") {
		t.Fatalf("expected category kept after truncation, got %q", plain)
	}
}

func TestRenderItemLine_UntitledAndUncategorised(t *testing.T) {
	th := tuitheme.Default()
	plain := stripANSI(RenderItemLine(ItemLineParams{Item: catalog.Item{}, Width: 30}, th))
	if !strings.Contains(plain, "(untitled)") || strings.Contains(plain, "[") {
		t.Fatalf("unexpected empty item line: %q", plain)
	}
}

func TestRenderCategoryBar(t *testing.T) {
	th := tuitheme.Default()
	plain := stripANSI(RenderCategoryBar([]string{"All", "Bookmarks", "Action"}, []string{"All"}, 2, true, th))
	for _, want := range []string{"All", "Bookmarks", "Action"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in bar, got %q", want, plain)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo wörld", 8); got != "héllo..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateRunes("abc", 2); got != ".." {
		t.Fatalf("unexpected short truncation: %q", got)
	}
}
