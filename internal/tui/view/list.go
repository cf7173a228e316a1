package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/arcade-cli/internal/catalog"
	tuitheme "github.com/glabrego/arcade-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Item       catalog.Item
	Bookmarked bool
	Position   int
	Active     bool
	Width      int
}

func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	bookmarkMarker := " "
	if p.Bookmarked {
		bookmarkMarker = th.BookmarkMarker.Render("★")
	}

	prefix := fmt.Sprintf("  %s %s %2d. ", cursorMarker, bookmarkMarker, p.Position+1)
	categoryLabel := ""
	if c := strings.TrimSpace(p.Item.Category); c != "" {
		categoryLabel = "[" + c + "]"
	}
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(categoryLabel)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Item.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	styledTitle := th.StyleItemTitle(p.Bookmarked, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(categoryLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+th.CategoryLabel.Render(categoryLabel))
}

// RenderCategoryBar renders the selectable categories on one line,
// marking active selectors and the category cursor.
func RenderCategoryBar(categories, active []string, cursor int, focused bool, th tuitheme.Theme) string {
	activeSet := make(map[string]struct{}, len(active))
	for _, a := range active {
		activeSet[a] = struct{}{}
	}
	parts := make([]string, 0, len(categories))
	for i, c := range categories {
		_, on := activeSet[c]
		parts = append(parts, th.StyleCategory(c, on, focused && i == cursor))
	}
	return strings.Join(parts, " ")
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
