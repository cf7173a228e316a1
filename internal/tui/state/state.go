package state

import (
	"github.com/glabrego/arcade-cli/internal/catalog"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// WrapCursor moves cursor by delta and wraps around both ends.
func WrapCursor(cursor, delta, size int) int {
	if size <= 0 {
		return 0
	}
	next := (cursor + delta) % size
	if next < 0 {
		next += size
	}
	return next
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 8
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// CategoryBar lists the selectable categories: the reserved selectors
// first, then the feed categories.
func CategoryBar(feedCategories []string) []string {
	out := make([]string, 0, len(feedCategories)+2)
	out = append(out, catalog.SelectorAll, catalog.SelectorBookmarks)
	for _, c := range feedCategories {
		if c == catalog.SelectorAll || c == catalog.SelectorBookmarks {
			continue
		}
		out = append(out, c)
	}
	return out
}

func IsActive(selectors []string, selector string) bool {
	for _, s := range selectors {
		if s == selector {
			return true
		}
	}
	return false
}

// ToggleSelector adds or removes selector from the active union. Adding a
// concrete selector drops All, adding All clears the rest, and removing
// the last selector falls back to All.
func ToggleSelector(selectors []string, selector string) []string {
	if selector == catalog.SelectorAll {
		return []string{catalog.SelectorAll}
	}

	out := make([]string, 0, len(selectors)+1)
	removed := false
	for _, s := range selectors {
		if s == catalog.SelectorAll {
			continue
		}
		if s == selector {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		out = append(out, selector)
	}
	if len(out) == 0 {
		return []string{catalog.SelectorAll}
	}
	return out
}

func IndexByTitle(items []catalog.Item, title string) int {
	for i, item := range items {
		if item.Title == title {
			return i
		}
	}
	return -1
}
