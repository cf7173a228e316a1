package catalog

import "strings"

// Reserved selectors. SelectorAll lifts the category restriction and
// SelectorBookmarks matches items whose title is bookmarked.
const (
	SelectorAll       = "All"
	SelectorBookmarks = "Bookmarks"
)

// Membership answers whether a title is bookmarked.
type Membership interface {
	Has(title string) bool
}

// Filter returns the items whose title contains query (case-insensitive)
// and whose category matches any of the active selectors. Input order is
// preserved. No selectors at all matches nothing.
func Filter(items []Item, query string, selectors []string, bookmarks Membership) []Item {
	out := make([]Item, 0, len(items))
	if len(selectors) == 0 {
		return out
	}

	needle := strings.ToLower(query)
	allowAll := false
	allowBookmarks := false
	categories := make(map[string]struct{}, len(selectors))
	for _, sel := range selectors {
		if sel == "" {
			continue
		}
		switch sel {
		case SelectorAll:
			allowAll = true
		case SelectorBookmarks:
			allowBookmarks = true
		}
		categories[sel] = struct{}{}
	}

	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.Title), needle) {
			continue
		}
		if !allowAll {
			_, inCategory := categories[item.Category]
			bookmarked := allowBookmarks && bookmarks != nil && bookmarks.Has(item.Title)
			if !inCategory && !bookmarked {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// Categories lists each distinct non-empty category in first-seen order.
func Categories(items []Item) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}

// ParseSelectors splits a comma-joined selector list into tokens,
// dropping blanks and duplicates. An empty list yields SelectorAll.
func ParseSelectors(raw string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	if len(out) == 0 {
		return []string{SelectorAll}
	}
	return out
}
