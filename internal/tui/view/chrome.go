package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/arcade-cli/internal/tui/theme"
)

func Toolbar(inDetail, searching bool) string {
	if searching {
		return "type to filter | enter/esc: done | ctrl+l: clear"
	}
	if inDetail {
		return "esc close | b bookmark | o download | p preview | y copy link | [ ] prev/next | ? help"
	}
	return "j/k move | / search | tab category | space only | x add/remove | b bookmark | enter details | r reload | ? help"
}

func Footer(query string, selectors []string, shown, total, bookmarks int, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("categories") + " " + th.MetaValue.Render(strings.Join(selectors, ",")),
		th.MetaValue.Render(fmt.Sprintf("%d/%d shown", shown, total)),
		th.MetaLabel.Render("bookmarks") + " " + th.MetaValue.Render(fmt.Sprintf("%d", bookmarks)),
	}
	if query != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q", query)))
	}
	return strings.Join(parts, " • ")
}

// Message renders the state line. state is one of idle, loading or
// failed; warning is shown when there is no status.
func Message(state, status, warning string, th tuitheme.Theme) string {
	main := "Ready"
	switch {
	case status != "":
		main = status
	case warning != "":
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "failed":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func HelpLines() []string {
	return []string{
		"Navigation:",
		"  j/k or arrows move, g/G jump top/bottom, pgup/pgdown jump page",
		"Search:",
		"  / focuses the search box, every keystroke re-filters by title",
		"  ctrl+l clears the search",
		"Categories:",
		"  tab/shift+tab move the category cursor",
		"  space shows only that category, x adds or removes it",
		"  Bookmarks shows bookmarked games, All lifts the restriction",
		"Details:",
		"  enter opens the overlay, esc closes it",
		"  o opens the download link, p opens the preview, y copies the link",
		"Other:",
		"  b toggles a bookmark, r reloads the feed, q quits",
	}
}
