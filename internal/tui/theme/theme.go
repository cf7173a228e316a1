package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	Empty      lipgloss.Style

	CategoryOn     lipgloss.Style
	CategoryOff    lipgloss.Style
	CategoryCursor lipgloss.Style
	CategoryLabel  lipgloss.Style

	ItemTitle      lipgloss.Style
	ItemBookmarked lipgloss.Style
	BookmarkMarker lipgloss.Style
	Overlay        lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface1 := lipgloss.Color("#45475a")
	cpBase := lipgloss.Color("#1e1e2e")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		Empty:      lipgloss.NewStyle().Bold(true).Foreground(cpSubtext0),

		CategoryOn:     lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpLavender).Padding(0, 1),
		CategoryOff:    lipgloss.NewStyle().Foreground(cpSubtext1).Background(cpSurface0).Padding(0, 1),
		CategoryCursor: lipgloss.NewStyle().Underline(true),
		CategoryLabel:  lipgloss.NewStyle().Foreground(cpTeal),

		ItemTitle:      lipgloss.NewStyle().Foreground(cpText),
		ItemBookmarked: lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		BookmarkMarker: lipgloss.NewStyle().Foreground(cpYellow),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpSurface1).
			Padding(0, 1),
	}
}

func (t Theme) StyleItemTitle(bookmarked bool, title string) string {
	if title == "" {
		return title
	}
	if bookmarked {
		return t.ItemBookmarked.Render(title)
	}
	return t.ItemTitle.Render(title)
}

// StyleCategory renders one category pill. on marks an active selector and
// cursor the pill the category cursor sits on.
func (t Theme) StyleCategory(label string, on, cursor bool) string {
	style := t.CategoryOff
	if on {
		style = t.CategoryOn
	}
	if cursor {
		style = style.Inherit(t.CategoryCursor)
	}
	return style.Render(label)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
