package view

import (
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/arcade-cli/internal/catalog"
)

type WrapFunc func(string, int) []string

// DetailLines builds the overlay body for one item.
func DetailLines(item catalog.Item, bookmarked bool, width int, wrap WrapFunc) []string {
	if wrap == nil {
		wrap = WrapText
	}
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "(untitled)"
	}

	lines := make([]string, 0, 16)
	lines = append(lines, wrap(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(title))))))
	lines = append(lines, "")

	category := item.Category
	if category == "" {
		category = "-"
	}
	lines = append(lines, wrap("Category: "+category, width)...)
	if bookmarked {
		lines = append(lines, "Bookmarked: yes")
	} else {
		lines = append(lines, "Bookmarked: no")
	}
	if item.IconURL != "" {
		lines = append(lines, wrap("Icon: "+item.IconURL, width)...)
	}
	if link, ok := item.Download(); ok {
		lines = append(lines, wrap("Download: "+link, width)...)
	} else {
		lines = append(lines, "Download: not available")
	}
	if preview, ok := item.Preview(); ok {
		lines = append(lines, wrap("Preview: "+preview+" (p to open)", width)...)
	}

	if text := DescriptionText(item.Description); text != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(text, width)...)
	}
	return lines
}

// DescriptionText flattens a description that may carry inline markup
// into plain text. Block-level tags become line breaks.
func DescriptionText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	var b strings.Builder
	z := nethtml.NewTokenizer(strings.NewReader(raw))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			return normalizeText(b.String())
		case nethtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if tt == nethtml.StartTagToken {
					skip++
				}
			case "br", "p", "div", "li", "h1", "h2", "h3":
				b.WriteString("\n")
			}
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "h1", "h2", "h3":
				b.WriteString("\n")
			}
		}
	}
}

func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n")
}

func WrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for utf8Len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			if line == "" {
				line = word
				continue
			}
			if utf8Len(line)+1+utf8Len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func utf8Len(s string) int {
	return len([]rune(s))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
