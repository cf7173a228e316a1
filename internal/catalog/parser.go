package catalog

import "strings"

const (
	fieldDelimiter = "|"
	requiredFields = 5
)

// Parse turns raw feed text into items, one per line, in feed order.
// Short lines are kept: missing text fields stay empty and missing links
// are reported as absent.
func Parse(raw string) []Item {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []Item{}
	}

	lines := strings.Split(trimmed, "\n")
	items := make([]Item, 0, len(lines))
	for i, line := range lines {
		items = append(items, parseLine(strings.TrimSuffix(line, "\r"), i+1))
	}
	return items
}

func parseLine(line string, lineNo int) Item {
	fields := strings.Split(line, fieldDelimiter)
	field := func(idx int) string {
		if idx < len(fields) {
			return fields[idx]
		}
		return ""
	}

	return Item{
		Title:           field(0),
		Description:     field(1),
		IconURL:         field(2),
		Category:        field(3),
		DownloadLink:    field(4),
		HasDownloadLink: len(fields) > 4,
		PreviewURL:      field(5),
		HasPreviewURL:   len(fields) > 5,
		Line:            lineNo,
		Fields:          len(fields),
	}
}

// Malformed lists the parsed items whose feed line was too short. It is
// for diagnostics; the items themselves remain usable.
func Malformed(items []Item) []MalformedLineError {
	var out []MalformedLineError
	for _, item := range items {
		if item.Fields > 0 && item.Fields < requiredFields {
			out = append(out, MalformedLineError{Line: item.Line, Fields: item.Fields})
		}
	}
	return out
}
