package catalog

import "fmt"

// Item is one game parsed from a feed line. Items are never mutated after
// parsing; the title doubles as the bookmark key.
type Item struct {
	Title       string
	Description string
	IconURL     string
	Category    string

	DownloadLink    string
	HasDownloadLink bool
	PreviewURL      string
	HasPreviewURL   bool

	// Line is the 1-based feed line the item was parsed from and Fields
	// the number of delimited fields it carried.
	Line   int
	Fields int
}

// Download reports the download link when the feed line carried a
// non-empty one.
func (i Item) Download() (string, bool) {
	return i.DownloadLink, i.HasDownloadLink && i.DownloadLink != ""
}

// Preview reports the preview media URL when present and non-empty.
func (i Item) Preview() (string, bool) {
	return i.PreviewURL, i.HasPreviewURL && i.PreviewURL != ""
}

// MalformedLineError describes a feed line with fewer fields than the
// required title|description|iconUrl|category|downloadLink prefix.
type MalformedLineError struct {
	Line   int
	Fields int
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf("feed line %d has %d of %d required fields", e.Line, e.Fields, requiredFields)
}
