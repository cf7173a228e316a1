package bookmarks

import "sort"

// Set is a collection of bookmarked titles.
type Set map[string]struct{}

func NewSet(titles ...string) Set {
	s := make(Set, len(titles))
	for _, title := range titles {
		s[title] = struct{}{}
	}
	return s
}

func (s Set) Has(title string) bool {
	_, ok := s[title]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Titles returns the members sorted, which is also the persisted order.
func (s Set) Titles() []string {
	out := make([]string, 0, len(s))
	for title := range s {
		out = append(out, title)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	out := make(Set, len(s))
	for title := range s {
		out[title] = struct{}{}
	}
	return out
}
