package state

import (
	"reflect"
	"testing"

	"github.com/glabrego/arcade-cli/internal/catalog"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(5, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestWrapCursor(t *testing.T) {
	if got := WrapCursor(0, -1, 4); got != 3 {
		t.Fatalf("expected wrap to 3, got %d", got)
	}
	if got := WrapCursor(3, 1, 4); got != 0 {
		t.Fatalf("expected wrap to 0, got %d", got)
	}
	if got := WrapCursor(2, 1, 0); got != 0 {
		t.Fatalf("expected 0 for empty bar, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(20, false); got != 12 {
		t.Fatalf("expected step 12, got %d", got)
	}
	if got := PageStep(20, true); got != 10 {
		t.Fatalf("expected step 10 with status, got %d", got)
	}
	if got := PageStep(5, true); got != 3 {
		t.Fatalf("expected minimum step 3, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(10, 5, 4)
	if start != 3 || end != 7 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(10, 9, 4)
	if start != 6 || end != 10 {
		t.Fatalf("unexpected tail window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(3, 1, 10)
	if start != 0 || end != 3 {
		t.Fatalf("unexpected short window: start=%d end=%d", start, end)
	}
}

func TestCategoryBar(t *testing.T) {
	got := CategoryBar([]string{"Action", "All", "Puzzle"})
	want := []string{catalog.SelectorAll, catalog.SelectorBookmarks, "Action", "Puzzle"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected bar: got=%v want=%v", got, want)
	}
}

func TestToggleSelector(t *testing.T) {
	all := []string{catalog.SelectorAll}

	got := ToggleSelector(all, "Action")
	if !reflect.DeepEqual(got, []string{"Action"}) {
		t.Fatalf("adding a category should drop All, got %v", got)
	}

	got = ToggleSelector(got, catalog.SelectorBookmarks)
	if !reflect.DeepEqual(got, []string{"Action", catalog.SelectorBookmarks}) {
		t.Fatalf("expected union, got %v", got)
	}

	got = ToggleSelector(got, "Action")
	if !reflect.DeepEqual(got, []string{catalog.SelectorBookmarks}) {
		t.Fatalf("expected Action removed, got %v", got)
	}

	got = ToggleSelector(got, catalog.SelectorBookmarks)
	if !reflect.DeepEqual(got, all) {
		t.Fatalf("removing the last selector should fall back to All, got %v", got)
	}

	got = ToggleSelector([]string{"Action", "Puzzle"}, catalog.SelectorAll)
	if !reflect.DeepEqual(got, all) {
		t.Fatalf("selecting All should clear the rest, got %v", got)
	}
}

func TestIsActiveAndIndexByTitle(t *testing.T) {
	if !IsActive([]string{"A", "B"}, "B") || IsActive([]string{"A"}, "B") {
		t.Fatal("unexpected IsActive result")
	}
	items := []catalog.Item{{Title: "Chess"}, {Title: "Go"}}
	if got := IndexByTitle(items, "Go"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := IndexByTitle(items, "Nope"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
