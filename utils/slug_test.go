package utils

import (
	"strings"
	"testing"
)

func TestUniqueSlug(t *testing.T) {
	got := UniqueSlug("The Constitution of Tunisia", nil)
	if got != "the-constitution-of-tunisia" {
		t.Errorf("UniqueSlug = %q", got)
	}
}

func TestUniqueSlugCollision(t *testing.T) {
	taken := map[string]bool{"history-of-carthage": true}
	got := UniqueSlug("History of Carthage", func(candidate string) bool {
		return taken[candidate]
	})

	if !strings.HasPrefix(got, "history-of-carthage-") {
		t.Fatalf("collision should append a suffix, got %q", got)
	}
	if len(got) != len("history-of-carthage-")+8 {
		t.Errorf("suffix should be 8 hex chars, got %q", got)
	}
}

func TestUniqueSlugEmptyTitle(t *testing.T) {
	got := UniqueSlug("!!!", nil)
	if got == "" {
		t.Error("slug of unslugifiable title must not be empty")
	}
}
