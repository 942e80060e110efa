package slug

import (
	"strings"
	"testing"
	"time"
)

func TestSlugifyBasic(t *testing.T) {
	got := Slugify("Toronto!! Popcorn  Removal")
	if got != "toronto-popcorn-removal" {
		t.Errorf("expected 'toronto-popcorn-removal', got %q", got)
	}
}

func TestSlugifyTrimsHyphens(t *testing.T) {
	got := Slugify("--Hello, World!--")
	if got != "hello-world" {
		t.Errorf("expected 'hello-world', got %q", got)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Toronto!! Popcorn  Removal",
		"Leslieville: Smooth Ceilings (2026 Guide)",
		strings.Repeat("Markham ceiling refinish ", 8),
	}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not a fixed point for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("a", 200))
	if len(got) != 80 {
		t.Errorf("expected 80 chars, got %d", len(got))
	}
}

func TestSlugifyEmpty(t *testing.T) {
	if got := Slugify("!!!"); got != "" {
		t.Errorf("expected empty slug, got %q", got)
	}
}

func TestDated(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	got := Dated("toronto-guide", now)
	if got != "toronto-guide-1760000000000" {
		t.Errorf("unexpected dated slug %q", got)
	}
}

func TestDatedCapped(t *testing.T) {
	now := time.UnixMilli(1760000000000)
	got := Dated(strings.Repeat("a", 80), now)
	if len(got) != 96 {
		t.Errorf("expected 96 chars, got %d", len(got))
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 80)+"-") {
		t.Errorf("expected base slug preserved, got %q", got)
	}
}
