package links

import "testing"

func TestIDsUnique(t *testing.T) {
	ids := IDs()
	if len(ids) == 0 {
		t.Fatal("expected non-empty registry")
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate registry id %q", id)
		}
		seen[id] = true
	}
}

func TestResolveKeepsOrder(t *testing.T) {
	opts := Resolve([]string{"contact", "popcornService"})
	if len(opts) != 2 {
		t.Fatalf("expected 2 resolved links, got %d", len(opts))
	}
	if opts[0].ID != "contact" || opts[1].ID != "popcornService" {
		t.Errorf("input order not preserved: %v", opts)
	}
}

func TestResolveDropsUnknown(t *testing.T) {
	opts := Resolve([]string{"contact", "doesNotExist"})
	if len(opts) != 1 {
		t.Fatalf("expected 1 resolved link, got %d", len(opts))
	}
	if opts[0].ID != "contact" {
		t.Errorf("expected 'contact', got %q", opts[0].ID)
	}
}

func TestResolveDeduplicates(t *testing.T) {
	opts := Resolve([]string{"blog", "blog", "ourWork"})
	if len(opts) != 2 {
		t.Fatalf("expected 2 resolved links, got %d", len(opts))
	}
	if opts[0].ID != "blog" || opts[1].ID != "ourWork" {
		t.Errorf("unexpected resolution: %v", opts)
	}
}

func TestResolveEmpty(t *testing.T) {
	if opts := Resolve(nil); len(opts) != 0 {
		t.Errorf("expected no links for nil input, got %v", opts)
	}
}
