package cache

import "testing"

func TestPutEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, string](2)

	c.Put("alpha", "a")
	c.Put("beta", "b")

	if _, ok := c.Get("alpha"); !ok {
		t.Fatalf("expected alpha to be cached")
	}

	c.Put("gamma", "g")

	if _, ok := c.Get("beta"); ok {
		t.Fatalf("expected beta to be evicted")
	}
	if v, ok := c.Get("alpha"); !ok || v != "a" {
		t.Fatalf("expected alpha to survive, got %q ok=%v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("unexpected length: got %d, want 2", c.Len())
	}
}

func TestPutUpdatesExistingEntryWithoutGrowing(t *testing.T) {
	c := New[int, string](2)

	c.Put(1, "one")
	c.Put(1, "uno")

	if c.Len() != 1 {
		t.Fatalf("unexpected length: got %d, want 1", c.Len())
	}
	if v, _ := c.Get(1); v != "uno" {
		t.Fatalf("expected updated value, got %q", v)
	}
}

func TestPurge(t *testing.T) {
	c := New[string, int](0)
	c.Put("a", 1)
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss after purge")
	}
}
