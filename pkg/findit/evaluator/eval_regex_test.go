package evaluator

import "testing"

func TestGetCachedRegexCompilesAndReuses(t *testing.T) {
	re1 := getCachedRegex(`[0-9]+`)
	if re1 == nil {
		t.Fatal("expected a compiled regex")
	}
	re2 := getCachedRegex(`[0-9]+`)
	if re1 != re2 {
		t.Fatal("expected the second lookup to hit the cache and return the same *Regexp")
	}
}

func TestGetCachedRegexBadPatternYieldsNilAndStaysNil(t *testing.T) {
	if re := getCachedRegex("("); re != nil {
		t.Fatalf("got %v, want nil for an invalid pattern", re)
	}
	if re := getCachedRegex("("); re != nil {
		t.Fatalf("second lookup: got %v, want nil (cached failure)", re)
	}
}

func TestRegexCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newRegexCache(2)
	c.put(&regexCacheEntry{pattern: "a"})
	c.put(&regexCacheEntry{pattern: "b"})
	if _, ok := c.get("a"); !ok {
		t.Fatal("a should still be cached")
	}
	c.put(&regexCacheEntry{pattern: "c"}) // evicts b (a was just touched by get)
	if _, ok := c.get("b"); ok {
		t.Fatal("b should have been evicted as least recently used")
	}
	if _, ok := c.get("a"); !ok {
		t.Fatal("a should survive the eviction")
	}
	if _, ok := c.get("c"); !ok {
		t.Fatal("c should be present")
	}
}
