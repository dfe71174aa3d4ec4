package lazystrings

import "testing"

const sampleXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="3" uniqueCount="3">
  <si><t>alpha</t></si>
  <si><r><t>be</t></r><r><t>ta</t></r></si>
  <si><t xml:space="preserve"> gamma </t></si>
</sst>`

func TestIndexBuildAndGet(t *testing.T) {
	idx, err := New([]byte(sampleXML), 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	cases := []string{"alpha", "beta", " gamma "}
	for i, want := range cases {
		got, ok := idx.Get(i)
		if !ok || got != want {
			t.Errorf("Get(%d) = %q, %v, want %q", i, got, ok, want)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	idx, err := New([]byte(sampleXML), 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.Get(-1); ok {
		t.Fatal("Get(-1) should report false")
	}
	if _, ok := idx.Get(99); ok {
		t.Fatal("Get(99) should report false")
	}
}

func TestPreloadAllAndToVec(t *testing.T) {
	idx, err := New([]byte(sampleXML), 0)
	if err != nil {
		t.Fatal(err)
	}
	idx.PreloadAll()
	got := idx.ToVec()
	want := []string{"alpha", "beta", " gamma "}
	if len(got) != len(want) {
		t.Fatalf("ToVec() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToVec()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	idx, err := New([]byte(sampleXML), 2)
	if err != nil {
		t.Fatal(err)
	}
	idx.Get(0)
	idx.Get(1)
	idx.Get(2) // evicts index 0, the least recently used

	if _, ok := idx.cacheMap[0]; ok {
		t.Fatal("index 0 should have been evicted")
	}
	if _, ok := idx.cacheMap[2]; !ok {
		t.Fatal("index 2 should be cached")
	}
	// Still retrievable via re-parse on a cache miss.
	got, ok := idx.Get(0)
	if !ok || got != "alpha" {
		t.Fatalf("Get(0) after eviction = %q, %v, want alpha", got, ok)
	}
}

func TestNewEmpty(t *testing.T) {
	idx := NewEmpty()
	if idx.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", idx.Len())
	}
	if _, ok := idx.Get(0); ok {
		t.Fatal("Get(0) on empty index should report false")
	}
}
