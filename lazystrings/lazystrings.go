// Package lazystrings implements the on-demand shared-strings index
// described by spec.md §4.F: a byte-offset index over the <si> elements of
// xl/sharedStrings.xml, backed by a bounded LRU so a lazy workbook never
// materialises the whole table to answer a single-cell lookup.
package lazystrings

import (
	"bytes"
	"container/list"
	"encoding/xml"
	"io"
	"sync"

	"github.com/TsubasaBE/go-xlex/sharedstrings"
	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// DefaultCacheSize is the number of materialised strings the LRU retains
// when no explicit size is given.
const DefaultCacheSize = 10_000

type entry struct {
	offset int64
	length int64
}

// Index is the lazy shared-strings table: an (offset, length) index into
// the original buffer plus a bounded LRU of already-materialised strings.
// The zero value (via New with nil data) is the degenerate zero-string
// instance used when sharedStrings.xml is absent.
type Index struct {
	data    []byte
	entries []entry

	mu        sync.Mutex
	cacheCap  int
	cacheMap  map[int]*list.Element
	cacheList *list.List // front = most recently used
}

type cacheItem struct {
	idx int
	val string
}

// New builds the byte-offset index over data (the raw xl/sharedStrings.xml
// bytes) with an LRU of cacheSize entries. cacheSize <= 0 selects
// DefaultCacheSize.
func New(data []byte, cacheSize int) (*Index, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	idx := &Index{
		cacheCap:  cacheSize,
		cacheMap:  make(map[int]*list.Element),
		cacheList: list.New(),
	}
	if len(data) == 0 {
		return idx, nil
	}
	idx.data = data

	dec := xml.NewDecoder(bytes.NewReader(data))
	var open int64
	var depth int
	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xlexerr.Wrap(xlexerr.InvalidXML, err, "lazystrings: build index")
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "si" {
				if depth == 0 {
					open = offset
				}
				depth++
			}
		case xml.EndElement:
			if el.Name.Local == "si" {
				depth--
				if depth == 0 {
					end := dec.InputOffset()
					idx.entries = append(idx.entries, entry{offset: open, length: end - open})
				}
			}
		}
	}
	return idx, nil
}

// NewEmpty returns the degenerate zero-string, single-slot-cache instance
// used when sharedStrings.xml is absent from the package (spec.md §4.F).
func NewEmpty() *Index {
	idx, _ := New(nil, 1)
	return idx
}

// Len returns the number of indexed strings.
func (idx *Index) Len() int { return len(idx.entries) }

// Get returns the string at position i, materialising and caching it on a
// cache miss. Out-of-range i returns "" and false.
func (idx *Index) Get(i int) (string, bool) {
	if i < 0 || i >= len(idx.entries) {
		return "", false
	}

	idx.mu.Lock()
	if el, ok := idx.cacheMap[i]; ok {
		idx.cacheList.MoveToFront(el)
		s := el.Value.(*cacheItem).val
		idx.mu.Unlock()
		return s, true
	}
	idx.mu.Unlock()

	e := idx.entries[i]
	slice := idx.data[e.offset : e.offset+e.length]
	s, err := sharedstrings.ParseOne(slice)
	if err != nil {
		return "", false
	}

	idx.mu.Lock()
	idx.insertLocked(i, s)
	idx.mu.Unlock()
	return s, true
}

// insertLocked inserts (i, s) into the cache, evicting the least recently
// used entry if the cache is at capacity. Callers must hold idx.mu.
func (idx *Index) insertLocked(i int, s string) {
	if el, ok := idx.cacheMap[i]; ok {
		idx.cacheList.MoveToFront(el)
		el.Value.(*cacheItem).val = s
		return
	}
	if idx.cacheList.Len() >= idx.cacheCap && idx.cacheCap > 0 {
		back := idx.cacheList.Back()
		if back != nil {
			idx.cacheList.Remove(back)
			delete(idx.cacheMap, back.Value.(*cacheItem).idx)
		}
	}
	el := idx.cacheList.PushFront(&cacheItem{idx: i, val: s})
	idx.cacheMap[i] = el
}

// PreloadAll materialises and caches every string in the index.
func (idx *Index) PreloadAll() {
	for i := range idx.entries {
		idx.Get(i)
	}
}

// ToVec returns all strings in order, materialising any not yet cached.
func (idx *Index) ToVec() []string {
	out := make([]string, len(idx.entries))
	for i := range idx.entries {
		s, _ := idx.Get(i)
		out[i] = s
	}
	return out
}
