// Package sharedstrings parses the xl/sharedStrings.xml part in full,
// producing the ordered string table a sheet's "s"-typed cells index into
// (spec.md §4.E).
package sharedstrings

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// Table holds the shared strings parsed from xl/sharedStrings.xml, in
// document order. It also serves as the workbook's live, append-only
// shared-string table (spec.md §3): Add dedups on insert, matching the
// "dedup-on-insert during edits, append-only otherwise" lifecycle the data
// model describes.
type Table struct {
	strings []string
	index   map[string]int
}

// New parses the raw bytes of xl/sharedStrings.xml. A single streaming XML
// pass tracks nesting depth into <si> and <t> elements: text under <t>
// anywhere inside an <si> — including nested rich-text <r><t> runs —
// concatenates in document order, whitespace is preserved verbatim, and
// entities are decoded by encoding/xml itself.
func New(data []byte) (*Table, error) {
	return parse(bytes.NewReader(data))
}

// NewEmpty returns a Table with zero strings, used when sharedStrings.xml
// is absent from the package, and as the starting table for a freshly
// constructed workbook.
func NewEmpty() *Table {
	return &Table{}
}

// Add returns the index of s in the table, appending it if it is not
// already present (dedup-on-insert, spec.md §3).
func (t *Table) Add(s string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.strings))
		for i, existing := range t.strings {
			t.index[existing] = i
		}
	}
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.strings)
	t.strings = append(t.strings, s)
	t.index[s] = i
	return i
}

func parse(r io.Reader) (*Table, error) {
	dec := xml.NewDecoder(r)
	t := &Table{}

	var inSI bool
	var inT bool
	var current bytes.Buffer

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xlexerr.Wrap(xlexerr.InvalidXML, err, "sharedstrings: parse")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "si":
				inSI = true
				current.Reset()
			case "t":
				if inSI {
					inT = true
				}
			}
		case xml.CharData:
			if inSI && inT {
				current.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inT = false
			case "si":
				inSI = false
				t.strings = append(t.strings, current.String())
			}
		}
	}
	return t, nil
}

// ParseOne decodes a single <si>...</si> fragment, applying the identical
// nested-<t>-run concatenation semantics as New. lazystrings (§4.F) uses
// this to re-parse one index-located slice of the buffer without decoding
// the whole shared-string table.
func ParseOne(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var inT bool
	var current bytes.Buffer

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", xlexerr.Wrap(xlexerr.InvalidXML, err, "sharedstrings: parse one")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inT = true
			}
		case xml.CharData:
			if inT {
				current.Write(el)
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inT = false
			}
		}
	}
	return current.String(), nil
}

// Get returns the shared string at idx and true, or "" and false if idx is
// out of range.
func (t *Table) Get(idx int) (string, bool) {
	if idx < 0 || idx >= len(t.strings) {
		return "", false
	}
	return t.strings[idx], true
}

// Len returns the total number of shared strings loaded.
func (t *Table) Len() int { return len(t.strings) }

// All returns the full table in order, for the writer to re-emit verbatim.
func (t *Table) All() []string { return t.strings }

func (t *Table) String() string {
	return fmt.Sprintf("sharedstrings.Table(%d entries)", len(t.strings))
}
