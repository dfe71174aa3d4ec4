// Package sheetxml converts a single worksheet XML part into a populated
// sheet.Sheet (spec.md §4.I): a streaming walk over <c> elements dispatching
// on the "t" type token, plus row/column dimension and merged-range side
// tables.
package sheetxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-xlex/cellvalue"
	"github.com/TsubasaBE/go-xlex/coord"
	"github.com/TsubasaBE/go-xlex/internal/xmlutil"
	"github.com/TsubasaBE/go-xlex/lazystrings"
	"github.com/TsubasaBE/go-xlex/sharedstrings"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// Strings is the minimal shared-string lookup sheetxml needs: either an
// eager sharedstrings.Table or a lazystrings.Index satisfies it.
type Strings interface {
	Get(idx int) (string, bool)
}

var (
	_ Strings = (*sharedstrings.Table)(nil)
	_ Strings = (*lazystrings.Index)(nil)
)

// Parse decodes a worksheet XML part into sh, which must already carry the
// Info the caller wants attached; cells, row/column side tables, and merges
// are populated onto it in place.
func Parse(data []byte, sh *sheet.Sheet, strs Strings) error {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		inCell     bool
		cellRef    coord.Ref
		cellType   string
		cellStyle  int
		hasStyle   bool
		inValue    bool
		inFormula  bool
		valueText  bytes.Buffer
		formulaTxt bytes.Buffer
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return xlexerr.Wrap(xlexerr.InvalidXML, err, "sheetxml: parse")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "c":
				inCell = true
				cellType = ""
				cellStyle = 0
				hasStyle = false
				valueText.Reset()
				formulaTxt.Reset()
				if r, ok := xmlutil.Attr(el, "r"); ok {
					ref, err := coord.ParseRef(r)
					if err != nil {
						return xlexerr.Wrap(xlexerr.InvalidReference, err, "sheetxml: cell reference %q", r)
					}
					cellRef = ref
				}
				if t, ok := xmlutil.Attr(el, "t"); ok {
					cellType = t
				}
				if s, ok := xmlutil.Attr(el, "s"); ok {
					if id, err := strconv.Atoi(s); err == nil {
						cellStyle = id
						hasStyle = true
					}
				}
			case "v":
				if inCell {
					inValue = true
				}
			case "f":
				if inCell {
					inFormula = true
				}
			case "row":
				if err := parseRowElement(el, sh); err != nil {
					return err
				}
			case "col":
				if err := parseColElement(el, sh); err != nil {
					return err
				}
			case "mergeCell":
				if ref, ok := xmlutil.Attr(el, "ref"); ok {
					r, err := coord.ParseRange(ref)
					if err == nil {
						sh.AddMerge(r)
					}
				}
			}
		case xml.CharData:
			if inValue {
				valueText.Write(el)
			} else if inFormula {
				formulaTxt.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "v":
				inValue = false
			case "f":
				inFormula = false
			case "c":
				value := BuildValue(cellType, valueText.String(), formulaTxt.String(), strs)
				sh.InsertCell(sheet.Cell{
					Ref:      cellRef,
					Value:    value,
					StyleID:  cellStyle,
					HasStyle: hasStyle,
				})
				inCell = false
			}
		}
	}
	return nil
}

// BuildValue dispatches on the "t" cell-type token per spec.md §4.I's
// table. A non-empty formula text (if present) becomes a Formula value whose
// cached result is the raw <v> text kept as a String value. Exported so lazy's
// row-streaming and single-cell scans build values by the same rule
// without duplicating the dispatch table.
func BuildValue(cellType, valueText, formulaText string, strs Strings) cellvalue.Value {
	var v cellvalue.Value
	switch cellType {
	case "", "n":
		if valueText == "" {
			v = cellvalue.Empty()
		} else if n, err := strconv.ParseFloat(valueText, 64); err == nil {
			v = cellvalue.Number(n)
		} else {
			v = cellvalue.String(valueText)
		}
	case "s":
		idx, err := strconv.Atoi(valueText)
		if err != nil || idx < 0 {
			v = cellvalue.Empty()
			break
		}
		if s, ok := strs.Get(idx); ok {
			v = cellvalue.String(s)
		} else {
			v = cellvalue.Empty()
		}
	case "b":
		b := valueText == "1" || strings.EqualFold(valueText, "true")
		v = cellvalue.Boolean(b)
	case "e":
		if kind, ok := cellvalue.ParseErrorKind(valueText); ok {
			v = cellvalue.Error(kind)
		} else {
			v = cellvalue.Empty()
		}
	case "str", "inlineStr":
		v = cellvalue.String(valueText)
	default:
		v = cellvalue.Empty()
	}

	if formulaText == "" {
		return v
	}
	var cached *cellvalue.Value
	if valueText != "" {
		c := cellvalue.String(valueText)
		cached = &c
	}
	return cellvalue.Formula(formulaText, cached)
}

func parseRowElement(el xml.StartElement, sh *sheet.Sheet) error {
	rAttr, ok := xmlutil.Attr(el, "r")
	if !ok {
		return nil
	}
	row, err := strconv.Atoi(rAttr)
	if err != nil {
		return nil
	}
	var props sheet.RowProps
	if ht, ok := xmlutil.Attr(el, "ht"); ok {
		if h, err := strconv.ParseFloat(ht, 64); err == nil {
			props.Height = h
		}
	}
	if cust, ok := xmlutil.Attr(el, "customHeight"); ok {
		props.CustomHeight = cust == "1" || strings.EqualFold(cust, "true")
	}
	if hidden, ok := xmlutil.Attr(el, "hidden"); ok {
		props.Hidden = hidden == "1" || strings.EqualFold(hidden, "true")
	}
	if ol, ok := xmlutil.Attr(el, "outlineLevel"); ok {
		if lvl, err := strconv.Atoi(ol); err == nil {
			props.OutlineLevel = lvl
		}
	}
	sh.SetRowProps(row, props)
	return nil
}

func parseColElement(el xml.StartElement, sh *sheet.Sheet) error {
	minAttr, ok1 := xmlutil.Attr(el, "min")
	maxAttr, ok2 := xmlutil.Attr(el, "max")
	if !ok1 || !ok2 {
		return nil
	}
	minCol, err := strconv.Atoi(minAttr)
	if err != nil {
		return nil
	}
	maxCol, err := strconv.Atoi(maxAttr)
	if err != nil {
		return nil
	}

	var props sheet.ColProps
	if w, ok := xmlutil.Attr(el, "width"); ok {
		if width, err := strconv.ParseFloat(w, 64); err == nil {
			props.Width = width
		}
	}
	if cust, ok := xmlutil.Attr(el, "customWidth"); ok {
		props.CustomWidth = cust == "1" || strings.EqualFold(cust, "true")
	}
	if hidden, ok := xmlutil.Attr(el, "hidden"); ok {
		props.Hidden = hidden == "1" || strings.EqualFold(hidden, "true")
	}
	if ol, ok := xmlutil.Attr(el, "outlineLevel"); ok {
		if lvl, err := strconv.Atoi(ol); err == nil {
			props.OutlineLevel = lvl
		}
	}
	for c := minCol; c <= maxCol; c++ {
		sh.SetColProps(c, props)
	}
	return nil
}
