package lazy

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/TsubasaBE/go-xlex/coord"
	"github.com/TsubasaBE/go-xlex/internal/container"
	"github.com/TsubasaBE/go-xlex/internal/xmlutil"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/sheetxml"
)

// Row is one worksheet row as streamed by StreamRows: its row number and
// the cells present on it, in ascending column order (the order their <c>
// elements appear in the part, which sheetxml.Parse and the writer both
// already treat as column-ascending).
type Row struct {
	Number int
	Cells  []sheet.Cell
}

// cellScan accumulates the state of the <c> element currently being
// decoded, shared by StreamRows and ReadCell's identical token-by-token
// walk over a worksheet part.
type cellScan struct {
	ref        coord.Ref
	cellType   string
	styleID    int
	hasStyle   bool
	inValue    bool
	inFormula  bool
	valueText  bytes.Buffer
	formulaTxt bytes.Buffer
}

func (cs *cellScan) reset() {
	*cs = cellScan{}
}

func (cs *cellScan) startCell(el xml.StartElement) {
	cs.reset()
	if r, ok := xmlutil.Attr(el, "r"); ok {
		if ref, err := coord.ParseRef(r); err == nil {
			cs.ref = ref
		}
	}
	if t, ok := xmlutil.Attr(el, "t"); ok {
		cs.cellType = t
	}
	if s, ok := xmlutil.Attr(el, "s"); ok {
		if id, err := strconv.Atoi(s); err == nil {
			cs.styleID = id
			cs.hasStyle = true
		}
	}
}

func (cs *cellScan) build(strs sheetxml.Strings) sheet.Cell {
	return sheet.Cell{
		Ref:      cs.ref,
		Value:    sheetxml.BuildValue(cs.cellType, cs.valueText.String(), cs.formulaTxt.String(), strs),
		StyleID:  cs.styleID,
		HasStyle: cs.hasStyle,
	}
}

// openSheetPart locates and opens the worksheet part for sheetName, scanned
// fresh each call (spec.md §4.L: StreamRows and ReadCell each "re-open" the
// part rather than share a materialised parse).
func (wb *Workbook) openSheetPart(sheetName string) (io.ReadCloser, error) {
	meta, err := wb.lookupSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f := container.Find(wb.zr, meta.ZipPath)
	if f == nil {
		return nil, nil
	}
	return f.Open()
}

// StreamRows returns a range-over-func iterator yielding each row of
// sheetName's worksheet part in ascending row order as the part is scanned
// once, top to bottom. Every <row> element is surfaced, including one with
// no <c> children, which is yielded with no cells; row-property attributes
// such as height are not carried in Row. Empty <c> elements present in the XML surface as Empty-valued cells at
// their reference.
func (wb *Workbook) StreamRows(sheetName string) (func(yield func(Row) bool), error) {
	if _, err := wb.lookupSheet(sheetName); err != nil {
		return nil, err
	}
	return func(yield func(Row) bool) {
		rc, err := wb.openSheetPart(sheetName)
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()

		dec := xml.NewDecoder(rc)
		var (
			cs      cellScan
			inCell  bool
			row     int
			haveRow bool
			cells   []sheet.Cell
		)

		flush := func() bool {
			if !haveRow {
				return true
			}
			ok := yield(Row{Number: row, Cells: cells})
			cells = nil
			return ok
		}

		for {
			tok, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			switch el := tok.(type) {
			case xml.StartElement:
				switch el.Name.Local {
				case "row":
					if !flush() {
						return
					}
					haveRow = true
					row = 0
					if r, ok := xmlutil.Attr(el, "r"); ok {
						if n, err := strconv.Atoi(r); err == nil {
							row = n
						}
					}
				case "c":
					inCell = true
					cs.startCell(el)
				case "v":
					if inCell {
						cs.inValue = true
					}
				case "f":
					if inCell {
						cs.inFormula = true
					}
				}
			case xml.CharData:
				if cs.inValue {
					cs.valueText.Write(el)
				} else if cs.inFormula {
					cs.formulaTxt.Write(el)
				}
			case xml.EndElement:
				switch el.Name.Local {
				case "v":
					cs.inValue = false
				case "f":
					cs.inFormula = false
				case "c":
					cells = append(cells, cs.build(wb.Strings))
					inCell = false
				}
			}
		}
		flush()
	}, nil
}

// ReadCell scans sheetName's worksheet part linearly for ref, stopping as
// soon as a </row> closes a row strictly past ref.Row without a match — the
// early-stop optimisation spec.md §4.L requires the implementation to
// preserve, so a lookup near the top of a large sheet never reads the whole
// part.
func (wb *Workbook) ReadCell(sheetName string, ref coord.Ref) (sheet.Cell, bool, error) {
	rc, err := wb.openSheetPart(sheetName)
	if err != nil {
		return sheet.Cell{}, false, err
	}
	if rc == nil {
		return sheet.Cell{}, false, nil
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		cs     cellScan
		inCell bool
		curRow int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "row":
				curRow = 0
				if r, ok := xmlutil.Attr(el, "r"); ok {
					if n, err := strconv.Atoi(r); err == nil {
						curRow = n
					}
				}
			case "c":
				inCell = true
				cs.startCell(el)
			case "v":
				if inCell {
					cs.inValue = true
				}
			case "f":
				if inCell {
					cs.inFormula = true
				}
			}
		case xml.CharData:
			if cs.inValue {
				cs.valueText.Write(el)
			} else if cs.inFormula {
				cs.formulaTxt.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "v":
				cs.inValue = false
			case "f":
				cs.inFormula = false
			case "c":
				if cs.ref == ref {
					return cs.build(wb.Strings), true, nil
				}
				inCell = false
			case "row":
				if curRow > ref.Row {
					return sheet.Cell{}, false, nil
				}
			}
		}
	}
	return sheet.Cell{}, false, nil
}
