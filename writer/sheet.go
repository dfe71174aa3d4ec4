package writer

import (
	"bytes"
	"slices"
	"strconv"

	"github.com/adnsv/srw/xml"

	"github.com/TsubasaBE/go-xlex/cellvalue"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/workbook"
)

// writeSheet emits one xl/worksheets/sheetN.xml part: column dimension
// ranges, rows in ascending order with cells in ascending column order
// within each row (spec.md §4.K, §5), and merged ranges. String cells are
// encoded by shared-string index, adding to wb.Strings as new strings are
// encountered — this is how a from-scratch workbook.New() workbook, whose
// shared-string table starts empty, ends up with a populated
// sharedStrings.xml after writeWorkbookXML has run every sheet through
// here.
func (w *Writer) writeSheet(wb *workbook.Workbook, sh *sheet.Sheet, rid string) error {
	relpath := "worksheets/sheet" + strconv.Itoa(sh.Info.Index+1) + ".xml"
	abspath := "/xl/" + relpath

	w.partContentType[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	w.workbookRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet",
		Target: relpath,
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	writeCols(x, sh.ColPropsMap())

	cells := collectCells(sh)
	rows := collectRowNumbers(cells, sh.RowPropsMap())

	x.OTag("+sheetData")
	ci := 0
	for _, row := range rows {
		props, hasProps := sh.RowProps(row)
		x.OTag("+row").Attr("r", row)
		if hasProps {
			if props.CustomHeight {
				x.Attr("ht", formatFloat(props.Height)).Attr("customHeight", 1)
			}
			if props.Hidden {
				x.Attr("hidden", 1)
			}
			if props.OutlineLevel > 0 {
				x.Attr("outlineLevel", props.OutlineLevel)
			}
		}
		for ci < len(cells) && cells[ci].Ref.Row == row {
			writeCell(x, wb, cells[ci])
			ci++
		}
		x.CTag() // row
	}
	x.CTag() // sheetData

	if merges := sh.Merges(); len(merges) > 0 {
		x.OTag("+mergeCells").Attr("count", len(merges))
		for _, m := range merges {
			x.OTag("+mergeCell").Attr("ref", m.String()).CTag()
		}
		x.CTag()
	}

	x.CTag() // worksheet

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func collectCells(sh *sheet.Sheet) []sheet.Cell {
	cells := make([]sheet.Cell, 0, sh.Len())
	for c := range sh.Cells() {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b sheet.Cell) int {
		if a.Ref.Row != b.Ref.Row {
			return a.Ref.Row - b.Ref.Row
		}
		return a.Ref.Col - b.Ref.Col
	})
	return cells
}

func collectRowNumbers(cells []sheet.Cell, rowProps map[int]sheet.RowProps) []int {
	set := make(map[int]struct{}, len(cells)+len(rowProps))
	for _, c := range cells {
		set[c.Ref.Row] = struct{}{}
	}
	for r := range rowProps {
		set[r] = struct{}{}
	}
	rows := make([]int, 0, len(set))
	for r := range set {
		rows = append(rows, r)
	}
	slices.Sort(rows)
	return rows
}

// writeCols coalesces runs of consecutive columns sharing identical
// properties into a single <col min max .../> range, since sheetxml.Parse
// (§4.I) fans a parsed range back out into one ColProps entry per column.
func writeCols(x *xml.Writer, colProps map[int]sheet.ColProps) {
	if len(colProps) == 0 {
		return
	}
	cols := make([]int, 0, len(colProps))
	for c := range colProps {
		cols = append(cols, c)
	}
	slices.Sort(cols)

	x.OTag("+cols")
	i := 0
	for i < len(cols) {
		min := cols[i]
		p := colProps[min]
		j := i + 1
		for j < len(cols) && cols[j] == cols[j-1]+1 && colProps[cols[j]] == p {
			j++
		}
		max := cols[j-1]

		x.OTag("+col").Attr("min", min).Attr("max", max)
		if p.CustomWidth {
			x.Attr("width", formatFloat(p.Width)).Attr("customWidth", 1)
		}
		if p.Hidden {
			x.Attr("hidden", 1)
		}
		if p.OutlineLevel > 0 {
			x.Attr("outlineLevel", p.OutlineLevel)
		}
		x.CTag()

		i = j
	}
	x.CTag()
}

func writeCell(x *xml.Writer, wb *workbook.Workbook, c sheet.Cell) {
	x.OTag("+c").Attr("r", c.Ref.String())
	if c.HasStyle {
		x.Attr("s", c.StyleID)
	}

	v := c.Value
	if formula, cached, ok := v.AsFormula(); ok {
		x.OTag("f").Write(formula).CTag()
		if cached != nil && !cached.IsEmpty() {
			x.OTag("v").Write(cached.Display()).CTag()
		}
		x.CTag() // c
		return
	}

	switch v.Kind() {
	case cellvalue.KindEmpty:
		// no <v> child for an Empty cell
	case cellvalue.KindString:
		s, _ := v.AsString()
		idx := wb.Strings.Add(s)
		x.Attr("t", "s")
		x.OTag("v").Write(idx).CTag()
	case cellvalue.KindNumber, cellvalue.KindDateTime:
		n, _ := v.AsNumber()
		x.OTag("v").Write(formatFloat(n)).CTag()
	case cellvalue.KindBoolean:
		b, _ := v.AsBool()
		x.Attr("t", "b")
		if b {
			x.OTag("v").Write("1").CTag()
		} else {
			x.OTag("v").Write("0").CTag()
		}
	case cellvalue.KindError:
		kind, _ := v.AsError()
		x.Attr("t", "e")
		x.OTag("v").Write(kind.String()).CTag()
	}

	x.CTag() // c
}
