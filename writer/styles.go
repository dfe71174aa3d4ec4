package writer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/adnsv/srw/xml"

	"github.com/TsubasaBE/go-xlex/style"
	"github.com/TsubasaBE/go-xlex/workbook"
)

// writeStyles emits xl/styles.xml in full from wb.Styles: every font, fill,
// border, and cellXfs entry in the registry's own insertion order (spec.md
// §5: "style/font/fill/border tables in insertion order"), and the custom
// number formats in ascending numFmtId order.
func (w *Writer) writeStyles(wb *workbook.Workbook) error {
	rid := w.nextWorkbookID()
	abspath := "/xl/styles.xml"

	w.partContentType[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	w.workbookRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles",
		Target: "styles.xml",
	}

	reg := wb.Styles
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("styleSheet")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")

	if customFmts := reg.CustomNumFmts(); len(customFmts) > 0 {
		x.OTag("+numFmts").Attr("count", len(customFmts))
		enumerate(customFmts, func(id int, code string) error {
			x.OTag("+numFmt").Attr("numFmtId", id).Attr("formatCode", code).CTag()
			return nil
		})
		x.CTag()
	}

	fonts := reg.Fonts()
	x.OTag("+fonts").Attr("count", len(fonts))
	for _, f := range fonts {
		writeFont(x, f)
	}
	x.CTag()

	fills := reg.Fills()
	x.OTag("+fills").Attr("count", len(fills))
	for _, f := range fills {
		writeFill(x, f)
	}
	x.CTag()

	borders := reg.Borders()
	x.OTag("+borders").Attr("count", len(borders))
	for _, b := range borders {
		writeBorder(x, b)
	}
	x.CTag()

	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
	x.CTag()

	x.OTag("+cellXfs").Attr("count", reg.Len())
	for i := 0; i < reg.Len(); i++ {
		s, _ := reg.Style(i)
		x.OTag("+xf")
		x.Attr("numFmtId", s.NumFmtID)
		x.Attr("fontId", s.FontID)
		x.Attr("fillId", s.FillID)
		x.Attr("borderId", s.BorderID)
		x.Attr("xfId", 0)
		x.CTag()
	}
	x.CTag()

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func writeFont(x *xml.Writer, f style.Font) {
	x.OTag("+font")
	if f.Bold {
		x.OTag("b").CTag()
	}
	if f.Italic {
		x.OTag("i").CTag()
	}
	if f.Strike {
		x.OTag("strike").CTag()
	}
	if f.Underline != "" {
		if f.Underline == "single" {
			x.OTag("u").CTag()
		} else {
			x.OTag("u").Attr("val", f.Underline).CTag()
		}
	}
	if f.Size > 0 {
		x.OTag("sz").Attr("val", formatFloat(f.Size)).CTag()
	}
	if f.Color != "" {
		writeColorTag(x, "color", f.Color)
	}
	if f.Name != "" {
		x.OTag("name").Attr("val", f.Name).CTag()
	}
	x.CTag()
}

func writeFill(x *xml.Writer, f style.Fill) {
	x.OTag("+fill")
	x.OTag("+patternFill").Attr("patternType", string(f.Pattern))
	if f.FgColor != "" {
		writeColorTag(x, "fgColor", f.FgColor)
	}
	if f.BgColor != "" {
		writeColorTag(x, "bgColor", f.BgColor)
	}
	x.CTag() // patternFill
	x.CTag() // fill
}

func writeBorder(x *xml.Writer, b style.Border) {
	x.OTag("+border")
	if b.DiagonalUp {
		x.Attr("diagonalUp", 1)
	}
	if b.DiagonalDown {
		x.Attr("diagonalDown", 1)
	}
	writeBorderSide(x, "left", b.Left)
	writeBorderSide(x, "right", b.Right)
	writeBorderSide(x, "top", b.Top)
	writeBorderSide(x, "bottom", b.Bottom)
	writeBorderSide(x, "diagonal", b.Diagonal)
	x.CTag()
}

func writeBorderSide(x *xml.Writer, tag string, side style.BorderSide) {
	if side.Style == "" && side.Color == "" {
		x.OTag("+" + tag).CTag()
		return
	}
	x.OTag("+" + tag)
	if side.Style != "" {
		x.Attr("style", side.Style)
	}
	if side.Color != "" {
		writeColorTag(x, "color", side.Color)
	}
	x.CTag()
}

// writeColorTag decodes the "rgb:"/"theme:"/"indexed:" prefix colorOf
// (style/parse.go) applies on read, re-emitting the matching OOXML
// attribute on write.
func writeColorTag(x *xml.Writer, tag, raw string) {
	x.OTag("+" + tag)
	switch {
	case strings.HasPrefix(raw, "rgb:"):
		x.Attr("rgb", strings.TrimPrefix(raw, "rgb:"))
	case strings.HasPrefix(raw, "theme:"):
		x.Attr("theme", strings.TrimPrefix(raw, "theme:"))
	case strings.HasPrefix(raw, "indexed:"):
		x.Attr("indexed", strings.TrimPrefix(raw, "indexed:"))
	}
	x.CTag()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
