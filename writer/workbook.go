package writer

import (
	"bytes"

	"github.com/adnsv/srw/xml"

	"github.com/TsubasaBE/go-xlex/workbook"
)

// writeWorkbookXML emits xl/workbook.xml and, for each sheet in workbook
// order, dispatches writeSheet to emit that sheet's worksheet part
// immediately, in a single pass over wb.Sheets rather than collecting sheet XML up front and writing it in a second loop.
func (w *Writer) writeWorkbookXML(wb *workbook.Workbook) error {
	rid := w.nextGlobalID()
	abspath := "/xl/workbook.xml"

	w.partContentType[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	w.globalRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument",
		Target: "xl/workbook.xml",
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("workbook")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")

	if wb.Date1904 {
		x.OTag("+workbookPr").Attr("date1904", 1).CTag()
	}

	x.OTag("+sheets")
	for _, sh := range wb.Sheets() {
		sheetID := sh.Info.SheetID
		if sheetID == 0 {
			sheetID = sh.Info.Index + 1
		}
		sheetRID := w.nextWorkbookID()

		x.OTag("+sheet")
		x.Attr("name", sh.Info.Name)
		x.Attr("sheetId", sheetID)
		if sh.Info.Visibility != 0 {
			x.Attr("state", sh.Info.Visibility.String())
		}
		x.Attr("r:id", sheetRID)
		x.CTag()

		if err := w.writeSheet(wb, sh, sheetRID); err != nil {
			return err
		}
	}
	x.CTag() // sheets

	if len(wb.Names) > 0 {
		x.OTag("+definedNames")
		for _, n := range wb.Names {
			x.OTag("+definedName").Attr("name", n.Name)
			if n.LocalSheetID != nil {
				x.Attr("localSheetId", *n.LocalSheetID)
			}
			if n.Comment != "" {
				x.Attr("comment", n.Comment)
			}
			if n.Hidden {
				x.Attr("hidden", 1)
			}
			x.Write(n.RefersTo)
			x.CTag()
		}
		x.CTag()
	}

	x.CTag() // workbook

	return w.out.WriteBlob(abspath, bb.Bytes())
}
