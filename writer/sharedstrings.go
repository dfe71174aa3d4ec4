package writer

import (
	"bytes"

	"github.com/adnsv/srw/xml"

	"github.com/TsubasaBE/go-xlex/workbook"
)

// writeSharedStrings emits xl/sharedStrings.xml from wb.Strings, whatever
// table it ended up holding once every worksheet part had been written
// (parsed entries plus anything writeSheet added via Add during encoding).
func (w *Writer) writeSharedStrings(wb *workbook.Workbook) error {
	rid := w.nextWorkbookID()
	abspath := "/xl/sharedStrings.xml"

	w.partContentType[abspath] = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	w.workbookRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings",
		Target: "sharedStrings.xml",
	}

	all := wb.Strings.All()
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/spreadsheetml/2006/main")
	x.Attr("count", len(all))
	x.Attr("uniqueCount", len(all))

	for _, s := range all {
		x.OTag("+si")
		x.OTag("t").Write(s).CTag()
		x.CTag()
	}

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}
