package writer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adnsv/srw/xml"

	"github.com/TsubasaBE/go-xlex/workbook"
)

// relInfo is one relationship entry: its schema type URL and the path it
// resolves to, relative to the .rels file's own directory.
type relInfo struct {
	Type   string
	Target string
}

// Writer accumulates the relationship and content-type tables a workbook's
// parts need as it emits them, then flushes the package-level parts that
// depend on that accumulated state ([Content_Types].xml, the two .rels
// files) last.
type Writer struct {
	out Storage

	lastGlobalID   int
	lastWorkbookID int

	globalRels         map[string]relInfo
	workbookRels       map[string]relInfo
	defaultContentType map[string]string
	partContentType    map[string]string
}

// NewWriter returns a Writer that emits every part to out.
func NewWriter(out Storage) *Writer {
	w := &Writer{
		out:                out,
		globalRels:         map[string]relInfo{},
		workbookRels:       map[string]relInfo{},
		defaultContentType: map[string]string{"xml": "application/xml", "rels": "application/vnd.openxmlformats-package.relationships+xml"},
		partContentType:    map[string]string{},
	}
	return w
}

func (w *Writer) nextGlobalID() string {
	w.lastGlobalID++
	return fmt.Sprintf("rId%d", w.lastGlobalID)
}

func (w *Writer) nextWorkbookID() string {
	w.lastWorkbookID++
	return fmt.Sprintf("rId%d", w.lastWorkbookID)
}

// Write serialises wb in full: the workbook part and every worksheet part
// first (worksheet writing grows the shared-string table via wb.Strings.Add
// as string cells are encountered), then sharedStrings.xml if that table
// ended up non-empty, then styles.xml, docProps, and finally the
// relationship/content-type parts whose content depends on everything
// written before them.
func Write(wb *workbook.Workbook, out Storage) error {
	w := NewWriter(out)

	if err := w.writeWorkbookXML(wb); err != nil {
		return err
	}
	if wb.Strings.Len() > 0 {
		if err := w.writeSharedStrings(wb); err != nil {
			return err
		}
	}
	if err := w.writeStyles(wb); err != nil {
		return err
	}
	if err := w.writeCoreProperties(wb); err != nil {
		return err
	}
	if err := w.writeExtendedProperties(wb); err != nil {
		return err
	}
	if err := w.writeRels("xl/_rels/workbook.xml.rels", w.workbookRels); err != nil {
		return err
	}
	if err := w.writeRels("_rels/.rels", w.globalRels); err != nil {
		return err
	}
	return w.writeContentTypes()
}

func (w *Writer) writeContentTypes() error {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Types")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")
	enumerate(w.defaultContentType, func(ext, ctype string) error {
		x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
		return nil
	})
	enumerate(w.partContentType, func(part, ctype string) error {
		x.OTag("+Override").Attr("PartName", part).Attr("ContentType", ctype).CTag()
		return nil
	})
	x.CTag()

	return w.out.WriteBlob("[Content_Types].xml", bb.Bytes())
}

func (w *Writer) writeRels(path string, rels map[string]relInfo) error {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	enumerate(rels, func(rid string, info relInfo) error {
		x.OTag("+Relationship").Attr("Id", rid).Attr("Type", info.Type).Attr("Target", info.Target)
		x.CTag()
		return nil
	})
	x.CTag()

	return w.out.WriteBlob(path, bb.Bytes())
}

func (w *Writer) writeCoreProperties(wb *workbook.Workbook) error {
	rid := w.nextGlobalID()
	abspath := "/docProps/core.xml"

	w.partContentType[abspath] = "application/vnd.openxmlformats-package.core-properties+xml"
	w.globalRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties",
		Target: "docProps/core.xml",
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("cp:coreProperties")
	x.Attr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	x.Attr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	x.Attr("xmlns:dcterms", "http://purl.org/dc/terms/")
	x.Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	writeTextTag(x, "dc:title", wb.Props.Title)
	writeTextTag(x, "dc:subject", wb.Props.Subject)
	writeTextTag(x, "dc:creator", wb.Props.Creator)
	writeTextTag(x, "cp:keywords", wb.Props.Keywords)
	writeTextTag(x, "dc:description", wb.Props.Description)
	writeTextTag(x, "cp:lastModifiedBy", wb.Props.LastModifiedBy)
	writeTextTag(x, "cp:category", wb.Props.Category)
	writeTextTag(x, "cp:contentStatus", wb.Props.ContentStatus)

	x.OTag("+dcterms:created")
	x.Attr("xsi:type", "dcterms:W3CDTF")
	x.Write(time.Now().UTC().Format(time.RFC3339))
	x.CTag()

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}

func writeTextTag(x *xml.Writer, tag, value string) {
	if value == "" {
		return
	}
	x.OTag("+" + tag).Write(value).CTag()
}

func (w *Writer) writeExtendedProperties(wb *workbook.Workbook) error {
	rid := w.nextGlobalID()
	abspath := "/docProps/app.xml"

	w.partContentType[abspath] = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	w.globalRels[rid] = relInfo{
		Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties",
		Target: "docProps/app.xml",
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Properties")
	x.Attr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	x.Attr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	x.OTag("+HeadingPairs")
	x.OTag("+vt:vector").Attr("size", 2).Attr("baseType", "variant")
	x.OTag("+vt:variant")
	x.OTag("vt:lpstr").Write("Worksheets").CTag()
	x.CTag()
	x.OTag("+vt:variant")
	x.OTag("vt:i4").Write(len(wb.Sheets())).CTag()
	x.CTag()
	x.CTag() // vt:vector
	x.CTag() // HeadingPairs

	x.OTag("+TitlesOfParts")
	names := wb.SheetNames()
	x.OTag("+vt:vector").Attr("size", len(names)).Attr("baseType", "lpstr")
	for _, n := range names {
		x.OTag("vt:lpstr").Write(n).CTag()
	}
	x.CTag()
	x.CTag()

	x.CTag()

	return w.out.WriteBlob(abspath, bb.Bytes())
}
