package workbook

import (
	"encoding/xml"
	"strings"
)

// xmlWorkbook mirrors the subset of xl/workbook.xml's <workbook> root
// element this module parses (spec.md §4.H).
type xmlWorkbook struct {
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets struct {
		Sheet []xmlSheet `xml:"sheet"`
	} `xml:"sheets"`
	DefinedNames struct {
		DefinedName []xmlDefinedName `xml:"definedName"`
	} `xml:"definedNames"`
}

// xmlSheet mirrors one <sheet> entry. RelID is resolved with a custom
// UnmarshalXML rather than a plain struct tag because the relationship-id
// attribute is namespace-prefixed (commonly "r:id") and must be matched by
// any attribute whose local name ends in "id" other than "sheetId" itself
// (spec.md §4.H, §6), which a declarative xml struct tag cannot express.
type xmlSheet struct {
	Name    string
	SheetID string
	State   string
	RelID   string
}

func (s *xmlSheet) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			s.Name = a.Value
		case "sheetId":
			s.SheetID = a.Value
		case "state":
			s.State = a.Value
		default:
			// The relationship-id attribute is namespace-prefixed
			// (commonly "r:id"); match any remaining attribute whose
			// local name ends in "id" rather than a fixed spelling
			// (spec.md §4.H, §6).
			if strings.HasSuffix(strings.ToLower(a.Name.Local), "id") {
				s.RelID = a.Value
			}
		}
	}
	return d.Skip()
}

// xmlDefinedName mirrors a <definedName> element: name, optional
// localSheetId and comment, hidden flag, and the reference text content.
type xmlDefinedName struct {
	Name         string `xml:"name,attr"`
	LocalSheetID string `xml:"localSheetId,attr"`
	Comment      string `xml:"comment,attr"`
	Hidden       string `xml:"hidden,attr"`
	Text         string `xml:",chardata"`
}

// xmlCoreProps mirrors the Dublin-Core / core-properties elements of
// docProps/core.xml this module harvests.
type xmlCoreProps struct {
	Title          string `xml:"title"`
	Subject        string `xml:"subject"`
	Creator        string `xml:"creator"`
	Keywords       string `xml:"keywords"`
	Description    string `xml:"description"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Category       string `xml:"category"`
	ContentStatus  string `xml:"contentStatus"`
}
