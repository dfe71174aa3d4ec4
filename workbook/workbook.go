// Package workbook orchestrates the open sequence spec.md §4.H describes:
// container validation, relationship resolution, workbook metadata and
// defined-name parsing, per-sheet dispatch, and document-property harvest.
// It also holds the fully materialised Workbook model spec.md §3 names.
package workbook

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-xlex/bytesource"
	"github.com/TsubasaBE/go-xlex/internal/container"
	"github.com/TsubasaBE/go-xlex/internal/rels"
	"github.com/TsubasaBE/go-xlex/sharedstrings"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/sheetxml"
	"github.com/TsubasaBE/go-xlex/style"
	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// DocProps mirrors the core-properties/Dublin-Core fields docProps/core.xml
// may carry (spec.md §4.H).
type DocProps struct {
	Title          string
	Subject        string
	Creator        string
	Keywords       string
	Description    string
	LastModifiedBy string
	Category       string
	ContentStatus  string
}

// DefinedName is a workbook-level or sheet-scoped named reference
// (spec.md §3).
type DefinedName struct {
	Name         string
	RefersTo     string
	LocalSheetID *int
	Comment      string
	Hidden       bool
}

// Workbook is the fully materialised in-memory model: an ordered sheet
// list, a name→index lookup, a style registry, a shared-string table,
// defined names, document properties, and the source path (if any).
type Workbook struct {
	sheets      []*sheet.Sheet
	sheetIndex  map[string]int
	Styles      *style.Registry
	Strings     *sharedstrings.Table
	Names       []DefinedName
	Props       DocProps
	SourcePath  string
	Date1904    bool
	nextSheetID int
}

// New returns a brand-new workbook with a single sheet named "Sheet1", the
// shape every freshly constructed workbook needs to satisfy the "at least
// one sheet" invariant (spec.md §3) from the moment it is created.
func New() *Workbook {
	wb := &Workbook{
		sheetIndex:  make(map[string]int),
		Styles:      style.NewRegistry(),
		Strings:     sharedstrings.NewEmpty(),
		nextSheetID: 1,
	}
	wb.AddSheet("Sheet1")
	return wb
}

// Open opens name (which must have a .xlsx extension) and parses it fully.
func Open(name string, threshold int64) (*Workbook, error) {
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return nil, xlexerr.New(xlexerr.InvalidExtension, "workbook: %q is not a .xlsx file", name)
	}
	src, err := bytesource.Open(name, threshold)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	wb, err := OpenReader(src.ReaderAt(), src.Len())
	if err != nil {
		return nil, err
	}
	wb.SourcePath = name
	return wb, nil
}

// OpenReader parses a workbook from an arbitrary io.ReaderAt; size must be
// its total byte length, mirroring the teacher's own OpenReader(r, size)
// overload shape.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	zr, err := container.Open(r, size)
	if err != nil {
		return nil, err
	}
	return parse(zr)
}

func parse(zr *zip.Reader) (*Workbook, error) {
	wb := &Workbook{sheetIndex: make(map[string]int)}

	relsData, err := container.ReadPart(zr, "xl/_rels/workbook.xml.rels")
	relMap := map[string]string{}
	if err == nil {
		if m, err := rels.ParseRelsXML(relsData); err == nil {
			relMap = m
		}
	}

	wbData, err := container.ReadPart(zr, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	var doc xmlWorkbook
	if err := xml.Unmarshal(wbData, &doc); err != nil {
		return nil, xlexerr.Wrap(xlexerr.ParseError, err, "workbook: xl/workbook.xml")
	}
	if len(doc.Sheets.Sheet) == 0 {
		return nil, xlexerr.New(xlexerr.ParseError, "workbook: xl/workbook.xml defines zero sheets")
	}
	wb.Date1904 = doc.WorkbookPr.Date1904 == "1" || strings.EqualFold(doc.WorkbookPr.Date1904, "true")

	if stylesData, err := container.ReadPart(zr, "xl/styles.xml"); err == nil {
		if reg, err := style.Parse(stylesData); err == nil {
			wb.Styles = reg
		}
	}
	if wb.Styles == nil {
		wb.Styles = style.NewRegistry()
	}

	if ssData, err := container.ReadPart(zr, "xl/sharedStrings.xml"); err == nil {
		if tbl, err := sharedstrings.New(ssData); err == nil {
			wb.Strings = tbl
		}
	}
	if wb.Strings == nil {
		wb.Strings = sharedstrings.NewEmpty()
	}

	for i, xs := range doc.Sheets.Sheet {
		sheetID, _ := strconv.Atoi(xs.SheetID)
		target := relMap[xs.RelID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		zipPath := rels.ResolveZipPath(target)

		info := sheet.Info{
			Name:       xs.Name,
			SheetID:    sheetID,
			RelID:      xs.RelID,
			Visibility: sheet.ParseVisibility(xs.State),
			Index:      i,
		}
		sh := sheet.New(info)

		if partData, err := container.ReadPart(zr, zipPath); err == nil {
			_ = sheetxml.Parse(partData, sh, wb.Strings)
		}

		wb.appendSheet(sh)
		if sheetID >= wb.nextSheetID {
			wb.nextSheetID = sheetID + 1
		}
	}

	for _, xn := range doc.DefinedNames.DefinedName {
		var localID *int
		if xn.LocalSheetID != "" {
			if id, err := strconv.Atoi(xn.LocalSheetID); err == nil {
				localID = &id
			}
		}
		wb.Names = append(wb.Names, DefinedName{
			Name:         xn.Name,
			RefersTo:     xn.Text,
			LocalSheetID: localID,
			Comment:      xn.Comment,
			Hidden:       xn.Hidden == "1" || strings.EqualFold(xn.Hidden, "true"),
		})
	}

	if coreData, err := container.ReadPart(zr, "docProps/core.xml"); err == nil {
		wb.Props = parseCoreProps(coreData)
	}

	return wb, nil
}

func parseCoreProps(data []byte) DocProps {
	var doc xmlCoreProps
	if err := xml.Unmarshal(data, &doc); err != nil {
		return DocProps{}
	}
	return DocProps{
		Title:          doc.Title,
		Subject:        doc.Subject,
		Creator:        doc.Creator,
		Keywords:       doc.Keywords,
		Description:    doc.Description,
		LastModifiedBy: doc.LastModifiedBy,
		Category:       doc.Category,
		ContentStatus:  doc.ContentStatus,
	}
}

// Sheets returns every sheet in workbook order.
func (wb *Workbook) Sheets() []*sheet.Sheet { return wb.sheets }

// SheetNames returns every sheet's display name in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, sh := range wb.sheets {
		names[i] = sh.Info.Name
	}
	return names
}

// Sheet returns the sheet named name (case-sensitive, per the uniqueness
// invariant in spec.md §3) and true, or nil and false.
func (wb *Workbook) Sheet(name string) (*sheet.Sheet, bool) {
	i, ok := wb.sheetIndex[name]
	if !ok {
		return nil, false
	}
	return wb.sheets[i], true
}

// SheetAt returns the sheet at the given 0-based index and true, or nil and
// false if idx is out of range.
func (wb *Workbook) SheetAt(idx int) (*sheet.Sheet, bool) {
	if idx < 0 || idx >= len(wb.sheets) {
		return nil, false
	}
	return wb.sheets[idx], true
}

func (wb *Workbook) appendSheet(sh *sheet.Sheet) {
	sh.Info.Index = len(wb.sheets)
	wb.sheets = append(wb.sheets, sh)
	wb.sheetIndex[sh.Info.Name] = sh.Info.Index
}

// AddSheet appends a new empty sheet named name and returns it.
func (wb *Workbook) AddSheet(name string) (*sheet.Sheet, error) {
	if _, exists := wb.sheetIndex[name]; exists {
		return nil, xlexerr.New(xlexerr.SheetExists, "workbook: sheet %q already exists", name)
	}
	sh := sheet.New(sheet.Info{
		Name:       name,
		SheetID:    wb.nextSheetID,
		Visibility: sheet.Visible,
	})
	wb.nextSheetID++
	wb.appendSheet(sh)
	return sh, nil
}

// RemoveSheet removes the sheet named name. Removing the last remaining
// sheet is rejected (spec.md §3, §6: E034).
func (wb *Workbook) RemoveSheet(name string) error {
	i, ok := wb.sheetIndex[name]
	if !ok {
		return xlexerr.New(xlexerr.SheetNotFound, "workbook: sheet %q not found", name)
	}
	if len(wb.sheets) <= 1 {
		return xlexerr.New(xlexerr.CannotDeleteLast, "workbook: cannot remove the last sheet %q", name)
	}
	wb.sheets = append(wb.sheets[:i], wb.sheets[i+1:]...)
	delete(wb.sheetIndex, name)
	for j := i; j < len(wb.sheets); j++ {
		wb.sheets[j].Info.Index = j
		wb.sheetIndex[wb.sheets[j].Info.Name] = j
	}
	return nil
}

// AddDefinedName appends n to the workbook's defined names, rejecting a
// name that collides case-insensitively with an existing one at the same
// scope (workbook-level, or the same localSheetId). original_source
// enforces this uniqueness rule only when writing a workbook out, not at
// parse time — a file containing a pre-existing collision still opens —
// so this check lives here, on the mutation path, rather than in Open.
func (wb *Workbook) AddDefinedName(n DefinedName) error {
	for _, existing := range wb.Names {
		if !strings.EqualFold(existing.Name, n.Name) {
			continue
		}
		sameScope := (existing.LocalSheetID == nil && n.LocalSheetID == nil) ||
			(existing.LocalSheetID != nil && n.LocalSheetID != nil && *existing.LocalSheetID == *n.LocalSheetID)
		if sameScope {
			return xlexerr.New(xlexerr.InvalidOperation, "workbook: defined name %q already exists in this scope", n.Name)
		}
	}
	wb.Names = append(wb.Names, n)
	return nil
}

// CopySheet deep-copies the sheet named src under a new name newName,
// duplicating its cells, row/column side tables, and merged ranges. The
// copy is appended at the end of the workbook.
func (wb *Workbook) CopySheet(src, newName string) (*sheet.Sheet, error) {
	source, ok := wb.Sheet(src)
	if !ok {
		return nil, xlexerr.New(xlexerr.SheetNotFound, "workbook: sheet %q not found", src)
	}
	if _, exists := wb.sheetIndex[newName]; exists {
		return nil, xlexerr.New(xlexerr.SheetExists, "workbook: sheet %q already exists", newName)
	}

	dst := sheet.New(sheet.Info{
		Name:       newName,
		SheetID:    wb.nextSheetID,
		Visibility: source.Info.Visibility,
	})
	wb.nextSheetID++

	for c := range source.Cells() {
		dst.InsertCell(c)
	}
	for row, p := range source.RowPropsMap() {
		dst.SetRowProps(row, p)
	}
	for col, p := range source.ColPropsMap() {
		dst.SetColProps(col, p)
	}
	for _, m := range source.Merges() {
		dst.AddMerge(m)
	}

	wb.appendSheet(dst)
	return dst, nil
}
