// Package lazy implements the metadata-only open path spec.md §4.L
// describes: a Workbook that parses container validation, workbook
// relationships, <sheet> metadata, and the shared-strings index up front,
// but never touches a worksheet part until StreamRows or ReadCell asks for
// one by name.
package lazy

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-xlex/bytesource"
	"github.com/TsubasaBE/go-xlex/internal/container"
	"github.com/TsubasaBE/go-xlex/internal/rels"
	"github.com/TsubasaBE/go-xlex/internal/xmlutil"
	"github.com/TsubasaBE/go-xlex/lazystrings"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// sheetMeta is everything about a sheet this package learns without opening
// its worksheet part: name, id, visibility, and the zip path its content
// lives at.
type sheetMeta struct {
	Info    sheet.Info
	ZipPath string
}

// Workbook is the metadata-only view of an OOXML package: sheet names and
// visibility plus a shared-strings index, backed by a retained byte buffer
// and *zip.Reader that StreamRows and ReadCell reopen worksheet parts
// against on demand. It is immutable from the caller's perspective; the
// only interior mutation is the shared-strings LRU, which is already
// mutex-guarded by lazystrings.Index, making Workbook safe to share
// read-only across goroutines without an additional wrapper lock
// (spec.md §5).
type Workbook struct {
	src        *bytesource.Source
	zr         *zip.Reader
	sheets     []sheetMeta
	sheetIndex map[string]int
	Strings    *lazystrings.Index
	SourcePath string
	Date1904   bool
}

// Open opens name (which must have a .xlsx extension) and parses only its
// metadata, per spec.md §4.L.
func Open(name string, threshold int64) (*Workbook, error) {
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return nil, xlexerr.New(xlexerr.InvalidExtension, "lazy: %q is not a .xlsx file", name)
	}
	src, err := bytesource.Open(name, threshold)
	if err != nil {
		return nil, err
	}
	wb, err := openSource(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	wb.SourcePath = name
	return wb, nil
}

// OpenReader parses workbook metadata from an arbitrary io.ReaderAt; size
// must be its total byte length, matching workbook.OpenReader's shape.
func OpenReader(r io.ReaderAt, size int64) (*Workbook, error) {
	return openSource(&bytesourceView{ra: r, size: size})
}

// sourceLike is the subset of bytesource.Source's surface openSource needs,
// satisfied either by a real *bytesource.Source (the Open path, which owns
// a closer worth releasing on error) or the lightweight bytesourceView
// wrapper below (the OpenReader path, which owns nothing).
type sourceLike interface {
	ReaderAt() io.ReaderAt
	Len() int64
}

// bytesourceView adapts a caller-owned io.ReaderAt to sourceLike without
// taking ownership of it, for OpenReader callers that manage their own
// reader lifetime.
type bytesourceView struct {
	ra   io.ReaderAt
	size int64
}

func (v *bytesourceView) ReaderAt() io.ReaderAt { return v.ra }
func (v *bytesourceView) Len() int64            { return v.size }

func openSource(src sourceLike) (*Workbook, error) {
	zr, err := container.Open(src.ReaderAt(), src.Len())
	if err != nil {
		return nil, err
	}

	wb := &Workbook{
		zr:         zr,
		sheetIndex: make(map[string]int),
	}
	if s, ok := src.(*bytesource.Source); ok {
		wb.src = s
	}

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
	if err := parseWorkbookSheets(wbData, relMap, wb); err != nil {
		return nil, err
	}
	if len(wb.sheets) == 0 {
		return nil, xlexerr.New(xlexerr.ParseError, "lazy: xl/workbook.xml defines zero sheets")
	}

	if ssData, err := container.ReadPart(zr, "xl/sharedStrings.xml"); err == nil {
		if idx, err := lazystrings.New(ssData, 0); err == nil {
			wb.Strings = idx
		}
	}
	if wb.Strings == nil {
		wb.Strings = lazystrings.NewEmpty()
	}

	return wb, nil
}

// Close releases the underlying byte source, if Open established one that
// owns a file descriptor or memory map. A Workbook built via OpenReader over
// a caller-owned reader has nothing to release.
func (wb *Workbook) Close() error {
	if wb.src != nil {
		return wb.src.Close()
	}
	return nil
}

// SheetNames returns every sheet's display name in workbook order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, sm := range wb.sheets {
		names[i] = sm.Info.Name
	}
	return names
}

// SheetInfo returns the metadata for the sheet named name and true, or the
// zero value and false if no such sheet exists.
func (wb *Workbook) SheetInfo(name string) (sheet.Info, bool) {
	i, ok := wb.sheetIndex[name]
	if !ok {
		return sheet.Info{}, false
	}
	return wb.sheets[i].Info, true
}

func (wb *Workbook) lookupSheet(name string) (sheetMeta, error) {
	i, ok := wb.sheetIndex[name]
	if !ok {
		return sheetMeta{}, xlexerr.New(xlexerr.SheetNotFound, "lazy: sheet %q not found", name)
	}
	return wb.sheets[i], nil
}

// parseWorkbookSheets walks xl/workbook.xml's <sheets> block (and its
// sibling <workbookPr>) with a streaming token scan rather than
// xml.Unmarshal, applying the same relationship-id matching rule as
// workbook's xmlSheet.UnmarshalXML (spec.md §4.H, §6): any attribute whose local name
// ends in "id" other than sheetId itself.
func parseWorkbookSheets(data []byte, relMap map[string]string, wb *Workbook) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	i := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return xlexerr.Wrap(xlexerr.ParseError, err, "lazy: xl/workbook.xml")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "workbookPr" {
			if d, ok := xmlutil.Attr(start, "date1904"); ok {
				wb.Date1904 = d == "1" || strings.EqualFold(d, "true")
			}
			continue
		}
		if start.Name.Local != "sheet" {
			continue
		}

		name, _ := xmlutil.Attr(start, "name")
		sheetIDStr, _ := xmlutil.Attr(start, "sheetId")
		state, _ := xmlutil.Attr(start, "state")

		// The relationship-id attribute is namespace-prefixed (commonly
		// "r:id"); match any attribute whose local name ends in "id"
		// other than sheetId itself (spec.md §4.H, §6).
		var relID string
		for _, a := range start.Attr {
			if a.Name.Local == "name" || a.Name.Local == "sheetId" || a.Name.Local == "state" {
				continue
			}
			if strings.HasSuffix(strings.ToLower(a.Name.Local), "id") {
				relID = a.Value
			}
		}
		sheetID, _ := strconv.Atoi(sheetIDStr)

		target := relMap[relID]
		if target == "" {
			target = "worksheets/sheet" + strconv.Itoa(i+1) + ".xml"
		}

		wb.sheets = append(wb.sheets, sheetMeta{
			Info: sheet.Info{
				Name:       name,
				SheetID:    sheetID,
				RelID:      relID,
				Visibility: sheet.ParseVisibility(state),
				Index:      i,
			},
			ZipPath: rels.ResolveZipPath(target),
		})
		wb.sheetIndex[name] = i
		i++
	}
	return nil
}
