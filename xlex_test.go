package xlex_test

// End-to-end tests exercising the public facade against a full
// write-then-read round trip through an in-memory ZIP archive, plus the
// cross-package invariants the core boundary guarantees.

import (
	"bytes"
	"testing"

	"github.com/TsubasaBE/go-xlex"
	"github.com/TsubasaBE/go-xlex/cellvalue"
	"github.com/TsubasaBE/go-xlex/coord"
	"github.com/TsubasaBE/go-xlex/xlexerr"
)

func mustRef(t *testing.T, a1 string) coord.Ref {
	t.Helper()
	ref, err := coord.ParseRef(a1)
	if err != nil {
		t.Fatalf("ParseRef(%q) error = %v", a1, err)
	}
	return ref
}

// TestRoundTripSingleCell writes a workbook with one string cell, saves it,
// reopens it, and checks the value survives unchanged.
func TestRoundTripSingleCell(t *testing.T) {
	wb := xlex.NewWorkbook()
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(mustRef(t, "A1"), cellvalue.String("hello"))

	var buf bytes.Buffer
	if err := xlex.SaveTo(wb, &buf); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	got, err := xlex.OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	gotSheet, ok := got.Sheet("Sheet1")
	if !ok {
		t.Fatal("Sheet(\"Sheet1\") not found after round trip")
	}
	v := gotSheet.GetValue(mustRef(t, "A1"))
	s, ok := v.AsString()
	if !ok || s != "hello" {
		t.Fatalf("A1 = %v, want %q", v, "hello")
	}
}

// TestSharedStringDedup writes the same string into 1000 cells and checks
// the shared-string table dedups to a single entry.
func TestSharedStringDedup(t *testing.T) {
	wb := xlex.NewWorkbook()
	sh, _ := wb.Sheet("Sheet1")
	for row := 1; row <= 1000; row++ {
		sh.SetCell(coord.Ref{Col: 1, Row: row}, cellvalue.String("dup"))
		wb.Strings.Add("dup")
	}
	if got := wb.Strings.Len(); got != 1 {
		t.Fatalf("shared-string table length = %d, want 1", got)
	}

	var buf bytes.Buffer
	if err := xlex.SaveTo(wb, &buf); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	got, err := xlex.OpenReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	if n := got.Strings.Len(); n != 1 {
		t.Fatalf("round-tripped shared-string table length = %d, want 1", n)
	}
}

// TestLazyAndEagerAgreeOver10000Rows writes a 10,000-row sheet and checks
// xlex.OpenLazyReader's StreamRows agrees with the eager workbook cell-for-cell.
func TestLazyAndEagerAgreeOver10000Rows(t *testing.T) {
	const rows = 10_000
	wb := xlex.NewWorkbook()
	sh, _ := wb.Sheet("Sheet1")
	for row := 1; row <= rows; row++ {
		sh.SetCell(coord.Ref{Col: 1, Row: row}, cellvalue.Number(float64(row)))
	}

	var buf bytes.Buffer
	if err := xlex.SaveTo(wb, &buf); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	data := buf.Bytes()

	eager, err := xlex.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	eagerSheet, _ := eager.Sheet("Sheet1")

	lazyWB, err := xlex.OpenLazyReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenLazyReader() error = %v", err)
	}
	defer lazyWB.Close()

	stream, err := lazyWB.StreamRows("Sheet1")
	if err != nil {
		t.Fatalf("StreamRows() error = %v", err)
	}

	seen := 0
	for row := range stream {
		seen++
		for _, c := range row.Cells {
			want := eagerSheet.GetValue(c.Ref)
			wantNum, _ := want.AsNumber()
			gotNum, _ := c.Value.AsNumber()
			if wantNum != gotNum {
				t.Fatalf("row %d ref %s: lazy = %v, eager = %v", row.Number, c.Ref, c.Value, want)
			}
		}
	}
	if seen != rows {
		t.Fatalf("StreamRows yielded %d rows, want %d", seen, rows)
	}
}

// TestInsertRowsShiftsMerge inserts 2 rows at row 2 and checks a merge
// anchored at A2:B4 relocates to A4:B6.
func TestInsertRowsShiftsMerge(t *testing.T) {
	wb := xlex.NewWorkbook()
	sh, _ := wb.Sheet("Sheet1")
	sh.AddMerge(coord.Range{Start: mustRef(t, "A2"), End: mustRef(t, "B4")})

	sh.InsertRows(2, 2)

	merges := sh.Merges()
	if len(merges) != 1 {
		t.Fatalf("Merges() = %v, want 1 entry", merges)
	}
	want := coord.Range{Start: mustRef(t, "A4"), End: mustRef(t, "B6")}
	if merges[0] != want {
		t.Fatalf("merge after insert = %v, want %v", merges[0], want)
	}
}

// TestDeleteRowsClampsMerge deletes rows 2..3 (row=2, n=2) and checks a
// merge anchored at A2:B6 clamps down to A2:B4.
func TestDeleteRowsClampsMerge(t *testing.T) {
	wb := xlex.NewWorkbook()
	sh, _ := wb.Sheet("Sheet1")
	sh.AddMerge(coord.Range{Start: mustRef(t, "A2"), End: mustRef(t, "B6")})

	sh.DeleteRows(2, 2)

	merges := sh.Merges()
	if len(merges) != 1 {
		t.Fatalf("Merges() = %v, want 1 entry", merges)
	}
	want := coord.Range{Start: mustRef(t, "A2"), End: mustRef(t, "B4")}
	if merges[0] != want {
		t.Fatalf("merge after delete = %v, want %v", merges[0], want)
	}
}

// TestRangeEnumerationOrder checks A1:B2 enumerates row-major:
// A1, B1, A2, B2.
func TestRangeEnumerationOrder(t *testing.T) {
	rng, err := coord.ParseRange("A1:B2")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	want := []string{"A1", "B1", "A2", "B2"}
	var got []string
	for ref := range rng.Cells() {
		got = append(got, ref.String())
	}
	if len(got) != len(want) {
		t.Fatalf("Cells() yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Cells()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

// TestA1RoundTrip checks every reference parses back to the same string it
// was rendered from.
func TestA1RoundTrip(t *testing.T) {
	for _, s := range []string{"A1", "Z1", "AA1", "XFD1048576", "B2"} {
		ref, err := coord.ParseRef(s)
		if err != nil {
			t.Fatalf("ParseRef(%q) error = %v", s, err)
		}
		if got := ref.String(); got != s {
			t.Fatalf("ref.String() = %q, want %q", got, s)
		}
	}
}

// TestColumnRoundTrip checks every column number round-trips through its
// bijective base-26 letters.
func TestColumnRoundTrip(t *testing.T) {
	for _, col := range []int{1, 26, 27, 702, 703, coord.MaxCol} {
		letters := coord.ColToLetters(col)
		got, err := coord.ColFromLetters(letters)
		if err != nil {
			t.Fatalf("ColFromLetters(%q) error = %v", letters, err)
		}
		if got != col {
			t.Fatalf("ColFromLetters(ColToLetters(%d)) = %d", col, got)
		}
	}
}

// TestRangeCellCount checks a range's iteration count equals Width*Height.
func TestRangeCellCount(t *testing.T) {
	rng, err := coord.ParseRange("A1:C4")
	if err != nil {
		t.Fatalf("ParseRange() error = %v", err)
	}
	count := 0
	for range rng.Cells() {
		count++
	}
	if want := rng.Len(); count != want {
		t.Fatalf("Cells() yielded %d, want %d", count, want)
	}
}

// TestBoundaryReferenceRejections checks invalid-reference and
// invalid-range boundary cases are tagged E020/E021.
func TestBoundaryReferenceRejections(t *testing.T) {
	if _, err := coord.ParseRef("A0"); xlexerr.CodeOf(err) != xlexerr.InvalidReference {
		t.Fatalf("ParseRef(\"A0\") code = %v, want %v", xlexerr.CodeOf(err), xlexerr.InvalidReference)
	}
	if _, err := coord.ParseRef("XFE1"); xlexerr.CodeOf(err) != xlexerr.InvalidReference {
		t.Fatalf("ParseRef(\"XFE1\") code = %v, want %v", xlexerr.CodeOf(err), xlexerr.InvalidReference)
	}
	if _, err := coord.ParseRange("B2:A1"); xlexerr.CodeOf(err) != xlexerr.InvalidRange {
		t.Fatalf("ParseRange(reversed) code = %v, want %v", xlexerr.CodeOf(err), xlexerr.InvalidRange)
	}
}

// TestOpenRejectsNonXLSXExtension checks both Open and OpenLazy reject a
// non-.xlsx path with E004.
func TestOpenRejectsNonXLSXExtension(t *testing.T) {
	if _, err := xlex.Open("book.xls", 0); xlexerr.CodeOf(err) != xlexerr.InvalidExtension {
		t.Fatalf("Open() code = %v, want %v", xlexerr.CodeOf(err), xlexerr.InvalidExtension)
	}
	if _, err := xlex.OpenLazy("book.xls", 0); xlexerr.CodeOf(err) != xlexerr.InvalidExtension {
		t.Fatalf("OpenLazy() code = %v, want %v", xlexerr.CodeOf(err), xlexerr.InvalidExtension)
	}
}

// TestOpenReaderRejectsTruncatedArchive checks that opening only the first
// 10 bytes of a saved workbook returns an error instead of a workbook.
func TestOpenReaderRejectsTruncatedArchive(t *testing.T) {
	var buf bytes.Buffer
	if err := xlex.SaveTo(xlex.NewWorkbook(), &buf); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	// Keep only the first 10 bytes, inside the first local file header, so
	// the ZIP framing itself cannot be read and no part is ever reached.
	truncated := buf.Bytes()[:10]
	if _, err := xlex.OpenReader(bytes.NewReader(truncated), int64(len(truncated))); err == nil {
		t.Fatal("OpenReader() on a truncated archive should error")
	}
}

// TestCannotDeleteLastSheet checks the last remaining sheet cannot be
// removed.
func TestCannotDeleteLastSheet(t *testing.T) {
	wb := xlex.NewWorkbook()
	err := wb.RemoveSheet("Sheet1")
	if xlexerr.CodeOf(err) != xlexerr.CannotDeleteLast {
		t.Fatalf("RemoveSheet() code = %v, want %v", xlexerr.CodeOf(err), xlexerr.CannotDeleteLast)
	}
}

// TestConvertDateRoundTripsKnownSerials checks a couple of well-known Excel
// serial dates against their calendar equivalents.
func TestConvertDateRoundTripsKnownSerials(t *testing.T) {
	got, err := xlex.ConvertDate(1) // 1900-01-01
	if err != nil {
		t.Fatalf("ConvertDate(1) error = %v", err)
	}
	if got.Year() != 1900 || got.Month() != 1 || got.Day() != 1 {
		t.Fatalf("ConvertDate(1) = %v, want 1900-01-01", got)
	}

	got, err = xlex.ConvertDate(59) // 1900-02-28, the day before the phantom leap day
	if err != nil {
		t.Fatalf("ConvertDate(59) error = %v", err)
	}
	if got.Year() != 1900 || got.Month() != 2 || got.Day() != 28 {
		t.Fatalf("ConvertDate(59) = %v, want 1900-02-28", got)
	}

	got, err = xlex.ConvertDate(61) // 1900-03-01, immediately after the phantom leap day
	if err != nil {
		t.Fatalf("ConvertDate(61) error = %v", err)
	}
	if got.Year() != 1900 || got.Month() != 3 || got.Day() != 1 {
		t.Fatalf("ConvertDate(61) = %v, want 1900-03-01", got)
	}
}

// TestConvertDateExDate1904 checks the 1904 date system's epoch.
func TestConvertDateExDate1904(t *testing.T) {
	got, err := xlex.ConvertDateEx(0, true) // 1904-01-01
	if err != nil {
		t.Fatalf("ConvertDateEx(0, true) error = %v", err)
	}
	if got.Year() != 1904 || got.Month() != 1 || got.Day() != 1 {
		t.Fatalf("ConvertDateEx(0, true) = %v, want 1904-01-01", got)
	}
}

// TestConvertDateRejectsNegative checks a negative serial is rejected.
func TestConvertDateRejectsNegative(t *testing.T) {
	if _, err := xlex.ConvertDate(-1); err == nil {
		t.Fatal("ConvertDate(-1) should error")
	}
}
