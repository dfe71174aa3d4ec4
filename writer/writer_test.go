package writer_test

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/TsubasaBE/go-xlex/cellvalue"
	"github.com/TsubasaBE/go-xlex/coord"
	"github.com/TsubasaBE/go-xlex/sheet"
	"github.com/TsubasaBE/go-xlex/workbook"
	"github.com/TsubasaBE/go-xlex/writer"
)

func ref(t *testing.T, a1 string) coord.Ref {
	t.Helper()
	r, err := coord.ParseRef(a1)
	if err != nil {
		t.Fatalf("ParseRef(%q) error = %v", a1, err)
	}
	return r
}

func rng(t *testing.T, a1 string) coord.Range {
	t.Helper()
	r, err := coord.ParseRange(a1)
	if err != nil {
		t.Fatalf("ParseRange(%q) error = %v", a1, err)
	}
	return r
}

func writeToBuf(t *testing.T, wb *workbook.Workbook) []byte {
	t.Helper()
	var buf bytes.Buffer
	zs := writer.NewZipStorage(&buf)
	if err := writer.Write(wb, zs); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := zs.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestWriteRoundTripsCellValues(t *testing.T) {
	wb := workbook.New()
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(ref(t, "A1"), cellvalue.String("hello"))
	sh.SetCell(ref(t, "B1"), cellvalue.Number(42))
	sh.SetCell(ref(t, "C1"), cellvalue.Boolean(true))
	sh.SetCell(ref(t, "D1"), cellvalue.Error(cellvalue.ErrDiv0))
	sh.AddMerge(rng(t, "A2:B3"))

	data := writeToBuf(t, wb)

	got, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() on written bytes error = %v", err)
	}
	gotSheet, ok := got.Sheet("Sheet1")
	if !ok {
		t.Fatal("written workbook missing Sheet1")
	}

	if s, ok := gotSheet.GetValue(ref(t, "A1")).AsString(); !ok || s != "hello" {
		t.Fatalf("A1 = %v, %v, want \"hello\"", s, ok)
	}
	if n, ok := gotSheet.GetValue(ref(t, "B1")).AsNumber(); !ok || n != 42 {
		t.Fatalf("B1 = %v, %v, want 42", n, ok)
	}
	if b, ok := gotSheet.GetValue(ref(t, "C1")).AsBool(); !ok || !b {
		t.Fatalf("C1 = %v, %v, want true", b, ok)
	}
	if e, ok := gotSheet.GetValue(ref(t, "D1")).AsError(); !ok || e != cellvalue.ErrDiv0 {
		t.Fatalf("D1 = %v, %v, want #DIV/0!", e, ok)
	}
	if merges := gotSheet.Merges(); len(merges) != 1 || merges[0].String() != "A2:B3" {
		t.Fatalf("Merges() = %v, want [A2:B3]", merges)
	}
}

func TestWriteDedupsSharedStrings(t *testing.T) {
	wb := workbook.New()
	sh, _ := wb.Sheet("Sheet1")
	for i := 1; i <= 1000; i++ {
		sh.SetCell(coord.Ref{Col: 1, Row: i}, cellvalue.String("dup"))
	}

	data := writeToBuf(t, wb)
	if wb.Strings.Len() != 1 {
		t.Fatalf("wb.Strings.Len() = %d, want 1 after writing 1000x the same string", wb.Strings.Len())
	}

	got, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	if got.Strings.Len() != 1 {
		t.Fatalf("re-parsed Strings.Len() = %d, want 1", got.Strings.Len())
	}
}

func TestWriteOmitsSharedStringsPartWhenNoStrings(t *testing.T) {
	wb := workbook.New()
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(ref(t, "A1"), cellvalue.Number(1))

	data := writeToBuf(t, wb)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name == "xl/sharedStrings.xml" {
			t.Fatal("sharedStrings.xml should be omitted when the workbook has no strings")
		}
	}
}

func TestWriteRoundTripsRowAndColProps(t *testing.T) {
	wb := workbook.New()
	sh, _ := wb.Sheet("Sheet1")
	sh.SetCell(ref(t, "A1"), cellvalue.Number(1))
	sh.SetRowProps(1, sheet.RowProps{Height: 20, CustomHeight: true, Hidden: true, OutlineLevel: 2})
	sh.SetColProps(1, sheet.ColProps{Width: 30, CustomWidth: true, Hidden: true, OutlineLevel: 1})

	data := writeToBuf(t, wb)
	got, err := workbook.OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	gotSheet, _ := got.Sheet("Sheet1")

	rp, ok := gotSheet.RowProps(1)
	if !ok || rp.Height != 20 || !rp.CustomHeight || !rp.Hidden || rp.OutlineLevel != 2 {
		t.Fatalf("RowProps(1) = %+v, %v", rp, ok)
	}
	cp, ok := gotSheet.ColProps(1)
	if !ok || cp.Width != 30 || !cp.CustomWidth || !cp.Hidden || cp.OutlineLevel != 1 {
		t.Fatalf("ColProps(1) = %+v, %v", cp, ok)
	}
}
