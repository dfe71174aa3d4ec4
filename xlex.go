// Package xlex provides a pure-Go reader/writer for Office Open XML
// SpreadsheetML (.xlsx) workbooks. No cgo is required.
//
// # Quick start
//
//	wb, err := xlex.Open("Book1.xlsx", 0)
//	if err != nil { ... }
//
//	fmt.Println(wb.SheetNames()) // [Sheet1 Sheet2]
//
//	sheet, ok := wb.Sheet("Sheet1")
//	if !ok { ... }
//
//	for cell := range sheet.Cells() {
//	    fmt.Printf("%s = %v\n", cell.Ref, cell.Value)
//	}
//
// # Writing
//
//	wb := xlex.NewWorkbook()
//	sheet, _ := wb.Sheet("Sheet1")
//	sheet.SetCell(ref, cellvalue.String("hello"))
//	err := xlex.Save(wb, "out.xlsx")
//
// # Lazy access
//
// For workbooks too large to materialise in full, [OpenLazy] parses only
// sheet metadata and the shared-strings index up front; cell values are
// read back a sheet at a time with [lazy.Workbook.StreamRows] or
// [lazy.Workbook.ReadCell].
//
// # Dates
//
// Excel stores dates as floating-point serial numbers; a [cellvalue.Value]
// of KindDateTime carries that serial directly, with no locale-aware
// rendering applied. [ConvertDate] and [ConvertDateEx] convert a serial
// number to a [time.Time] value for callers that need one.
package xlex

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/TsubasaBE/go-xlex/lazy"
	"github.com/TsubasaBE/go-xlex/workbook"
	"github.com/TsubasaBE/go-xlex/writer"
)

// Version is the current version of the go-xlex library.
const Version = "1.0.0"

// Open opens the named .xlsx file and parses it fully. threshold <= 0
// selects bytesource.DefaultThreshold for the memory-map/heap-buffer
// decision (spec.md §4.C).
func Open(name string, threshold int64) (*workbook.Workbook, error) {
	return workbook.Open(name, threshold)
}

// OpenReader parses a workbook from an arbitrary [io.ReaderAt]; size must
// equal the total byte length of the data.
func OpenReader(r io.ReaderAt, size int64) (*workbook.Workbook, error) {
	return workbook.OpenReader(r, size)
}

// NewWorkbook returns a brand-new workbook with a single sheet, ready for
// cells to be set and saved.
func NewWorkbook() *workbook.Workbook {
	return workbook.New()
}

// OpenLazy opens the named .xlsx file and parses only its metadata: sheet
// names/visibility and the shared-strings index, deferring every
// worksheet part until [lazy.Workbook.StreamRows] or
// [lazy.Workbook.ReadCell] asks for it by name (spec.md §4.L).
func OpenLazy(name string, threshold int64) (*lazy.Workbook, error) {
	return lazy.Open(name, threshold)
}

// OpenLazyReader parses workbook metadata from an arbitrary [io.ReaderAt];
// size must equal the total byte length of the data.
func OpenLazyReader(r io.ReaderAt, size int64) (*lazy.Workbook, error) {
	return lazy.OpenReader(r, size)
}

// Save writes wb to name as a .xlsx file, creating or truncating it.
func Save(wb *workbook.Workbook, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("xlex: create %q: %w", name, err)
	}
	defer f.Close()
	return SaveTo(wb, f)
}

// SaveTo writes wb as a .xlsx ZIP package to an arbitrary [io.Writer].
func SaveTo(wb *workbook.Workbook, w io.Writer) error {
	zs := writer.NewZipStorage(w)
	if err := writer.Write(wb, zs); err != nil {
		return err
	}
	return zs.Close()
}

// ConvertDate converts an Excel date serial number to a [time.Time] value
// under the 1900 date system (spec.md's DateTime cells store exactly this
// serial, with no date-system flag of their own — pair it with a
// workbook's Date1904 field via [ConvertDateEx] when that matters).
//
// Excel represents dates as the number of days since 1900-01-00, with the
// fractional part giving the time of day. Lotus 1-2-3 incorrectly treated
// 1900 as a leap year and Excel perpetuates the bug: serial 60 is treated
// as 1900-02-29 (which never existed), so this function applies the same
// day-rollover compensation above serial 60 that Excel itself does.
func ConvertDate(serial float64) (time.Time, error) {
	return convertDate(serial, false)
}

// ConvertDateEx converts an Excel date serial number to a [time.Time]
// value, respecting date1904 — pass a workbook's Date1904 field. When
// date1904 is false this is identical to [ConvertDate]. When true, serial 0
// is 1904-01-01 and no phantom-leap-day compensation applies (the Lotus
// 1-2-3 bug is specific to the 1900 system).
func ConvertDateEx(serial float64, date1904 bool) (time.Time, error) {
	return convertDate(serial, date1904)
}

const maxSerial1900 = 2_958_466 // one past 9999-12-31 in the 1900 system

func convertDate(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("xlex: date serial %v is not finite", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("xlex: negative date serial %v not supported", serial)
	}

	fracSec, rollover := fracDayToSeconds(serial)
	days := int(serial) + rollover

	if date1904 {
		const maxSerial1904 = maxSerial1900 - 1462
		if serial > maxSerial1904 {
			return time.Time{}, fmt.Errorf("xlex: date serial %v exceeds maximum %d", serial, maxSerial1904)
		}
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(days)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}

	if serial > maxSerial1900 {
		return time.Time{}, fmt.Errorf("xlex: date serial %v exceeds maximum %d", serial, maxSerial1900)
	}
	if days == 0 {
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second), nil
	}
	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	if days >= 61 {
		days-- // compensate for the phantom 1900-02-29
	}
	return base.Add(time.Duration(days)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
}

// fracDayToSeconds converts the fractional-day part of an Excel serial to a
// whole-second count within the day (0..86399) plus a day-rollover flag (0
// or 1), rounding to the nearest second so that display and conversion
// agree on where midnight falls.
func fracDayToSeconds(serial float64) (seconds int64, rollover int) {
	const epsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + epsilon
	nanos := time.Duration(fracDay * float64(24*time.Hour))
	secs := int64(nanos / time.Second)
	if nanos%time.Second > 500*time.Millisecond {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover = int(secs / 86400)
	return secs % 86400, rollover
}
