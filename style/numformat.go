package style

import (
	"github.com/xuri/nfp"

	"github.com/TsubasaBE/go-xlex/internal/dateformat"
)

// BuiltInNumFmt maps the built-in numFmtId values (0-49, ECMA-376 §18.8.30)
// to their canonical format code strings. IDs not present here are built-in
// IDs whose format is locale-dependent and has no single static spelling.
var BuiltInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "MM-DD-YY",
	15: "D-MMM-YY",
	16: "D-MMM",
	17: "MMM-YY",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "M/D/YY h:mm",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// IsDateFormat reports whether the number format identified by numFmtID
// (with formatCode as its custom spelling when numFmtID >= 164) should give
// a cell the DateTime display hint (spec.md §3, §4.M).
//
// This is a narrow, scoped use of github.com/xuri/nfp: for custom formats it
// tokenizes formatCode with nfp's parser and checks whether any section
// contains a date/time or elapsed-time token. It deliberately stops there —
// unlike a full rendering engine, it never produces a display string from
// the format; spec.md §1 excludes locale-aware number/date display from
// this module's scope.
func IsDateFormat(numFmtID int, formatCode string) bool {
	if numFmtID < 164 {
		return dateformat.IsBuiltInDateID(numFmtID)
	}
	if formatCode == "" {
		return false
	}
	sections := nfp.NumberFormatParser().Parse(formatCode)
	for _, sec := range sections {
		for _, tok := range sec.Items {
			if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
				return true
			}
		}
	}
	return false
}
