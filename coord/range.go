package coord

import (
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// Range is a pair of cell references with Start.Col <= End.Col and
// Start.Row <= End.Row (spec.md §3).
type Range struct {
	Start Ref
	End   Ref
}

// Width returns the number of columns spanned by the range.
func (r Range) Width() int { return r.End.Col - r.Start.Col + 1 }

// Height returns the number of rows spanned by the range.
func (r Range) Height() int { return r.End.Row - r.Start.Row + 1 }

// Len returns the total number of cells in the range (Width * Height).
func (r Range) Len() int { return r.Width() * r.Height() }

// Contains reports whether ref lies within the range's bounding box.
func (r Range) Contains(ref Ref) bool {
	return ref.Col >= r.Start.Col && ref.Col <= r.End.Col &&
		ref.Row >= r.Start.Row && ref.Row <= r.End.Row
}

// String renders the range in A1 notation. A single-cell range ("start ==
// end") renders as just the one cell, matching how Excel displays it.
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// Cells returns an iterator (Go range-over-func) yielding every reference in
// the range in row-major order: outer row, inner column. The number of
// yields is exactly Width() * Height().
func (r Range) Cells() func(yield func(Ref) bool) {
	return func(yield func(Ref) bool) {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				if !yield(Ref{Col: col, Row: row}) {
					return
				}
			}
		}
	}
}

// ParseRange parses one of the four textual range forms (spec.md §3, §6):
//
//   - a single cell, e.g. "A1" (start == end)
//   - "start:end" in A1 form, e.g. "A1:B2"
//   - whole-column, e.g. "A:C" (start row 1, end row MaxRow)
//   - whole-row, e.g. "1:10" (start col 1, end col MaxCol)
//
// Reversed endpoints and zero indices are rejected as invalid.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "empty range")
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		ref, err := ParseRef(parts[0])
		if err != nil {
			return Range{}, xlexerr.Wrap(xlexerr.InvalidRange, err, "invalid range %q", s)
		}
		return Range{Start: ref, End: ref}, nil
	}

	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	if isAllDigits(left) && isAllDigits(right) {
		return parseWholeRow(s, left, right)
	}
	if isAllAlpha(left) && isAllAlpha(right) {
		return parseWholeCol(s, left, right)
	}

	start, err := ParseRef(left)
	if err != nil {
		return Range{}, xlexerr.Wrap(xlexerr.InvalidRange, err, "invalid range %q", s)
	}
	end, err := ParseRef(right)
	if err != nil {
		return Range{}, xlexerr.Wrap(xlexerr.InvalidRange, err, "invalid range %q", s)
	}
	if start.Col > end.Col || start.Row > end.Row {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "reversed range %q", s)
	}
	return Range{Start: start, End: end}, nil
}

func parseWholeCol(orig, left, right string) (Range, error) {
	c1, err := ColFromLetters(strings.ToUpper(left))
	if err != nil {
		return Range{}, xlexerr.Wrap(xlexerr.InvalidRange, err, "invalid range %q", orig)
	}
	c2, err := ColFromLetters(strings.ToUpper(right))
	if err != nil {
		return Range{}, xlexerr.Wrap(xlexerr.InvalidRange, err, "invalid range %q", orig)
	}
	if c1 > c2 {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "reversed column range %q", orig)
	}
	return Range{
		Start: Ref{Col: c1, Row: 1},
		End:   Ref{Col: c2, Row: MaxRow},
	}, nil
}

func parseWholeRow(orig, left, right string) (Range, error) {
	r1, err := strconv.Atoi(left)
	if err != nil {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "invalid range %q", orig)
	}
	r2, err := strconv.Atoi(right)
	if err != nil {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "invalid range %q", orig)
	}
	if r1 < 1 || r1 > MaxRow || r2 < 1 || r2 > MaxRow {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "row out of range in %q", orig)
	}
	if r1 > r2 {
		return Range{}, xlexerr.New(xlexerr.InvalidRange, "reversed row range %q", orig)
	}
	return Range{
		Start: Ref{Col: 1, Row: r1},
		End:   Ref{Col: MaxCol, Row: r2},
	}, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAllAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) {
			return false
		}
	}
	return true
}
