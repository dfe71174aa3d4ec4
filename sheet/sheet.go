// Package sheet implements the sparse cell store, its structural edits, and
// the per-sheet side tables described by spec.md §3 and §4.J: row/column
// dimension overrides, hidden sets, merged ranges, and a lazily recomputed
// used-range cache.
package sheet

import (
	"github.com/TsubasaBE/go-xlex/cellvalue"
	"github.com/TsubasaBE/go-xlex/coord"
)

// Visibility is a sheet's tab-visibility state.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	VeryHidden
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case VeryHidden:
		return "veryHidden"
	default:
		return "visible"
	}
}

// ParseVisibility maps a workbook.xml <sheet state="..."> token to a
// Visibility, defaulting to Visible for an absent or unrecognised token.
func ParseVisibility(state string) Visibility {
	switch state {
	case "hidden":
		return Hidden
	case "veryHidden":
		return VeryHidden
	default:
		return Visible
	}
}

// Info identifies a sheet within its owning workbook: its display name, the
// internal sheetId workbook.xml carries, the relationship id that resolves
// to its worksheet part, its tab visibility, and its zero-based position
// among the workbook's sheets.
type Info struct {
	Name       string
	SheetID    int
	RelID      string
	Visibility Visibility
	Index      int
}

// Cell is a reference, a value, and the optional style/comment/hyperlink
// attachments a cell may carry (spec.md §3).
type Cell struct {
	Ref          coord.Ref
	Value        cellvalue.Value
	StyleID      int
	HasStyle     bool
	Comment      string
	HasHyperlink bool
	Hyperlink    string
}

// RowProps is a row's dimension side-table entry: an explicit height
// override and hidden flag, plus an outline (grouping) level. CustomHeight
// distinguishes "the user set this height" from "this row uses the sheet
// default", so a round-trip never fabricates a customHeight attribute that
// was never present in the source file.
type RowProps struct {
	Height       float64
	CustomHeight bool
	Hidden       bool
	OutlineLevel int
}

// ColProps is the column analogue of RowProps.
type ColProps struct {
	Width        float64
	CustomWidth  bool
	Hidden       bool
	OutlineLevel int
}

// Sheet is the in-memory model of one worksheet: a sparse (col,row)→Cell
// store plus the side tables spec.md §3 names.
type Sheet struct {
	Info Info

	cells    map[coord.Ref]Cell
	rowProps map[int]RowProps
	colProps map[int]ColProps
	merges   []coord.Range

	usedRangeValid bool
	usedRange      coord.Range
	hasUsedRange   bool
}

// New returns an empty sheet carrying info.
func New(info Info) *Sheet {
	return &Sheet{
		Info:     info,
		cells:    make(map[coord.Ref]Cell),
		rowProps: make(map[int]RowProps),
		colProps: make(map[int]ColProps),
	}
}

// SetCell overwrites the cell at ref with value, clearing any prior
// style/comment/hyperlink on that slot, and invalidates the used-range
// cache.
func (s *Sheet) SetCell(ref coord.Ref, value cellvalue.Value) {
	s.cells[ref] = Cell{Ref: ref, Value: value}
	s.invalidateUsedRange()
}

// InsertCell stores a fully preconstructed cell verbatim, preserving
// whatever style/comment/hyperlink it already carries (spec.md §4.J, and
// the §9 open-question resolution: parsing attaches style via InsertCell
// rather than SetCell so the style id survives).
func (s *Sheet) InsertCell(cell Cell) {
	s.cells[cell.Ref] = cell
	s.invalidateUsedRange()
}

// GetCell returns the cell at ref and true, or the zero Cell and false if
// the slot is empty.
func (s *Sheet) GetCell(ref coord.Ref) (Cell, bool) {
	c, ok := s.cells[ref]
	return c, ok
}

// GetValue returns the value at ref, or cellvalue.Empty() for a missing
// key.
func (s *Sheet) GetValue(ref coord.Ref) cellvalue.Value {
	if c, ok := s.cells[ref]; ok {
		return c.Value
	}
	return cellvalue.Empty()
}

// SetCellStyle attaches styleID to the cell at ref, creating an Empty cell
// there first if none exists.
func (s *Sheet) SetCellStyle(ref coord.Ref, styleID int) {
	c := s.cells[ref]
	c.Ref = ref
	c.StyleID = styleID
	c.HasStyle = true
	s.cells[ref] = c
	s.invalidateUsedRange()
}

// SetCellComment attaches comment to the cell at ref, creating an Empty
// cell there first if none exists.
func (s *Sheet) SetCellComment(ref coord.Ref, comment string) {
	c := s.cells[ref]
	c.Ref = ref
	c.Comment = comment
	s.cells[ref] = c
	s.invalidateUsedRange()
}

// SetCellHyperlink attaches hyperlink to the cell at ref, creating an Empty
// cell there first if none exists.
func (s *Sheet) SetCellHyperlink(ref coord.Ref, hyperlink string) {
	c := s.cells[ref]
	c.Ref = ref
	c.Hyperlink = hyperlink
	c.HasHyperlink = true
	s.cells[ref] = c
	s.invalidateUsedRange()
}

// ClearCell removes the mapping at ref entirely.
func (s *Sheet) ClearCell(ref coord.Ref) {
	delete(s.cells, ref)
	s.invalidateUsedRange()
}

// Len returns the number of non-empty cell slots.
func (s *Sheet) Len() int { return len(s.cells) }

// Cells returns every stored cell; iteration order is unspecified
// (spec.md §5).
func (s *Sheet) Cells() func(yield func(Cell) bool) {
	return func(yield func(Cell) bool) {
		for _, c := range s.cells {
			if !yield(c) {
				return
			}
		}
	}
}

func (s *Sheet) invalidateUsedRange() {
	s.usedRangeValid = false
}

// UsedRange returns the tight bounding box over non-empty cell keys, and
// true, or the zero Range and false when the sheet has no cells.
// Recomputation is lazy and cached until the next mutation.
func (s *Sheet) UsedRange() (coord.Range, bool) {
	if s.usedRangeValid {
		return s.usedRange, s.hasUsedRange
	}
	if len(s.cells) == 0 {
		s.usedRangeValid = true
		s.hasUsedRange = false
		return coord.Range{}, false
	}
	minCol, minRow := coord.MaxCol+1, coord.MaxRow+1
	maxCol, maxRow := 0, 0
	for ref := range s.cells {
		if ref.Col < minCol {
			minCol = ref.Col
		}
		if ref.Col > maxCol {
			maxCol = ref.Col
		}
		if ref.Row < minRow {
			minRow = ref.Row
		}
		if ref.Row > maxRow {
			maxRow = ref.Row
		}
	}
	s.usedRange = coord.Range{
		Start: coord.Ref{Col: minCol, Row: minRow},
		End:   coord.Ref{Col: maxCol, Row: maxRow},
	}
	s.hasUsedRange = true
	s.usedRangeValid = true
	return s.usedRange, true
}

// RowProps returns the side-table entry for row and true, or the zero
// RowProps and false if no entry has been set.
func (s *Sheet) RowProps(row int) (RowProps, bool) {
	p, ok := s.rowProps[row]
	return p, ok
}

// SetRowProps sets the side-table entry for row.
func (s *Sheet) SetRowProps(row int, p RowProps) { s.rowProps[row] = p }

// ColProps returns the side-table entry for col and true, or the zero
// ColProps and false if no entry has been set.
func (s *Sheet) ColProps(col int) (ColProps, bool) {
	p, ok := s.colProps[col]
	return p, ok
}

// SetColProps sets the side-table entry for col.
func (s *Sheet) SetColProps(col int, p ColProps) { s.colProps[col] = p }

// RowPropsMap exposes the full row side table, for the writer to re-emit.
func (s *Sheet) RowPropsMap() map[int]RowProps { return s.rowProps }

// ColPropsMap exposes the full column side table, for the writer to re-emit.
func (s *Sheet) ColPropsMap() map[int]ColProps { return s.colProps }

// Merges returns the ordered list of merged ranges.
func (s *Sheet) Merges() []coord.Range { return s.merges }

// AddMerge appends r to the merged-range list.
func (s *Sheet) AddMerge(r coord.Range) { s.merges = append(s.merges, r) }

// SetMerges replaces the merged-range list wholesale, used by the sheet
// parser (§4.I) after reading every <mergeCell> entry.
func (s *Sheet) SetMerges(merges []coord.Range) { s.merges = merges }

