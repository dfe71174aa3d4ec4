package sheet

import "github.com/TsubasaBE/go-xlex/coord"

// InsertRows relocates every cell, row-side-table entry, and merge at or
// below row so that n blank rows open up starting at row (spec.md §4.J).
// n <= 0 is a no-op.
func (s *Sheet) InsertRows(row, n int) {
	if n <= 0 {
		return
	}
	s.cells = shiftCellRows(s.cells, row, n, true)
	s.rowProps = shiftIntKeyedMap(s.rowProps, row, n, true)
	for i := range s.merges {
		m := &s.merges[i]
		if m.Start.Row >= row {
			m.Start.Row += n
		}
		if m.End.Row >= row {
			m.End.Row += n
		}
	}
	s.invalidateUsedRange()
}

// DeleteRows removes every cell in [row, row+n) and shifts everything at or
// below row+n up by n (spec.md §4.J). Merges wholly inside the deleted band
// are dropped; merges straddling it are clamped to the remaining band's
// edge. n <= 0 is a no-op.
func (s *Sheet) DeleteRows(row, n int) {
	if n <= 0 {
		return
	}
	lo, hi := row, row+n // [lo, hi)

	newCells := make(map[coord.Ref]Cell, len(s.cells))
	for ref, c := range s.cells {
		switch {
		case ref.Row >= lo && ref.Row < hi:
			// dropped
		case ref.Row >= hi:
			ref.Row -= n
			c.Ref = ref
			newCells[ref] = c
		default:
			newCells[ref] = c
		}
	}
	s.cells = newCells

	s.rowProps = shiftIntKeyedMap(s.rowProps, row, -n, false)

	var kept []coord.Range
	for _, m := range s.merges {
		switch {
		case m.Start.Row >= lo && m.End.Row < hi:
			// wholly inside the deleted band: dropped
		case m.End.Row < lo:
			// strictly above: unchanged
			kept = append(kept, m)
		case m.Start.Row >= hi:
			// strictly below: shift by n
			m.Start.Row -= n
			m.End.Row -= n
			kept = append(kept, m)
		default:
			// straddles the deleted band: clamp to the edge of what
			// remains. Start clamps to lo; end clamps to
			// max(lo-1, start) after accounting for the shift of
			// whatever portion was below hi.
			if m.Start.Row >= lo {
				m.Start.Row = lo
			}
			end := m.End.Row
			if end >= hi {
				end -= n
			} else if end >= lo {
				end = lo - 1
			}
			if end < m.Start.Row {
				end = m.Start.Row
			}
			m.End.Row = end
			kept = append(kept, m)
		}
	}
	s.merges = kept

	s.invalidateUsedRange()
}

// InsertColumns is the column-axis mirror of InsertRows.
func (s *Sheet) InsertColumns(col, n int) {
	if n <= 0 {
		return
	}
	s.cells = shiftCellCols(s.cells, col, n, true)
	s.colProps = shiftIntKeyedMap(s.colProps, col, n, true)
	for i := range s.merges {
		m := &s.merges[i]
		if m.Start.Col >= col {
			m.Start.Col += n
		}
		if m.End.Col >= col {
			m.End.Col += n
		}
	}
	s.invalidateUsedRange()
}

// DeleteColumns is the column-axis mirror of DeleteRows.
func (s *Sheet) DeleteColumns(col, n int) {
	if n <= 0 {
		return
	}
	lo, hi := col, col+n

	newCells := make(map[coord.Ref]Cell, len(s.cells))
	for ref, c := range s.cells {
		switch {
		case ref.Col >= lo && ref.Col < hi:
		case ref.Col >= hi:
			ref.Col -= n
			c.Ref = ref
			newCells[ref] = c
		default:
			newCells[ref] = c
		}
	}
	s.cells = newCells

	s.colProps = shiftIntKeyedMap(s.colProps, col, -n, false)

	var kept []coord.Range
	for _, m := range s.merges {
		switch {
		case m.Start.Col >= lo && m.End.Col < hi:
		case m.End.Col < lo:
			kept = append(kept, m)
		case m.Start.Col >= hi:
			m.Start.Col -= n
			m.End.Col -= n
			kept = append(kept, m)
		default:
			if m.Start.Col >= lo {
				m.Start.Col = lo
			}
			end := m.End.Col
			if end >= hi {
				end -= n
			} else if end >= lo {
				end = lo - 1
			}
			if end < m.Start.Col {
				end = m.Start.Col
			}
			m.End.Col = end
			kept = append(kept, m)
		}
	}
	s.merges = kept

	s.invalidateUsedRange()
}

func shiftCellRows(cells map[coord.Ref]Cell, row, n int, onlyAtOrAfter bool) map[coord.Ref]Cell {
	out := make(map[coord.Ref]Cell, len(cells))
	for ref, c := range cells {
		if onlyAtOrAfter && ref.Row >= row {
			ref.Row += n
		}
		c.Ref = ref
		out[ref] = c
	}
	return out
}

func shiftCellCols(cells map[coord.Ref]Cell, col, n int, onlyAtOrAfter bool) map[coord.Ref]Cell {
	out := make(map[coord.Ref]Cell, len(cells))
	for ref, c := range cells {
		if onlyAtOrAfter && ref.Col >= col {
			ref.Col += n
		}
		c.Ref = ref
		out[ref] = c
	}
	return out
}

// shiftIntKeyedMap relocates keys at or above pos by delta. When insert is
// true (delta > 0) every key >= pos moves to key+delta. When insert is
// false (delta < 0, a deletion) keys in the deleted band are dropped and
// keys at or above the band's far edge move by delta; this mirrors
// DeleteRows/DeleteColumns' cell-shifting semantics for side tables keyed
// by row or column number.
func shiftIntKeyedMap[V any](m map[int]V, pos, delta int, insert bool) map[int]V {
	out := make(map[int]V, len(m))
	if insert {
		for k, v := range m {
			if k >= pos {
				k += delta
			}
			out[k] = v
		}
		return out
	}
	lo, hi := pos, pos-delta // delta is negative; hi = pos + n
	for k, v := range m {
		switch {
		case k >= lo && k < hi:
			// dropped
		case k >= hi:
			out[k+delta] = v
		default:
			out[k] = v
		}
	}
	return out
}
