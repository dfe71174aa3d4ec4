package style

// Style ties a cell's formatting together by index into the registry's
// parallel font/fill/border tables plus a number-format id (spec.md §3).
type Style struct {
	FontID   int // index into Registry.Fonts()
	FillID   int // index into Registry.Fills()
	BorderID int // index into Registry.Borders()
	NumFmtID int // numFmtId; 0 is General
}

// Registry is the workbook-scoped, append-only table of style records
// (spec.md §3): a dense, monotonically-numbered id -> Style map, plus the
// parallel insertion-ordered font/fill/border tables and the custom
// number-format code table that cellXfs entries reference by index/id.
type Registry struct {
	styles  []Style
	fonts   []Font
	fills   []Fill
	borders []Border
	numFmts map[int]string // custom format codes, keyed by numFmtId (>=164 by convention)
}

// NewRegistry returns a registry seeded with the default font, fill(s),
// border, and style id 0 that every Excel workbook ships with (an empty
// Calibri-11 font, the "none" and "gray125" default fills, a border-less
// border, and a style referencing all three plus the General number
// format). This mirrors what xl/styles.xml always contains even for a
// brand-new workbook, so a freshly created Sheet can hand out style id 0
// to its cells immediately.
func NewRegistry() *Registry {
	r := &Registry{numFmts: map[int]string{}}
	r.AppendFont(Font{Name: "Calibri", Size: 11})
	r.AppendFill(Fill{Pattern: FillPatternNone})
	r.AppendFill(Fill{Pattern: FillPatternGray125})
	r.AppendBorder(Border{})
	r.AppendStyle(Style{FontID: 0, FillID: 0, BorderID: 0, NumFmtID: 0})
	return r
}

// newEmptyRegistry returns a registry with no seeded defaults, used by Parse
// (spec.md §4.G) which populates every table from the file's own content.
func newEmptyRegistry() *Registry {
	return &Registry{numFmts: map[int]string{}}
}

// AppendFont appends f to the font table and returns its new index.
func (r *Registry) AppendFont(f Font) int {
	r.fonts = append(r.fonts, f)
	return len(r.fonts) - 1
}

// AppendFill appends f to the fill table and returns its new index.
func (r *Registry) AppendFill(f Fill) int {
	r.fills = append(r.fills, f)
	return len(r.fills) - 1
}

// AppendBorder appends b to the border table and returns its new index.
func (r *Registry) AppendBorder(b Border) int {
	r.borders = append(r.borders, b)
	return len(r.borders) - 1
}

// SetNumFmt records a custom number-format code under id, overwriting any
// prior entry at that id.
func (r *Registry) SetNumFmt(id int, code string) { r.numFmts[id] = code }

// NumFmtCode returns the effective format code for id: a custom code if one
// was registered, else the built-in code for a known id, else "General".
func (r *Registry) NumFmtCode(id int) string {
	if code, ok := r.numFmts[id]; ok {
		return code
	}
	if code, ok := BuiltInNumFmt[id]; ok {
		return code
	}
	return "General"
}

// AppendStyle appends s to the style table and returns its new, dense style
// id. Style ids are never reused (spec.md §3).
func (r *Registry) AppendStyle(s Style) int {
	r.styles = append(r.styles, s)
	return len(r.styles) - 1
}

// Style returns the style at id and true, or the zero Style and false when
// id is out of range.
func (r *Registry) Style(id int) (Style, bool) {
	if id < 0 || id >= len(r.styles) {
		return Style{}, false
	}
	return r.styles[id], true
}

// Len returns the number of registered styles.
func (r *Registry) Len() int { return len(r.styles) }

// Fonts returns the font table in insertion order.
func (r *Registry) Fonts() []Font { return r.fonts }

// Fills returns the fill table in insertion order.
func (r *Registry) Fills() []Fill { return r.fills }

// Borders returns the border table in insertion order.
func (r *Registry) Borders() []Border { return r.borders }

// CustomNumFmts returns the custom format-code table keyed by numFmtId.
func (r *Registry) CustomNumFmts() map[int]string { return r.numFmts }

// IsDateStyle reports whether the style at id carries a date/time number
// format (spec.md §4.M). Out-of-range ids report false.
func (r *Registry) IsDateStyle(id int) bool {
	s, ok := r.Style(id)
	if !ok {
		return false
	}
	return IsDateFormat(s.NumFmtID, r.NumFmtCode(s.NumFmtID))
}
