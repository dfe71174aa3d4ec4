// Package style holds the font/fill/border/number-format model and the
// style registry described by spec.md §3, §4.B, and the parser that
// populates it from xl/styles.xml (spec.md §4.G).
package style

// Font mirrors the attributes of an OOXML <font> element that this module
// cares about: name, size, the three presence-flag attributes, and a raw
// color spec carried through verbatim.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline string // raw underline style token ("", "single", "double", ...); "" means none
	Strike    bool
	Color     string // raw color spec (see Color docs on Fill), "" if unset
}

// Empty reports whether the font carries no non-default properties.
func (f Font) Empty() bool {
	return f.Name == "" && f.Size == 0 && !f.Bold && !f.Italic &&
		f.Underline == "" && !f.Strike && f.Color == ""
}
