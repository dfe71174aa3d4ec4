package style

import (
	"encoding/xml"
	"strconv"
)

// Parse decodes the xl/styles.xml part described by spec.md §4.G: fonts,
// fills, borders, and number formats are collected in input order into a
// Registry; cellXfs entries become the dense style-id table cells reference
// via their "s" attribute.
//
// Unlike the streaming parsers in sharedstrings/lazystrings/sheetxml, styles
// parsing has no byte-offset contract to satisfy, so this uses
// encoding/xml's declarative struct unmarshalling, matching how
// internal/rels parses relationship XML.
func Parse(data []byte) (*Registry, error) {
	var doc xmlStyleSheet
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	r := newEmptyRegistry()

	for _, nf := range doc.NumFmts.NumFmt {
		r.SetNumFmt(nf.NumFmtID, nf.FormatCode)
	}

	for _, f := range doc.Fonts.Font {
		r.AppendFont(Font{
			Name:      valOf(f.Name),
			Size:      floatValOf(f.Sz),
			Bold:      flagSet(f.B),
			Italic:    flagSet(f.I),
			Underline: underlineOf(f.U),
			Strike:    flagSet(f.Strike),
			Color:     colorOf(f.Color),
		})
	}

	for _, fl := range doc.Fills.Fill {
		fill := Fill{Pattern: FillPatternNone}
		if fl.PatternFill != nil {
			fill.Pattern = ParseFillPattern(fl.PatternFill.PatternType)
			fill.FgColor = colorOf(fl.PatternFill.FgColor)
			fill.BgColor = colorOf(fl.PatternFill.BgColor)
		}
		r.AppendFill(fill)
	}

	for _, b := range doc.Borders.Border {
		r.AppendBorder(Border{
			Left:         borderSideOf(b.Left),
			Right:        borderSideOf(b.Right),
			Top:          borderSideOf(b.Top),
			Bottom:       borderSideOf(b.Bottom),
			Diagonal:     borderSideOf(b.Diagonal),
			DiagonalUp:   b.DiagonalUp == "1" || b.DiagonalUp == "true",
			DiagonalDown: b.DiagonalDown == "1" || b.DiagonalDown == "true",
		})
	}

	for _, xf := range doc.CellXfs.Xf {
		r.AppendStyle(Style{
			FontID:   xf.FontID,
			FillID:   xf.FillID,
			BorderID: xf.BorderID,
			NumFmtID: xf.NumFmtID,
		})
	}

	return r, nil
}

func valOf(v *xmlVal) string {
	if v == nil {
		return ""
	}
	return v.Val
}

func floatValOf(v *xmlVal) float64 {
	if v == nil {
		return 0
	}
	return parseFloatLenient(v.Val)
}

func flagSet(f *xmlFlag) bool {
	if f == nil {
		return false
	}
	return f.Val != "0" && f.Val != "false"
}

func underlineOf(u *xmlUVal) string {
	if u == nil {
		return ""
	}
	if u.Val == "" {
		return "single"
	}
	return u.Val
}

func colorOf(c *xmlColor) string {
	if c == nil {
		return ""
	}
	switch {
	case c.RGB != "":
		return "rgb:" + c.RGB
	case c.Theme != "":
		return "theme:" + c.Theme
	case c.Indexed != "":
		return "indexed:" + c.Indexed
	default:
		return ""
	}
}

func borderSideOf(s xmlBorderSide) BorderSide {
	return BorderSide{Style: s.Style, Color: colorOf(s.Color)}
}

// parseFloatLenient parses a numeric attribute, returning 0 for empty or
// malformed input rather than erroring — styles.xml parsing degrades
// unknown/malformed numeric attributes to zero per spec.md §7's local
// recovery rules.
func parseFloatLenient(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
