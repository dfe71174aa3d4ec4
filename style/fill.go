package style

// FillPattern enumerates the OOXML ST_PatternType tokens a <patternFill>
// element's patternType attribute may carry (ECMA-376 §18.8.30). Unknown
// tokens map to FillPatternNone rather than erroring (spec.md §4.G, §9 open
// question: this mapping is deliberately lossy on round-trip for exotic
// tokens never emitted by Excel itself).
type FillPattern string

const (
	FillPatternNone            FillPattern = "none"
	FillPatternSolid           FillPattern = "solid"
	FillPatternMediumGray      FillPattern = "mediumGray"
	FillPatternDarkGray        FillPattern = "darkGray"
	FillPatternLightGray       FillPattern = "lightGray"
	FillPatternDarkHorizontal  FillPattern = "darkHorizontal"
	FillPatternDarkVertical    FillPattern = "darkVertical"
	FillPatternDarkDown        FillPattern = "darkDown"
	FillPatternDarkUp          FillPattern = "darkUp"
	FillPatternDarkGrid        FillPattern = "darkGrid"
	FillPatternDarkTrellis     FillPattern = "darkTrellis"
	FillPatternLightHorizontal FillPattern = "lightHorizontal"
	FillPatternLightVertical   FillPattern = "lightVertical"
	FillPatternLightDown       FillPattern = "lightDown"
	FillPatternLightUp         FillPattern = "lightUp"
	FillPatternLightGrid       FillPattern = "lightGrid"
	FillPatternLightTrellis    FillPattern = "lightTrellis"
	FillPatternGray125         FillPattern = "gray125"
	FillPatternGray0625        FillPattern = "gray0625"
)

var knownFillPatterns = map[string]FillPattern{
	string(FillPatternNone):            FillPatternNone,
	string(FillPatternSolid):           FillPatternSolid,
	string(FillPatternMediumGray):      FillPatternMediumGray,
	string(FillPatternDarkGray):        FillPatternDarkGray,
	string(FillPatternLightGray):       FillPatternLightGray,
	string(FillPatternDarkHorizontal):  FillPatternDarkHorizontal,
	string(FillPatternDarkVertical):    FillPatternDarkVertical,
	string(FillPatternDarkDown):        FillPatternDarkDown,
	string(FillPatternDarkUp):          FillPatternDarkUp,
	string(FillPatternDarkGrid):        FillPatternDarkGrid,
	string(FillPatternDarkTrellis):     FillPatternDarkTrellis,
	string(FillPatternLightHorizontal): FillPatternLightHorizontal,
	string(FillPatternLightVertical):   FillPatternLightVertical,
	string(FillPatternLightDown):       FillPatternLightDown,
	string(FillPatternLightUp):         FillPatternLightUp,
	string(FillPatternLightGrid):       FillPatternLightGrid,
	string(FillPatternLightTrellis):    FillPatternLightTrellis,
	string(FillPatternGray125):         FillPatternGray125,
	string(FillPatternGray0625):        FillPatternGray0625,
}

// ParseFillPattern maps a patternType token to its FillPattern constant,
// collapsing any unrecognised token to FillPatternNone.
func ParseFillPattern(token string) FillPattern {
	if p, ok := knownFillPatterns[token]; ok {
		return p
	}
	return FillPatternNone
}

// Fill mirrors a <fill><patternFill> element: a pattern kind plus the two
// color slots OOXML defines for it. Colors are carried as a raw spec string
// ("rgb:FFRRGGBB", "theme:<n>", or "indexed:<n>") rather than decoded into a
// structured color type — spec.md §4.G stores styles verbatim for the
// writer to emit unchanged, it does not specify color-space semantics.
type Fill struct {
	Pattern FillPattern
	FgColor string
	BgColor string
}
