package style

import "testing"

func TestParseFillPatternKnown(t *testing.T) {
	if ParseFillPattern("solid") != FillPatternSolid {
		t.Fatal("solid should parse to FillPatternSolid")
	}
	if ParseFillPattern("gray125") != FillPatternGray125 {
		t.Fatal("gray125 should parse to FillPatternGray125")
	}
}

func TestParseFillPatternUnknownCollapsesToNone(t *testing.T) {
	if got := ParseFillPattern("notARealPattern"); got != FillPatternNone {
		t.Fatalf("unknown pattern = %v, want FillPatternNone", got)
	}
}
