package coord_test

import (
	"testing"

	"github.com/TsubasaBE/go-xlex/coord"
)

func TestColToLettersRoundTrip(t *testing.T) {
	for col := 1; col <= coord.MaxCol; col += 37 {
		letters := coord.ColToLetters(col)
		got, err := coord.ColFromLetters(letters)
		if err != nil {
			t.Fatalf("ColFromLetters(%q): %v", letters, err)
		}
		if got != col {
			t.Fatalf("round trip mismatch: col=%d letters=%q got=%d", col, letters, got)
		}
	}
}

func TestColToLettersKnownValues(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 702: "ZZ", 16384: "XFD"}
	for col, want := range cases {
		if got := coord.ColToLetters(col); got != want {
			t.Errorf("ColToLetters(%d) = %q, want %q", col, got, want)
		}
	}
}

func TestParseRefRoundTrip(t *testing.T) {
	inputs := []string{"A1", "Z26", "AA27", "XFD1048576", "a1", "xfd1"}
	for _, s := range inputs {
		ref, err := coord.ParseRef(s)
		if err != nil {
			t.Fatalf("ParseRef(%q): %v", s, err)
		}
		got := ref.String()
		if got != upper(s) {
			t.Fatalf("ParseRef(%q).String() = %q, want %q", s, got, upper(s))
		}
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func TestParseRefInvalid(t *testing.T) {
	invalid := []string{"A0", "A1048577", "XFE1", "", "1A", "A", "1", "AAAA1"}
	for _, s := range invalid {
		if _, err := coord.ParseRef(s); err == nil {
			t.Errorf("ParseRef(%q) expected error, got nil", s)
		}
	}
}

func TestParseRefTrimsWhitespace(t *testing.T) {
	ref, err := coord.ParseRef("  B2  ")
	if err != nil {
		t.Fatalf("ParseRef: %v", err)
	}
	if ref != (coord.Ref{Col: 2, Row: 2}) {
		t.Fatalf("got %+v", ref)
	}
}
