package style

import "testing"

func TestNewRegistrySeedsDefaults(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if len(r.Fonts()) != 1 || len(r.Fills()) != 2 || len(r.Borders()) != 1 {
		t.Fatalf("unexpected seeded table sizes: fonts=%d fills=%d borders=%d",
			len(r.Fonts()), len(r.Fills()), len(r.Borders()))
	}
	s, ok := r.Style(0)
	if !ok {
		t.Fatal("Style(0) not found")
	}
	if s.FontID != 0 || s.FillID != 0 || s.BorderID != 0 || s.NumFmtID != 0 {
		t.Fatalf("default style = %+v, want all zero", s)
	}
}

func TestAppendReturnsDenseIDs(t *testing.T) {
	r := NewRegistry()
	id1 := r.AppendStyle(Style{FontID: 0})
	id2 := r.AppendStyle(Style{FontID: 0})
	if id1 != 1 || id2 != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", id1, id2)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
}

func TestStyleOutOfRange(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Style(-1); ok {
		t.Fatal("Style(-1) should not be found")
	}
	if _, ok := r.Style(99); ok {
		t.Fatal("Style(99) should not be found")
	}
}

func TestNumFmtCodeFallsBackToBuiltinThenGeneral(t *testing.T) {
	r := NewRegistry()
	if got := r.NumFmtCode(0); got != "General" {
		t.Fatalf("NumFmtCode(0) = %q, want General", got)
	}
	if got := r.NumFmtCode(9); got != "0%" {
		t.Fatalf("NumFmtCode(9) = %q, want 0%%", got)
	}
	r.SetNumFmt(164, `"$"#,##0.00`)
	if got := r.NumFmtCode(164); got != `"$"#,##0.00` {
		t.Fatalf("NumFmtCode(164) = %q", got)
	}
	if got := r.NumFmtCode(9999); got != "General" {
		t.Fatalf("NumFmtCode(9999) = %q, want General", got)
	}
}

func TestIsDateStyle(t *testing.T) {
	r := NewRegistry()
	dateStyle := r.AppendStyle(Style{NumFmtID: 14}) // MM-DD-YY
	if !r.IsDateStyle(dateStyle) {
		t.Fatal("style with numFmtId 14 should be a date style")
	}
	if r.IsDateStyle(0) {
		t.Fatal("General style should not be a date style")
	}
	if r.IsDateStyle(999) {
		t.Fatal("out-of-range style id should report false, not panic")
	}
}
