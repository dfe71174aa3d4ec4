package bytesource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TsubasaBE/go-xlex/xlexerr"
)

func TestOpenHeapBacked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.bin")
	want := []byte("hello, xlex")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path, DefaultThreshold)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if src.Len() != int64(len(want)) {
		t.Fatalf("Len() = %d, want %d", src.Len(), len(want))
	}
	got, err := src.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}
}

func TestOpenMemoryMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")
	want := strings.Repeat("x", 64)
	if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
		t.Fatal(err)
	}

	// Force the mmap path by setting a threshold below the file size.
	src, err := Open(path, 8)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if src.Len() != int64(len(want)) {
		t.Fatalf("Len() = %d, want %d", src.Len(), len(want))
	}
	got, err := src.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if string(got) != want {
		t.Fatalf("Bytes() = %q, want %q", got, want)
	}

	sr := src.SectionReader(2, 4)
	buf := make([]byte, 4)
	if _, err := sr.ReadAt(buf, 0); err != nil {
		t.Fatalf("SectionReader.ReadAt() error = %v", err)
	}
	if string(buf) != "xxxx" {
		t.Fatalf("section = %q, want xxxx", buf)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.xlsx"), DefaultThreshold)
	if xlexerr.CodeOf(err) != xlexerr.FileNotFound {
		t.Fatalf("CodeOf(err) = %v, want FileNotFound", xlexerr.CodeOf(err))
	}
}

func TestFromReader(t *testing.T) {
	src, err := FromReader(strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("FromReader() error = %v", err)
	}
	got, _ := src.Bytes()
	if string(got) != "abc" {
		t.Fatalf("Bytes() = %q, want abc", got)
	}
}

func TestFromBytesReaderAt(t *testing.T) {
	src := FromBytes([]byte("0123456789"))
	ra := src.ReaderAt()
	buf := make([]byte, 3)
	n, err := ra.ReadAt(buf, 4)
	if err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if n != 3 || string(buf) != "456" {
		t.Fatalf("ReadAt() = %q, want 456", buf[:n])
	}
}
