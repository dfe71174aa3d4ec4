// Package bytesource implements the unified read view described by
// spec.md §4.C: opening a path memory-maps it above a configurable size
// threshold and reads it into a heap buffer below the threshold; opening an
// arbitrary io.Reader always reads to end into a heap buffer. Both paths
// expose the same Source interface so the container/workbook layers never
// need to know which one backs a given open.
package bytesource

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// DefaultThreshold is the file size, in bytes, above which Open establishes
// a memory map rather than reading the file into a heap buffer.
const DefaultThreshold = 10 * 1024 * 1024

// Source is the unified read view: a byte slice for callers that want the
// whole buffer, an io.ReaderAt over the whole contents, and a positioned
// cursor factory for callers that only need a byte range.
type Source struct {
	closer io.Closer // nil when there is nothing to release (heap-backed)
	data   []byte    // non-nil for heap-backed sources
	ra     *mmap.ReaderAt
}

// Bytes returns the full contents as a slice. For a memory-mapped source
// this reads the entire mapping into a freshly allocated slice; callers on
// the hot path that only need a sub-range should prefer SectionReader.
func (s *Source) Bytes() ([]byte, error) {
	if s.data != nil {
		return s.data, nil
	}
	buf := make([]byte, s.ra.Len())
	if _, err := s.ra.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, xlexerr.Wrap(xlexerr.IO, err, "bytesource: read mapped region")
	}
	return buf, nil
}

// Len returns the total size of the underlying data.
func (s *Source) Len() int64 {
	if s.data != nil {
		return int64(len(s.data))
	}
	return int64(s.ra.Len())
}

// SectionReader returns an io.ReaderAt positioned cursor over [off, off+n),
// for reading a byte range without materialising the whole buffer.
func (s *Source) SectionReader(off, n int64) *io.SectionReader {
	if s.data != nil {
		return io.NewSectionReader(byteReaderAt(s.data), off, n)
	}
	return io.NewSectionReader(s.ra, off, n)
}

// ReaderAt exposes the source as an io.ReaderAt over its full extent, the
// shape archive/zip.NewReader requires.
func (s *Source) ReaderAt() io.ReaderAt {
	if s.data != nil {
		return byteReaderAt(s.data)
	}
	return s.ra
}

// Close releases the memory map and its file descriptor, if any. Heap-backed
// sources have nothing to release and Close is a no-op.
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// Open opens name per spec.md §4.C: a memory map above threshold bytes, a
// heap buffer at or below it. threshold <= 0 selects DefaultThreshold.
func Open(name string, threshold int64) (*Source, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	info, err := os.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, xlexerr.Wrap(xlexerr.FileNotFound, err, "bytesource: open %q", name)
		}
		if os.IsPermission(err) {
			return nil, xlexerr.Wrap(xlexerr.PermissionDenied, err, "bytesource: open %q", name)
		}
		return nil, xlexerr.Wrap(xlexerr.IO, err, "bytesource: stat %q", name)
	}

	if info.Size() > threshold {
		ra, err := mmap.Open(name)
		if err != nil {
			// Mapping failure is reported with no source chain (spec.md
			// §4.C): the underlying syscall error is not meaningful to a
			// caller beyond "I/O failed establishing the map".
			return nil, xlexerr.New(xlexerr.IO, "bytesource: mmap %q failed", name)
		}
		return &Source{closer: ra, ra: ra}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		if os.IsPermission(err) {
			return nil, xlexerr.Wrap(xlexerr.PermissionDenied, err, "bytesource: open %q", name)
		}
		return nil, xlexerr.Wrap(xlexerr.IO, err, "bytesource: open %q", name)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, xlexerr.Wrap(xlexerr.IO, err, "bytesource: read %q", name)
	}
	return &Source{data: data}, nil
}

// FromReader reads r to end into a heap buffer (spec.md §4.C: "from
// arbitrary byte streams, read-to-end into a buffer").
func FromReader(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xlexerr.Wrap(xlexerr.IO, err, "bytesource: read from reader")
	}
	return &Source{data: data}, nil
}

// FromBytes wraps an already-in-memory buffer with no copy, used by tests
// and by callers who already hold the full workbook bytes.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// byteReaderAt adapts a byte slice to io.ReaderAt.
type byteReaderAt []byte

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, xlexerr.New(xlexerr.IO, "bytesource: ReadAt offset %d out of range", off)
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
