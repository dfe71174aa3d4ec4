// Package container validates that an opened ZIP archive is a usable OOXML
// package before any part-level parsing begins (spec.md §4.D).
package container

import (
	"archive/zip"
	"io"

	"github.com/TsubasaBE/go-xlex/xlexerr"
)

// requiredEntries are the parts every valid .xlsx package must contain.
// Their absence is distinguished from a malformed ZIP: a ZIP can open fine
// and simply not be a spreadsheet.
var requiredEntries = []string{
	"[Content_Types].xml",
	"xl/workbook.xml",
}

// Open reads a ZIP archive from ra/size and validates it as an OOXML
// package, returning the reader for part-level access (§4.H dispatches
// against the returned *zip.Reader).
func Open(ra io.ReaderAt, size int64) (*zip.Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, xlexerr.Wrap(xlexerr.InvalidZip, err, "container: malformed zip framing")
	}
	if err := Validate(zr); err != nil {
		return nil, err
	}
	return zr, nil
}

// Validate checks that zr contains every entry in requiredEntries,
// returning a distinct MissingEntry error naming the first one absent.
func Validate(zr *zip.Reader) error {
	present := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		present[f.Name] = true
	}
	for _, name := range requiredEntries {
		if !present[name] {
			return xlexerr.New(xlexerr.MissingEntry, "container: missing required entry %q", name)
		}
	}
	return nil
}

// Find returns the *zip.File with the given part name, or nil if absent.
func Find(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ReadPart reads the full contents of the named part.
func ReadPart(zr *zip.Reader, name string) ([]byte, error) {
	f := Find(zr, name)
	if f == nil {
		return nil, xlexerr.New(xlexerr.MissingEntry, "container: missing part %q", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, xlexerr.Wrap(xlexerr.InvalidZip, err, "container: open part %q", name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, xlexerr.Wrap(xlexerr.IO, err, "container: read part %q", name)
	}
	return data, nil
}
