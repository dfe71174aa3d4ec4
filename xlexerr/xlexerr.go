// Package xlexerr defines the stable, three-digit error taxonomy that every
// go-xlex operation surfaces at its boundary (spec.md §6/§7). Codes are a
// breaking-change contract: do not renumber or reorder them.
package xlexerr

import "fmt"

// Code is one of the fixed three-digit error codes in the taxonomy.
type Code string

// The error taxonomy. Grouped exactly as spec.md §6 groups them.
const (
	FileNotFound      Code = "E001"
	FileExists        Code = "E002"
	PermissionDenied  Code = "E003"
	InvalidExtension  Code = "E004"
	IO                Code = "E005"
	ParseError        Code = "E010"
	InvalidZip        Code = "E011"
	MissingEntry      Code = "E012"
	InvalidXML        Code = "E013"
	Encoding          Code = "E014"
	InvalidReference  Code = "E020"
	InvalidRange      Code = "E021"
	ReferenceOOB      Code = "E022"
	SheetNotFound     Code = "E030"
	SheetExists       Code = "E031"
	InvalidSheetName  Code = "E032"
	SheetIndexOOB     Code = "E033"
	CannotDeleteLast  Code = "E034"
	InvalidCellValue  Code = "E040"
	InvalidStyleRef   Code = "E041"
	InvalidComment    Code = "E042"
	InvalidHyperlink  Code = "E043"
	InvalidStyle      Code = "E050"
	StyleNotFound     Code = "E051"
	InvalidOperation  Code = "E060"
	UnsupportedOp     Code = "E061"
	ConcurrentModify  Code = "E062"
	TemplateNotFound  Code = "E070"
	InvalidTemplate   Code = "E071"
	TemplateRenderErr Code = "E072"
	InvalidConfig     Code = "E080"
	MissingConfig     Code = "E081"
	Internal          Code = "E090"
	NotImplemented    Code = "E099"
)

// Error is the concrete carrier for the taxonomy. It implements error and
// Unwrap, so callers may use errors.Is/errors.As against the wrapped cause
// while CLI/server front ends (out of this module's scope) can type-assert
// *Error and read Code for the numeric exit status spec.md §7 describes.
type Error struct {
	Code    Code
	Message string
	Cause   error // nil when there is no underlying cause to chain
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no chained cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that chains cause via Unwrap.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error, otherwise
// returns Internal. Front ends use this to compute the process exit status.
func CodeOf(err error) Code {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return CodeOf(u.Unwrap())
	}
	return Internal
}
