// Package slicerr defines the error kinds surfaced by the slicer core.
package slicerr

import "fmt"

// Kind identifies one of the core's error categories.
type Kind int

const (
	// Malformed covers magic mismatch, wrong version, wrong sentinel,
	// preview dimension mismatch, delimiter mismatch, or inconsistent
	// section lengths.
	Malformed Kind = iota
	// Truncated covers a read past the end of the input buffer.
	Truncated
	// InvalidMesh covers an out-of-range face index, an empty mesh, or a
	// non-finite vertex.
	InvalidMesh
	// ConfigRange covers a non-positive slice height, zero resolution, or
	// a non-finite platform size.
	ConfigRange
	// Unsupported covers a requested container format this build does
	// not implement.
	Unsupported
	// IO covers an underlying read or write failure.
	IO
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed input"
	case Truncated:
		return "truncated input"
	case InvalidMesh:
		return "invalid mesh"
	case ConfigRange:
		return "config out of range"
	case Unsupported:
		return "unsupported format"
	case IO:
		return "io failure"
	default:
		return "unknown error"
	}
}

// Error is a core error tagged with a Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Msg }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, slicerr.New(slicerr.Malformed, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
