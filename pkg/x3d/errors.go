package x3d

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRoot is returned when the document has no element to decode.
	ErrNoRoot = errors.New("x3d: no document root")

	// ErrStructuralAbsence reports a missing child element required to build
	// meaningful content; a placeholder is produced instead.
	ErrStructuralAbsence = errors.New("x3d: required element missing")

	// ErrReferenceNotFound reports a USE label that resolved in neither the
	// current pass nor the host scene; no object is produced for it.
	ErrReferenceNotFound = errors.New("x3d: reference not found")

	// ErrUnsupportedReuse reports USE on an element that cannot be aliased, or
	// a reference that resolved to an object of the wrong kind.
	ErrUnsupportedReuse = errors.New("x3d: unsupported reuse")

	// ErrSizeMismatch reports parallel arrays of unequal length; the shorter
	// length is used.
	ErrSizeMismatch = errors.New("x3d: size mismatch")

	// ErrInvalidIndex reports an index outside its array; the affected
	// primitive is dropped.
	ErrInvalidIndex = errors.New("x3d: index out of range")
)

// Diagnostic is a recoverable condition met while decoding. It unwraps to
// one of the sentinel errors above.
type Diagnostic struct {
	Err    error
	Node   string
	Line   int
	Label  string
	Detail string
}

func (d *Diagnostic) Error() string {
	msg := d.Err.Error()
	if d.Node != "" {
		msg = fmt.Sprintf("%s (<%s> line %d)", msg, d.Node, d.Line)
	}
	if d.Label != "" {
		msg += fmt.Sprintf(" %q", d.Label)
	}
	if d.Detail != "" {
		msg += ": " + d.Detail
	}
	return msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Err
}
