package ssds

import (
	"errors"
	"fmt"
	"io"

	intr "github.com/dadrian/ssds/internal"
	"github.com/dadrian/ssds/schema"
)

// ErrorKind classifies stream errors. Every kind is itself an error so that
// errors.Is(err, ErrTruncatedStream) matches any *Error of that kind.
type ErrorKind int

const (
	ErrSchemaConflict ErrorKind = iota + 1
	ErrMalformedVarint
	ErrTruncatedStream
	ErrUnknownWireType
	ErrUnknownSchemaRecordKind
	ErrUnresolvedReference
	ErrInvalidTextEncoding
	ErrUsage
	ErrWireTypeMismatch
	ErrUnbalancedGroups
	ErrLengthOverflow
)

var kindNames = [...]string{
	ErrSchemaConflict:          "schema conflict",
	ErrMalformedVarint:         "malformed varint",
	ErrTruncatedStream:         "truncated stream",
	ErrUnknownWireType:         "unknown wire type",
	ErrUnknownSchemaRecordKind: "unknown schema record kind",
	ErrUnresolvedReference:     "unresolved reference",
	ErrInvalidTextEncoding:     "invalid text encoding",
	ErrUsage:                   "usage error",
	ErrWireTypeMismatch:        "wire type mismatch",
	ErrUnbalancedGroups:        "unbalanced groups",
	ErrLengthOverflow:          "length overflow",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) Error() string { return "ssds: " + k.String() }

// Error carries the stream offset and classification of a failure. Err holds
// the underlying cause, if any.
type Error struct {
	Offset int64
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	detail := e.Detail
	if e.Err != nil {
		if detail == "" {
			detail = e.Err.Error()
		} else {
			detail += ": " + e.Err.Error()
		}
	}
	if e.Offset > 0 {
		return fmt.Sprintf("ssds: %s at %d: %s", e.Kind.String(), e.Offset, detail)
	}
	return fmt.Sprintf("ssds: %s: %s", e.Kind.String(), detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is e's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, off int64, format string, args ...any) *Error {
	return &Error{Offset: off, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func usageError(format string, args ...any) *Error {
	return &Error{Kind: ErrUsage, Detail: fmt.Sprintf(format, args...)}
}

// classify turns errors from the internal codec, the registry and the
// transport into *Error values.
func classify(err error, off int64) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var se *schema.Error
	if errors.As(err, &se) {
		kind := ErrSchemaConflict
		if se.Kind == schema.Unresolved {
			kind = ErrUnresolvedReference
		}
		return &Error{Offset: off, Kind: kind, Err: se}
	}
	switch {
	case errors.Is(err, intr.ErrMalformedVarint):
		return &Error{Offset: off, Kind: ErrMalformedVarint, Err: err}
	case errors.Is(err, intr.ErrLengthOverflow):
		return &Error{Offset: off, Kind: ErrLengthOverflow, Err: err}
	case errors.Is(err, intr.ErrInvalidUTF8):
		return &Error{Offset: off, Kind: ErrInvalidTextEncoding, Err: err}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Offset: off, Kind: ErrTruncatedStream, Detail: "stream ended inside a record"}
	default:
		return &Error{Offset: off, Kind: ErrTruncatedStream, Detail: "transport read failed", Err: err}
	}
}
