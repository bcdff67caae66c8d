package schema

import "fmt"

// ErrorKind classifies registry errors.
type ErrorKind int

const (
	// Conflict is a redeclaration that disagrees with the existing entry.
	Conflict ErrorKind = iota + 1
	// Unresolved is a reference to a group or item that was never declared.
	Unresolved
	// Invalid is a declaration that can never be valid.
	Invalid
)

func (k ErrorKind) String() string {
	switch k {
	case Conflict:
		return "conflict"
	case Unresolved:
		return "unresolved"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is returned by all Registry operations.
type Error struct {
	Kind   ErrorKind
	Group  string
	Item   string
	Detail string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Item != "" {
		return fmt.Sprintf("schema: %v: %s.%s: %s", e.Kind, e.Group, e.Item, e.Detail)
	}
	return fmt.Sprintf("schema: %v: %s: %s", e.Kind, e.Group, e.Detail)
}

func errorf(kind ErrorKind, group, item, format string, args ...any) *Error {
	return &Error{Kind: kind, Group: group, Item: item, Detail: fmt.Sprintf(format, args...)}
}
