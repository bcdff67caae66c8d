package schema

// Type is the value-type byte written in schema records.
type Type byte

const (
	Bool    Type = 'b'
	Enum    Type = 'e'
	Uint32  Type = 'i'
	Uint64  Type = 'j'
	Sint32  Type = 'u'
	Sint64  Type = 'v'
	Fixed32 Type = 'q'
	Fixed64 Type = 'r'
	Single  Type = 'f'
	Double  Type = 'd'
	String  Type = 's'
	Bytes   Type = 'a'
	Struct  Type = 'm'
)

var typeLabels = map[Type]string{
	Bool:    "boolean",
	Enum:    "enum",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Sint32:  "sint32",
	Sint64:  "sint64",
	Fixed32: "fixed32",
	Fixed64: "fixed64",
	Single:  "single",
	Double:  "double",
	String:  "string",
	Bytes:   "bytes",
	Struct:  "struct",
}

var labelTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeLabels)+1)
	for t, l := range typeLabels {
		m[l] = t
	}
	m["bool"] = Bool
	return m
}()

// Valid reports whether t is one of the known value types.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// String returns the label of t, e.g. "uint32".
func (t Type) String() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return "unknown"
}

// IsGroupKind reports whether t may be the kind of a group.
func (t Type) IsGroupKind() bool { return t == Struct || t == Enum }

// ParseType maps a label back to its Type. "bool" is accepted as an alias of
// "boolean".
func ParseType(label string) (Type, bool) {
	t, ok := labelTypes[label]
	return t, ok
}
