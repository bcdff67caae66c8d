package ssds

// Record is one decoded data or control record.
//
// For start and end records Type is TypeStruct, Isa names the struct group
// and Value is nil. For enum fields Isa names the enum group.
type Record struct {
	Kind  RecordKind
	Name  string
	ID    uint32
	Level int
	Type  ValueType
	Isa   string
	Value Value
}

// IsStart reports whether r opens a group.
func (r Record) IsStart() bool { return r.Kind == StartRecord }

// IsEnd reports whether r closes a group.
func (r Record) IsEnd() bool { return r.Kind == EndRecord }

// TypeName is "start_group" or "end_group" for delimiters and the value
// type label, e.g. "uint32", for fields.
func (r Record) TypeName() string {
	if r.Kind != FieldRecord {
		return r.Kind.String()
	}
	return r.Type.String()
}
