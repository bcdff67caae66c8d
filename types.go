package ssds

import (
	intr "github.com/dadrian/ssds/internal"
	"github.com/dadrian/ssds/schema"
)

// RootGroup is the name of the group the Writer creates for top level
// fields. It doubles as the format version.
const RootGroup = "ssds0"

// ValueType is the value-type byte of an item.
type ValueType = schema.Type

const (
	TypeBool    = schema.Bool
	TypeEnum    = schema.Enum
	TypeUint32  = schema.Uint32
	TypeUint64  = schema.Uint64
	TypeSint32  = schema.Sint32
	TypeSint64  = schema.Sint64
	TypeFixed32 = schema.Fixed32
	TypeFixed64 = schema.Fixed64
	TypeSingle  = schema.Single
	TypeDouble  = schema.Double
	TypeString  = schema.String
	TypeBytes   = schema.Bytes
	TypeStruct  = schema.Struct
)

// RecordKind distinguishes data records from group delimiters.
type RecordKind uint8

const (
	FieldRecord RecordKind = iota
	StartRecord
	EndRecord
)

func (k RecordKind) String() string {
	switch k {
	case FieldRecord:
		return "field"
	case StartRecord:
		return "start_group"
	case EndRecord:
		return "end_group"
	default:
		return "unknown"
	}
}

// wireTypeOf is the wire type a value of type t travels with.
func wireTypeOf(t ValueType) intr.WireType {
	switch t {
	case TypeFixed32, TypeSingle:
		return intr.WireFixed32
	case TypeFixed64, TypeDouble:
		return intr.WireFixed64
	case TypeString, TypeBytes:
		return intr.WireBytes
	case TypeStruct:
		return intr.WireStartGroup
	default:
		return intr.WireVarint
	}
}
