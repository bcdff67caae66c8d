package internal

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// WireType is the low three bits of every tag.
type WireType int8

const (
	WireVarint     WireType = 0
	WireFixed64    WireType = 1
	WireBytes      WireType = 2
	WireStartGroup WireType = 3
	WireEndGroup   WireType = 4
	WireFixed32    WireType = 5
	WireSchema     WireType = 6
)

func (t WireType) String() string {
	switch t {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "length-delimited"
	case WireStartGroup:
		return "start-group"
	case WireEndGroup:
		return "end-group"
	case WireFixed32:
		return "fixed32"
	case WireSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// SchemaKind discriminates schema records. It occupies the id bits of a
// schema tag.
type SchemaKind uint32

const (
	SchemaGroup   SchemaKind = 1
	SchemaItem    SchemaKind = 2
	SchemaItemIsa SchemaKind = 3
)

// MaxTagNum is the largest id that fits a 32-bit tag.
const MaxTagNum = 1<<29 - 1

// Tag is a decoded tag. For schema tags Num holds a SchemaKind rather than an
// item id.
type Tag struct {
	Num  uint32
	Wire WireType
}

// FieldTag returns the tag of a data or control record for item id.
func FieldTag(id uint32, wt WireType) Tag { return Tag{Num: id, Wire: wt} }

// SchemaTag returns the tag of a schema record of the given kind.
func SchemaTag(k SchemaKind) Tag { return Tag{Num: uint32(k), Wire: WireSchema} }

// IsSchema reports whether t introduces a schema record.
func (t Tag) IsSchema() bool { return t.Wire == WireSchema }

// SchemaKind returns the schema record kind carried by a schema tag.
func (t Tag) SchemaKind() SchemaKind { return SchemaKind(t.Num) }

// Value packs t into its varint value.
func (t Tag) Value() uint64 {
	return protowire.EncodeTag(protowire.Number(t.Num), protowire.Type(t.Wire))
}

// ParseTag unpacks a tag value read as a 32-bit varint.
func ParseTag(v uint32) Tag {
	num, typ := protowire.DecodeTag(uint64(v))
	return Tag{Num: uint32(num), Wire: WireType(typ)}
}

// AppendTag appends the varint encoding of t.
func AppendTag(b []byte, t Tag) []byte {
	return protowire.AppendVarint(b, t.Value())
}
