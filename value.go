package ssds

// Value is a decoded field value. It is one of Bool, Uint32, Uint64, Sint32,
// Sint64, Fixed32, Fixed64, Single, Double, String, Bytes or Enum.
type Value interface {
	Type() ValueType
	// Interface returns the value as a plain Go value.
	Interface() any
	isValue()
}

type (
	Bool    bool
	Uint32  uint32
	Uint64  uint64
	Sint32  int32
	Sint64  int64
	Fixed32 uint32
	Fixed64 uint64
	Single  float32
	Double  float64
	String  string
	Bytes   []byte
)

// Enum is an enum value: its ordinal on the wire and the name it resolves to
// in the enum group.
type Enum struct {
	Ordinal uint32
	Name    string
}

func (Bool) Type() ValueType    { return TypeBool }
func (Uint32) Type() ValueType  { return TypeUint32 }
func (Uint64) Type() ValueType  { return TypeUint64 }
func (Sint32) Type() ValueType  { return TypeSint32 }
func (Sint64) Type() ValueType  { return TypeSint64 }
func (Fixed32) Type() ValueType { return TypeFixed32 }
func (Fixed64) Type() ValueType { return TypeFixed64 }
func (Single) Type() ValueType  { return TypeSingle }
func (Double) Type() ValueType  { return TypeDouble }
func (String) Type() ValueType  { return TypeString }
func (Bytes) Type() ValueType   { return TypeBytes }
func (Enum) Type() ValueType    { return TypeEnum }

func (v Bool) Interface() any    { return bool(v) }
func (v Uint32) Interface() any  { return uint32(v) }
func (v Uint64) Interface() any  { return uint64(v) }
func (v Sint32) Interface() any  { return int32(v) }
func (v Sint64) Interface() any  { return int64(v) }
func (v Fixed32) Interface() any { return uint32(v) }
func (v Fixed64) Interface() any { return uint64(v) }
func (v Single) Interface() any  { return float32(v) }
func (v Double) Interface() any  { return float64(v) }
func (v String) Interface() any  { return string(v) }
func (v Bytes) Interface() any   { return []byte(v) }
func (v Enum) Interface() any    { return v.Name }

func (Bool) isValue()    {}
func (Uint32) isValue()  {}
func (Uint64) isValue()  {}
func (Sint32) isValue()  {}
func (Sint64) isValue()  {}
func (Fixed32) isValue() {}
func (Fixed64) isValue() {}
func (Single) isValue()  {}
func (Double) isValue()  {}
func (String) isValue()  {}
func (Bytes) isValue()   {}
func (Enum) isValue()    {}
