package internal

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagPacking(t *testing.T) {
	require.Equal(t, uint64(0x0B), FieldTag(1, WireStartGroup).Value())
	require.Equal(t, uint64(0x0E), SchemaTag(SchemaGroup).Value())
	require.Equal(t, uint64(0x16), SchemaTag(SchemaItem).Value())
	require.Equal(t, uint64(0x1E), SchemaTag(SchemaItemIsa).Value())

	for _, wt := range []WireType{WireVarint, WireFixed64, WireBytes, WireStartGroup, WireEndGroup, WireFixed32} {
		for _, id := range []uint32{1, 15, 16, 1000, MaxTagNum} {
			tag := FieldTag(id, wt)
			b := AppendTag(nil, tag)
			v, err := NewSource(bytes.NewReader(b)).ReadVarint32()
			require.NoError(t, err)
			got := ParseTag(v)
			require.Equal(t, tag, got)
			require.False(t, got.IsSchema())
		}
	}
}

func TestSchemaTagDiscriminant(t *testing.T) {
	tag := ParseTag(0x1E)
	require.True(t, tag.IsSchema())
	require.Equal(t, SchemaItemIsa, tag.SchemaKind())

	tag = ParseTag(0x0C)
	require.False(t, tag.IsSchema())
	require.Equal(t, WireEndGroup, tag.Wire)
	require.Equal(t, uint32(1), tag.Num)
}

func TestLengthDelimited(t *testing.T) {
	b := AppendString(nil, "hello")
	require.Equal(t, append([]byte{0x05}, "hello"...), b)

	s := NewSource(bytes.NewReader(b))
	got, err := s.ReadString(1 << 10)
	require.NoError(t, err)
	require.Equal(t, "hello", got)

	empty, err := NewSource(bytes.NewReader(AppendBytes(nil, []byte{}))).ReadBytes(10)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLengthDelimitedErrors(t *testing.T) {
	// declares ten bytes, carries four
	short := append([]byte{0x0a}, "abcd"...)
	_, err := NewSource(bytes.NewReader(short)).ReadBytes(1 << 10)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = NewSource(bytes.NewReader(AppendString(nil, "toolong"))).ReadString(3)
	require.ErrorIs(t, err, ErrLengthOverflow)

	bad := AppendBytes(nil, []byte{0xff, 0xfe})
	_, err = NewSource(bytes.NewReader(bad)).ReadString(10)
	require.ErrorIs(t, err, ErrInvalidUTF8)
}
