package internal

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedLayout(t *testing.T) {
	b := AppendFixed32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)

	b = AppendFixed64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, b)
}

func TestFixedRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x7fffffff, math.MaxUint32} {
		s := NewSource(bytes.NewReader(AppendFixed32(nil, v)))
		got, err := s.ReadFixed32()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.EqualValues(t, 4, s.Offset())
	}
	for _, v := range []uint64{0, 1, math.MaxInt64, math.MaxUint64} {
		s := NewSource(bytes.NewReader(AppendFixed64(nil, v)))
		got, err := s.ReadFixed64()
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestFloatBitPatterns(t *testing.T) {
	singles := []float32{0, float32(math.Copysign(0, -1)), 1.5, math.MaxFloat32, math.SmallestNonzeroFloat32,
		float32(math.Inf(1)), float32(math.Inf(-1)), math.Float32frombits(0x7fc00001)}
	for _, v := range singles {
		s := NewSource(bytes.NewReader(AppendSingle(nil, v)))
		got, err := s.ReadSingle()
		require.NoError(t, err)
		require.Equal(t, math.Float32bits(v), math.Float32bits(got))
	}
	doubles := []float64{0, math.Copysign(0, -1), -2.25, math.MaxFloat64, math.Inf(1), math.Inf(-1),
		math.NaN(), math.Float64frombits(0x7ff8000000000abc)}
	for _, v := range doubles {
		s := NewSource(bytes.NewReader(AppendDouble(nil, v)))
		got, err := s.ReadDouble()
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got))
	}
}

func TestFixedShortRead(t *testing.T) {
	s := NewSource(bytes.NewReader([]byte{1, 2, 3}))
	_, err := s.ReadFixed32()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
