package internal

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Fixed-width values are raw little-endian. Floats travel as their IEEE-754
// bit patterns so NaN payloads and signed zeros survive.

func AppendFixed32(b []byte, v uint32) []byte { return protowire.AppendFixed32(b, v) }
func AppendFixed64(b []byte, v uint64) []byte { return protowire.AppendFixed64(b, v) }

func AppendSingle(b []byte, v float32) []byte {
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func AppendDouble(b []byte, v float64) []byte {
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// ReadFixed32 reads four little-endian bytes.
func (s *Source) ReadFixed32() (uint32, error) {
	var buf [4]byte
	if err := s.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	v, _ := protowire.ConsumeFixed32(buf[:])
	return v, nil
}

// ReadFixed64 reads eight little-endian bytes.
func (s *Source) ReadFixed64() (uint64, error) {
	var buf [8]byte
	if err := s.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	v, _ := protowire.ConsumeFixed64(buf[:])
	return v, nil
}

func (s *Source) ReadSingle() (float32, error) {
	v, err := s.ReadFixed32()
	return math.Float32frombits(v), err
}

func (s *Source) ReadDouble() (float64, error) {
	v, err := s.ReadFixed64()
	return math.Float64frombits(v), err
}
