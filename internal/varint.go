package internal

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	MaxVarintLen32 = 5
	MaxVarintLen64 = 10
)

// ErrMalformedVarint is returned when a varint does not terminate within its
// maximum length or overflows its width.
var ErrMalformedVarint = errors.New("malformed varint")

// AppendVarint appends v as a minimal little-endian base-128 varint.
func AppendVarint(b []byte, v uint64) []byte { return protowire.AppendVarint(b, v) }

// SizeVarint returns the number of bytes AppendVarint uses for v.
func SizeVarint(v uint64) int { return protowire.SizeVarint(v) }

// AppendZigZag32 appends v zigzag mapped and varint encoded.
func AppendZigZag32(b []byte, v int32) []byte {
	return protowire.AppendVarint(b, uint64(ZigZag32(v)))
}

// AppendZigZag64 appends v zigzag mapped and varint encoded.
func AppendZigZag64(b []byte, v int64) []byte {
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}

// ZigZag32 maps a signed 32-bit value onto an unsigned one so that small
// magnitudes stay small: (v << 1) ^ (v >> 31).
func ZigZag32(v int32) uint32 { return uint32(protowire.EncodeZigZag(int64(v))) }

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(n uint32) int32 { return int32(protowire.DecodeZigZag(uint64(n))) }

// ZigZag64 is the 64-bit counterpart of ZigZag32.
func ZigZag64(v int64) uint64 { return protowire.EncodeZigZag(v) }

// UnZigZag64 inverts ZigZag64.
func UnZigZag64(n uint64) int64 { return protowire.DecodeZigZag(n) }

// DecodeVarint decodes a varint of at most maxLen bytes from the start of
// src and returns the value and the number of bytes used. An unterminated or
// overflowing sequence is ErrMalformedVarint.
func DecodeVarint(src []byte, maxLen int) (uint64, int, error) {
	if len(src) > maxLen {
		src = src[:maxLen]
	}
	v, n := protowire.ConsumeVarint(src)
	if n < 0 {
		return 0, 0, ErrMalformedVarint
	}
	if maxLen == MaxVarintLen32 && v > math.MaxUint32 {
		return 0, 0, ErrMalformedVarint
	}
	return v, n, nil
}
