package internal

import (
	"errors"
	"math"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Length-delimited payloads: a varint32 byte count followed by the bytes.

// MaxLen is the largest length a varint32 prefix can carry.
const MaxLen = math.MaxUint32

var (
	ErrInvalidUTF8    = errors.New("invalid utf-8")
	ErrLengthOverflow = errors.New("length exceeds limit")
)

// AppendBytes appends a length-delimited byte payload.
func AppendBytes(b, v []byte) []byte { return protowire.AppendBytes(b, v) }

// AppendString appends a length-delimited UTF-8 payload. The caller checks
// validity.
func AppendString(b []byte, s string) []byte { return protowire.AppendString(b, s) }

// ReadBytes reads a length-delimited payload of at most limit bytes. The
// limit is checked before anything is allocated.
func (s *Source) ReadBytes(limit int) ([]byte, error) {
	n, err := s.ReadVarint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(limit) {
		return nil, ErrLengthOverflow
	}
	buf := make([]byte, n)
	if err := s.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadString reads a length-delimited payload and validates it as UTF-8.
func (s *Source) ReadString(limit int) (string, error) {
	buf, err := s.ReadBytes(limit)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}
