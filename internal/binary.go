package internal

import (
	"io"
)

// Source is the read side of the byte transport. It reads only what the
// current record needs and counts consumed bytes.
type Source struct {
	r   io.Reader
	br  io.ByteReader
	off int64
	one [1]byte
}

// NewSource wraps r. If r also implements io.ByteReader it is used for
// single byte reads.
func NewSource(r io.Reader) *Source {
	s := &Source{r: r}
	if br, ok := r.(io.ByteReader); ok {
		s.br = br
	}
	return s
}

// Offset returns the number of bytes consumed so far.
func (s *Source) Offset() int64 { return s.off }

// ReadByte returns io.EOF only if the transport is exhausted.
func (s *Source) ReadByte() (byte, error) {
	if s.br != nil {
		b, err := s.br.ReadByte()
		if err != nil {
			return 0, err
		}
		s.off++
		return b, nil
	}
	n, err := ReadFull(s.r, s.one[:])
	if n == 1 {
		s.off++
		return s.one[0], nil
	}
	return 0, err
}

// ReadFull fills buf. A short read is io.ErrUnexpectedEOF even when the
// transport reported a plain io.EOF.
func (s *Source) ReadFull(buf []byte) error {
	n, err := ReadFull(s.r, buf)
	s.off += int64(n)
	if err == io.EOF && len(buf) > 0 {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadUvarint reads a varint of at most maxLen bytes. io.EOF is returned only
// when not a single byte could be read.
func (s *Source) ReadUvarint(maxLen int) (uint64, error) {
	var buf [MaxVarintLen64]byte
	for i := 0; i < maxLen; i++ {
		b, err := s.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		buf[i] = b
		if b < 0x80 {
			v, _, err := DecodeVarint(buf[:i+1], maxLen)
			return v, err
		}
	}
	return 0, ErrMalformedVarint
}

// ReadVarint32 reads a varint of at most five bytes that fits 32 bits.
func (s *Source) ReadVarint32() (uint32, error) {
	v, err := s.ReadUvarint(MaxVarintLen32)
	return uint32(v), err
}

// ReadVarint64 reads a varint of at most ten bytes.
func (s *Source) ReadVarint64() (uint64, error) {
	return s.ReadUvarint(MaxVarintLen64)
}

// ReadFull reads len(buf) bytes from r and returns how many arrived. Unlike
// io.ReadFull it reports a reader that makes no progress as
// io.ErrUnexpectedEOF instead of spinning.
func ReadFull(r io.Reader, buf []byte) (int, error) {
	var off int
	for off < len(buf) {
		n, err := r.Read(buf[off:])
		if n > 0 {
			off += n
		}
		if err != nil {
			if off == len(buf) {
				return off, nil
			}
			return off, err
		}
		if n == 0 {
			return off, io.ErrUnexpectedEOF
		}
	}
	return off, nil
}
