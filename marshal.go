package ssds

import (
	"bytes"
	"io"

	intr "github.com/dadrian/ssds/internal"
)

// Marshal runs fn against a Writer over an in-memory buffer and returns the
// bytes it wrote.
func Marshal(fn func(*Writer) error, opts ...Option) ([]byte, error) {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	w := NewWriter(buf, opts...)
	defer w.Release()
	if err := fn(w); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// ReadAll decodes every record of r.
func ReadAll(r io.Reader, opts ...Option) ([]Record, error) {
	rd := NewReader(r, opts...)
	defer rd.Release()
	var out []Record
	for rec, err := range rd.Records() {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Unmarshal decodes every record of data.
func Unmarshal(data []byte, opts ...Option) ([]Record, error) {
	return ReadAll(bytes.NewReader(data), opts...)
}
