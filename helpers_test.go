package ssds

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// wire concatenates test stream fragments: ints, runes and bytes are
// single bytes, strings are copied raw, []byte is copied, ls(...) adds a length prefix.
func wire(parts ...any) []byte {
	var b []byte
	for _, p := range parts {
		switch p := p.(type) {
		case int:
			b = append(b, byte(p))
		case rune:
			b = append(b, byte(p))
		case byte:
			b = append(b, p)
		case []byte:
			b = append(b, p...)
		case string:
			b = append(b, p...)
		default:
			panic(fmt.Sprintf("wire: unsupported %T", p))
		}
	}
	return b
}

// ls is a length-prefixed short string.
func ls(s string) []byte { return append([]byte{byte(len(s))}, s...) }

func marshal(t *testing.T, fn func(*Writer) error, opts ...Option) []byte {
	t.Helper()
	b, err := Marshal(fn, opts...)
	require.NoError(t, err)
	return b
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
}

// errWriter fails every Write.
type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

// countingWriter records the size of every Write.
type countingWriter struct {
	bytes.Buffer
	writes []int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }

func ptr[T any](v T) *T { return &v }
