package internal

import (
	"bytes"
	"sync"
)

// maxPooled keeps one large stream from pinning its buffer in the pool.
const maxPooled = 1 << 16

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	b := bufPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// PutBuffer returns b to the pool. b must not be used afterwards.
func PutBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooled {
		return
	}
	bufPool.Put(b)
}
