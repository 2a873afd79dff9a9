// Package strbuilder provides a growable byte buffer with formatted
// append, backed by valyala/bytebufferpool so a worker can pool and reuse
// one builder across requests instead of allocating a fresh buffer per
// response.
package strbuilder

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// Builder accumulates a response (or any wire-format payload) before a
// single write to the connection.
type Builder struct {
	buf *bytebufferpool.ByteBuffer
}

var pool bytebufferpool.Pool

// Get returns a Builder from the shared pool, empty and ready to use.
func Get() *Builder {
	return &Builder{buf: pool.Get()}
}

// Release returns the Builder's backing buffer to the pool. The Builder
// must not be used afterward.
func Release(b *Builder) {
	pool.Put(b.buf)
	b.buf = nil
}

// Reset empties the builder for reuse within the same worker without
// returning it to the pool.
func (b *Builder) Reset() {
	b.buf.Reset()
}

// AppendString appends s verbatim.
func (b *Builder) AppendString(s string) *Builder {
	b.buf.WriteString(s)
	return b
}

// AppendBytes appends p verbatim.
func (b *Builder) AppendBytes(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// AppendInt appends the base-10 representation of n.
func (b *Builder) AppendInt(n int) *Builder {
	b.buf.B = strconv.AppendInt(b.buf.B, int64(n), 10)
	return b
}

// AppendCRLF appends a single "\r\n".
func (b *Builder) AppendCRLF() *Builder {
	b.buf.WriteString("\r\n")
	return b
}

// Bytes returns the accumulated contents. The slice is only valid until
// the next Reset or Release.
func (b *Builder) Bytes() []byte {
	return b.buf.B
}

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int {
	return b.buf.Len()
}
