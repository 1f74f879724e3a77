package packet

import "encoding/binary"

// Cursor is an explicit write offset into a Buffer, replacing the
// original's tagged pointer-width union (byte_ptr/word_ptr/dword_ptr/...)
// with methods that advance an int offset. All on-wire fields are network
// (big-endian) order.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor starts a Cursor at off within buf.
func NewCursor(buf []byte, off int) *Cursor {
	return &Cursor{buf: buf, off: off}
}

// Offset returns the current write position.
func (c *Cursor) Offset() int { return c.off }

// Skip advances the cursor by n bytes without writing (used for header
// regions a sub-builder fills in directly via a typed overlay).
func (c *Cursor) Skip(n int) { c.off += n }

// PutU8 writes a single byte and advances by 1.
func (c *Cursor) PutU8(v uint8) {
	c.buf[c.off] = v
	c.off++
}

// PutU16 writes a big-endian uint16 and advances by 2.
func (c *Cursor) PutU16(v uint16) {
	binary.BigEndian.PutUint16(c.buf[c.off:c.off+2], v)
	c.off += 2
}

// PutU32 writes a big-endian uint32 and advances by 4.
func (c *Cursor) PutU32(v uint32) {
	binary.BigEndian.PutUint32(c.buf[c.off:c.off+4], v)
	c.off += 4
}

// PutBytes copies b verbatim and advances by len(b).
func (c *Cursor) PutBytes(b []byte) {
	copy(c.buf[c.off:c.off+len(b)], b)
	c.off += len(b)
}

// PutRandom writes n freshly-drawn random bytes and advances by n -- the
// cursor-based equivalent of the original's `*buffer.byte_ptr++ = RANDOM()`
// loops used for auth trailers and bogus payloads.
func (c *Cursor) PutRandom(src *Source, n int) {
	for i := 0; i < n; i++ {
		c.buf[c.off+i] = src.Uint8()
	}
	c.off += n
}
