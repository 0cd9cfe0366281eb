package wire

import "encoding/binary"

// cursor is a bounds-checked reader over a single datagram. It never
// mutates the underlying slice and never panics: every read that would
// run past the end of the datagram returns a Truncated ParseError naming
// the section under decode.
//
// Absolute reads (peekU8/seek) exist alongside the advancing reads
// because name decoding must be able to jump to and read from an
// earlier offset (a compression pointer target) without losing its
// place in the section currently being decoded.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) len() int { return len(c.data) }

func (c *cursor) offset() int { return c.pos }

func (c *cursor) seek(off int) {
	c.pos = off
}

// readU8 advances the cursor by one byte.
func (c *cursor) readU8(section string) (byte, error) {
	if c.pos+1 > len(c.data) {
		return 0, truncated(section, 1, len(c.data)-c.pos)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// readU16 advances the cursor by two bytes, big-endian.
func (c *cursor) readU16(section string) (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, truncated(section, 2, len(c.data)-c.pos)
	}
	v := binary.BigEndian.Uint16(c.data[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// readU32 advances the cursor by four bytes, big-endian.
func (c *cursor) readU32(section string) (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, truncated(section, 4, len(c.data)-c.pos)
	}
	v := binary.BigEndian.Uint32(c.data[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// readN advances the cursor by n bytes and returns a copy of them (the
// owning shape chosen in SPEC_FULL.md §9: callers retain these slices
// independent of the input datagram's lifetime).
func (c *cursor) readN(section string, n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		have := len(c.data) - c.pos
		if have < 0 {
			have = 0
		}
		return nil, truncated(section, n, have)
	}
	out := make([]byte, n)
	copy(out, c.data[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// peekU8 reads one byte at an absolute offset without moving the cursor.
func (c *cursor) peekU8(off int, section string) (byte, error) {
	if off < 0 || off+1 > len(c.data) {
		return 0, truncated(section, 1, len(c.data)-off)
	}
	return c.data[off], nil
}
