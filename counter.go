package paracletic

import (
	"encoding/binary"
	"math/bits"
)

// counter is a 128-bit unsigned step counter. It wraps modulo 2^128.
type counter struct {
	hi, lo uint64
}

func (c *counter) inc() {
	var carry uint64
	c.lo, carry = bits.Add64(c.lo, 1, 0)
	c.hi += carry
}

// bytes returns the 16-byte big-endian encoding of the counter.
func (c counter) bytes() []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b[:8], c.hi)
	binary.BigEndian.PutUint64(b[8:], c.lo)
	return b
}
