package paracletic

import (
	"encoding/hex"
	"fmt"
)

const (
	// BlockSize is the number of bytes produced per output block.
	BlockSize = 32

	// MaxFillLength is the largest number of bytes a single Fill, Read or
	// FillHex call returns.
	MaxFillLength = 1<<31 - BlockSize

	// dilution is the number of steps taken before each output block.
	dilution = 5
)

// Fill returns exactly n pseudorandom bytes. Each 32-byte block costs five
// steps of the state engine plus one counter increment; bytes of the last
// block beyond n are discarded, so Fill(a) followed by Fill(b) differs
// from Fill(a+b) unless a is a multiple of BlockSize.
func (g *Generator) Fill(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if n > MaxFillLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrLengthTooLarge, n, MaxFillLength)
	}

	out := make([]byte, 0, (n+BlockSize-1)/BlockSize*BlockSize)
	for len(out) < n {
		out = g.appendBlock(out)
	}
	return out[:n], nil
}

// appendBlock advances the state engine and appends one output block.
func (g *Generator) appendBlock(out []byte) []byte {
	for i := 0; i < dilution; i++ {
		g.Advance()
	}
	block := g.suite.Sum256(serialize(g.state), g.key[:], g.ctr.bytes())
	g.ctr.inc()

	g.log.V(2).Info("block emitted", "counterLo", g.ctr.lo)
	return append(out, block[:]...)
}

// Read fills p with pseudorandom bytes. It implements io.Reader and
// returns len(p), nil for any p up to MaxFillLength bytes. Each call
// behaves like Fill(len(p)).
func (g *Generator) Read(p []byte) (int, error) {
	buf, err := g.Fill(len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, buf), nil
}

// FillHex returns n pseudorandom bytes as a lowercase hex string.
func (g *Generator) FillHex(n int) (string, error) {
	buf, err := g.Fill(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
