package paracletic

import (
	"encoding/binary"
	"math"
)

const (
	// jitterScale scales the key-derived jitter added on every step.
	jitterScale = 1e-9

	// noiseScale scales the seed-derived noise of the initial state.
	noiseScale = 1e-3

	// stateBytes is the size of a serialized state vector.
	stateBytes = Dim * 8
)

// enabledDims are the only dimensions that survive masking.
var enabledDims = [...]int{0, 4, 7}

// newMask returns the enable mask, true only at enabledDims.
func newMask() [Dim]bool {
	var m [Dim]bool
	for _, i := range enabledDims {
		m[i] = true
	}
	return m
}

// applyMask multiplies x by 1 at enabled dimensions and by 0 elsewhere.
// Negative values masked out become -0.
func applyMask(x Vector, mask [Dim]bool) Vector {
	for i := range x {
		w := 0.0
		if mask[i] {
			w = 1.0
		}
		x[i] *= w
	}
	return x
}

// digestVector maps a digest onto a vector: each 4-byte big-endian chunk
// becomes a value in [-1, 1), then the whole vector is scaled. Chunks that
// would run past the end of d wrap around to its start.
func digestVector(d []byte, scale float64) Vector {
	var out Vector
	var chunk [4]byte
	for i := range out {
		off := (i * 4) % len(d)
		for j := range chunk {
			chunk[j] = d[(off+j)%len(d)]
		}
		v := float64(binary.BigEndian.Uint32(chunk[:]))
		u := float64(float64(v/(1<<32))*2) - 1
		out[i] = float64(u * scale)
	}
	return out
}

// serialize encodes x as consecutive big-endian IEEE-754 doubles.
func serialize(x Vector) []byte {
	b := make([]byte, stateBytes)
	for i, v := range x {
		binary.BigEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

// Advance performs exactly one step of the state engine: mask, run the
// pipeline, add key-derived jitter, renormalize, re-key and count.
func (g *Generator) Advance() {
	ctr := g.ctr.bytes()

	next := Pipeline(applyMask(g.state, g.mask))

	mix := g.suite.Sum512(g.key[:], ctr)
	jitter := digestVector(mix[:], jitterScale)
	for i := range next {
		next[i] += jitter[i]
	}

	if norm := l1(next); norm > eps {
		for i := range next {
			next[i] /= norm
		}
	}
	g.state = next

	g.key = g.suite.Sum256(g.key[:], serialize(g.state), ctr)
	g.ctr.inc()
}
