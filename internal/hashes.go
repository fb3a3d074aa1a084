// Package internal provides the hash and entropy primitives behind the
// paracletic generator. It wraps crypto/*, golang.org/x/crypto and
// github.com/zeebo/blake3.
package internal

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Suite is a pair of hash primitives: a 256-bit digest used for keying and
// block output, and a wider 512-bit digest used for jitter and noise.
// Each call hashes the concatenation of parts.
type Suite interface {
	Name() string
	Sum256(parts ...[]byte) [32]byte
	Sum512(parts ...[]byte) [64]byte
}

// Suites in their stable order.
var (
	SHA2    Suite = sha2Suite{}
	BLAKE2b Suite = blake2bSuite{}
	BLAKE3  Suite = blake3Suite{}
)

func writeAll(h hash.Hash, parts [][]byte) {
	for _, p := range parts {
		h.Write(p)
	}
}

type sha2Suite struct{}

func (sha2Suite) Name() string { return "sha2" }

func (sha2Suite) Sum256(parts ...[]byte) (out [32]byte) {
	h := sha256.New()
	writeAll(h, parts)
	h.Sum(out[:0])
	return out
}

func (sha2Suite) Sum512(parts ...[]byte) (out [64]byte) {
	h := sha512.New()
	writeAll(h, parts)
	h.Sum(out[:0])
	return out
}

type blake2bSuite struct{}

func (blake2bSuite) Name() string { return "blake2b" }

// newBlake2b returns an unkeyed Blake2b hasher of the given output size.
func newBlake2b(size int) hash.Hash {
	h, err := blake2b.New(size, nil)
	if err != nil {
		// Unkeyed 32 and 64 byte outputs are always valid.
		panic("internal: blake2b: " + err.Error())
	}
	return h
}

func (blake2bSuite) Sum256(parts ...[]byte) (out [32]byte) {
	h := newBlake2b(blake2b.Size256)
	writeAll(h, parts)
	h.Sum(out[:0])
	return out
}

func (blake2bSuite) Sum512(parts ...[]byte) (out [64]byte) {
	h := newBlake2b(blake2b.Size)
	writeAll(h, parts)
	h.Sum(out[:0])
	return out
}

type blake3Suite struct{}

func (blake3Suite) Name() string { return "blake3" }

func (blake3Suite) Sum256(parts ...[]byte) (out [32]byte) {
	h := blake3.New()
	writeAll(h, parts)
	h.Sum(out[:0])
	return out
}

// Sum512 reads 64 bytes of BLAKE3 extendable output.
func (blake3Suite) Sum512(parts ...[]byte) (out [64]byte) {
	h := blake3.New()
	writeAll(h, parts)
	h.Digest().Read(out[:])
	return out
}
