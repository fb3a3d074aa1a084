package internal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// OSEntropy is the operating system entropy source.
var OSEntropy io.Reader = rand.Reader

// ReadEntropy reads exactly n bytes from r.
func ReadEntropy(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		return nil, errors.New("nil entropy source")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %d entropy bytes: %w", n, err)
	}
	return buf, nil
}

// ChaChaReader streams the ChaCha20 keystream.
type ChaChaReader struct {
	cipher *chacha20.Cipher
}

// NewChaChaReader creates a keystream reader from a 32-byte key and a
// 12-byte nonce.
func NewChaChaReader(key, nonce []byte) (*ChaChaReader, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	return &ChaChaReader{cipher: c}, nil
}

// Read fills p with keystream bytes. It never fails.
func (r *ChaChaReader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// NewAuxEntropy returns a ChaCha20 keystream keyed by a fresh read from
// src. Bytes drawn from it are independent of any later reads from src.
func NewAuxEntropy(src io.Reader) (io.Reader, error) {
	seed, err := ReadEntropy(src, chacha20.KeySize+chacha20.NonceSize)
	if err != nil {
		return nil, err
	}
	return NewChaChaReader(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
}
