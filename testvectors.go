package paracletic

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// TestVector is a known-answer stream: the first Length bytes produced by a
// fresh generator built from Seed with the given hash suite.
type TestVector struct {
	Name     string `json:"name"`
	Hash     string `json:"hash"`
	SeedHex  string `json:"seed_hex"`
	Length   int    `json:"length"`
	Expected string `json:"expected"` // Hex-encoded expected stream
}

// TestVectorSuite contains all test vectors with metadata about their source.
type TestVectorSuite struct {
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Vectors     []TestVector `json:"vectors"`
}

// LoadTestVectors loads test vectors from a JSON file.
//
// This is used internally for testing but exported for external
// validation tools that want to check another build of the generator.
func LoadTestVectors(path string) (*TestVectorSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test vectors: %w", err)
	}

	var suite TestVectorSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse test vectors: %w", err)
	}

	return &suite, nil
}

// GetSeed returns the decoded explicit seed. An empty SeedHex yields the
// empty, non-nil seed.
func (tv *TestVector) GetSeed() ([]byte, error) {
	seed, err := hex.DecodeString(tv.SeedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seed hex: %w", err)
	}
	if seed == nil {
		seed = []byte{}
	}
	return seed, nil
}

// GetExpected returns the decoded expected stream.
func (tv *TestVector) GetExpected() ([]byte, error) {
	expected, err := hex.DecodeString(tv.Expected)
	if err != nil {
		return nil, fmt.Errorf("invalid expected stream: %w", err)
	}
	if len(expected) != tv.Length {
		return nil, fmt.Errorf("expected stream must be %d bytes, got %d", tv.Length, len(expected))
	}
	return expected, nil
}

// GetHash returns the hash suite of the vector.
func (tv *TestVector) GetHash() (HashSuite, error) {
	return ParseHashSuite(tv.Hash)
}

// Generator builds a fresh generator for the vector.
func (tv *TestVector) Generator() (*Generator, error) {
	seed, err := tv.GetSeed()
	if err != nil {
		return nil, err
	}
	h, err := tv.GetHash()
	if err != nil {
		return nil, err
	}
	return New(Config{Seed: seed, Hash: h})
}
