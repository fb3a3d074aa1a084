package config

import (
	"encoding/hex"
	"errors"
	"flag"
	"os"
)

// ErrInvalidSeed is returned when a seed is not valid hex.
var ErrInvalidSeed = errors.New("invalid seed hex string")

// DecodeSeed decodes a hex seed. ASCII whitespace is allowed around and
// between byte pairs, but not inside one. The result is never nil, so an
// empty string is the empty explicit seed.
func DecodeSeed(s string) ([]byte, error) {
	seed := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); {
		if isSpace(s[i]) {
			i++
			continue
		}
		if i+2 > len(s) {
			return nil, ErrInvalidSeed
		}
		b, err := hex.DecodeString(s[i : i+2])
		if err != nil {
			return nil, ErrInvalidSeed
		}
		seed = append(seed, b...)
		i += 2
	}
	return seed, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// SeedGiven reports whether a seed was supplied through envKey or the
// "seed" flag of the parsed set fs.
func SeedGiven(fs *flag.FlagSet, envKey string) bool {
	_, given := os.LookupEnv(envKey)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			given = true
		}
	})
	return given
}
