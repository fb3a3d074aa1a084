// Package paracletic provides a seedable pseudorandom byte-stream generator
// built from a deterministic nonlinear vector transform whitened through
// cryptographic hash mixing.
//
// Each step masks a 12-dimensional state vector, runs it through seven
// fixed principles (Truth, Purity, Law, Love, Wisdom, Life, Glory), adds a
// tiny key-derived jitter, renormalizes, and ratchets the key forward by
// hashing it with the new state and a 128-bit counter. Output blocks are
// hashes of the state, key and counter taken every fifth step.
//
// The generator exists to produce large volumes of bytes for statistical
// randomness evaluation. It makes no cryptographic security claim.
//
// Example usage:
//
//	g, err := paracletic.NewSeeded([]byte("my seed"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, err := g.Fill(64)
//
// A Generator is not safe for concurrent use. To generate in parallel,
// create one independently seeded Generator per goroutine.
package paracletic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"

	"github.com/opd-ai/go-paracletic/internal"
)

var (
	// ErrNegativeLength is returned when a negative number of bytes is requested.
	ErrNegativeLength = errors.New("paracletic: negative length")

	// ErrLengthTooLarge is returned when more than MaxFillLength bytes are
	// requested at once.
	ErrLengthTooLarge = errors.New("paracletic: length too large")

	// ErrUnknownHashSuite is returned for an unrecognised hash suite.
	ErrUnknownHashSuite = errors.New("paracletic: unknown hash suite")

	// ErrEntropy is returned when an entropy source cannot be read.
	ErrEntropy = errors.New("paracletic: entropy source failure")
)

// HashSuite selects the hash primitives used for keying, jitter and output.
type HashSuite int

const (
	// SHA2 uses SHA-256 and SHA-512. It is the reference construction.
	SHA2 HashSuite = iota

	// BLAKE2b uses BLAKE2b-256 and BLAKE2b-512.
	BLAKE2b

	// BLAKE3 uses BLAKE3 with 32 and 64 bytes of output.
	BLAKE3
)

// String returns the name of the suite as accepted by ParseHashSuite.
func (h HashSuite) String() string {
	switch h {
	case SHA2:
		return "sha2"
	case BLAKE2b:
		return "blake2b"
	case BLAKE3:
		return "blake3"
	default:
		return fmt.Sprintf("HashSuite(%d)", h)
	}
}

// ParseHashSuite parses a suite name. Matching ignores case.
func ParseHashSuite(s string) (HashSuite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha2", "sha256", "":
		return SHA2, nil
	case "blake2b":
		return BLAKE2b, nil
	case "blake3":
		return BLAKE3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHashSuite, s)
	}
}

func (h HashSuite) suite() (internal.Suite, error) {
	switch h {
	case SHA2:
		return internal.SHA2, nil
	case BLAKE2b:
		return internal.BLAKE2b, nil
	case BLAKE3:
		return internal.BLAKE3, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownHashSuite, h)
	}
}

// Config specifies how a Generator is seeded.
type Config struct {
	// Seed is the explicit seed. A nil Seed requests fresh entropy; a
	// non-nil empty Seed is a valid explicit seed. Seeds shorter than 32
	// bytes are hashed, longer ones are used verbatim.
	Seed []byte

	// Hash selects the hash suite. The zero value is SHA2.
	Hash HashSuite

	// Entropy replaces the operating system entropy source when Seed is
	// nil. Defaults to crypto/rand.Reader.
	Entropy io.Reader

	// AuxEntropy replaces the auxiliary entropy source when Seed is nil.
	// Defaults to a ChaCha20 keystream keyed from a separate Entropy read.
	AuxEntropy io.Reader

	// Logger receives debug output. Defaults to logr.Discard().
	Logger logr.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.Hash.suite(); err != nil {
		return err
	}
	return nil
}

// Generator is a paracletic chaos generator. It exclusively owns its state
// vector, enable mask, key and counter, and is mutated by every call.
// It is not safe for concurrent use.
type Generator struct {
	state Vector
	mask  [Dim]bool
	key   [32]byte
	ctr   counter

	hash  HashSuite
	suite internal.Suite
	log   logr.Logger
}

// New creates a Generator with the specified configuration.
func New(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	suite, _ := config.Hash.suite()

	logger := config.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	material, err := seedMaterial(&config, suite)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		mask:  newMask(),
		hash:  config.Hash,
		suite: suite,
		log:   logger.WithName("paracletic"),
	}
	g.seed(material)

	g.log.V(1).Info("generator seeded",
		"explicitSeed", config.Seed != nil,
		"seedLen", len(config.Seed),
		"hash", suite.Name())

	return g, nil
}

// NewSeeded creates a SHA2 Generator from an explicit seed. A nil seed is
// treated as the empty seed, not as a request for entropy.
func NewSeeded(seed []byte) (*Generator, error) {
	if seed == nil {
		seed = []byte{}
	}
	return New(Config{Seed: seed})
}

// NewRandom creates a SHA2 Generator seeded from operating system entropy.
func NewRandom() (*Generator, error) {
	return New(Config{})
}

// Hash returns the hash suite the generator was built with.
func (g *Generator) Hash() HashSuite {
	return g.hash
}

// State returns a copy of the current state vector.
func (g *Generator) State() Vector {
	return g.state
}
