package paracletic

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/opd-ai/go-paracletic/internal"
	"github.com/opd-ai/go-paracletic/internal/stats"
)

// Self-test parameters.
const (
	SelfTestSeedPhrase = "paracletic_selftest_seed"

	selfTestSampleBytes = 64
	monobitBits         = 131072
	monobitLow          = 0.49
	monobitHigh         = 0.51
	byteBalanceBytes    = 65536
	byteBalanceLow      = 0.4
	byteBalanceHigh     = 2.6
)

// Check names one of the self-test checks.
type Check string

const (
	// CheckDeterminism compares two generators built from the self-test seed.
	CheckDeterminism Check = "determinism"

	// CheckDistinctness compares two independently seeded generators.
	CheckDistinctness Check = "distinctness"

	// CheckMonobit bounds the proportion of set bits.
	CheckMonobit Check = "monobit"

	// CheckByteBalance bounds the frequency of every byte value.
	CheckByteBalance Check = "byte-balance"
)

var (
	// ErrDeterminism is reported when equal seeds give different streams.
	ErrDeterminism = errors.New("determinism check failed")

	// ErrDistinctness is reported when different seeds give equal streams.
	ErrDistinctness = errors.New("distinct seeds produced identical streams")

	// ErrMonobit is reported when the set-bit proportion leaves [0.49, 0.51].
	ErrMonobit = errors.New("monobit frequency out of range")

	// ErrByteBalance is reported when a byte value is too rare or too common.
	ErrByteBalance = errors.New("byte frequency out of range")
)

// SelfTestError reports which check failed and the offending measurement.
type SelfTestError struct {
	Check  Check
	Detail string
	Err    error
}

func (e *SelfTestError) Error() string {
	return "paracletic: selftest: " + e.Diagnostic()
}

// Diagnostic returns the human-readable failure without the package prefix.
func (e *SelfTestError) Diagnostic() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *SelfTestError) Unwrap() error {
	return e.Err
}

// SelfTestConfig configures SelfTest.
type SelfTestConfig struct {
	// Hash selects the hash suite under test.
	Hash HashSuite

	// Entropy seeds the distinctness and statistical checks.
	// Defaults to crypto/rand.Reader.
	Entropy io.Reader

	// Logger receives one V(1) line per passing check.
	Logger logr.Logger
}

// SelfTest runs the determinism, distinctness, monobit and byte-balance
// checks in that order and returns the first failure. Failures are
// *SelfTestError values; entropy failures wrap ErrEntropy.
func SelfTest(cfg SelfTestConfig) error {
	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	logger = logger.WithName("selftest")
	if cfg.Entropy == nil {
		cfg.Entropy = internal.OSEntropy
	}

	if err := CheckDeterminismOf(cfg.Hash); err != nil {
		return err
	}
	logger.V(1).Info("check passed", "check", CheckDeterminism)

	a, err := newFromEntropy(cfg)
	if err != nil {
		return err
	}
	b, err := newFromEntropy(cfg)
	if err != nil {
		return err
	}
	if err := CheckDistinctnessOf(a, b); err != nil {
		return err
	}
	logger.V(1).Info("check passed", "check", CheckDistinctness)

	g, err := newFromEntropy(cfg)
	if err != nil {
		return err
	}
	ratio, err := CheckMonobitOf(g)
	if err != nil {
		return err
	}
	logger.V(1).Info("check passed", "check", CheckMonobit, "ratio", ratio)

	// The byte-balance sample continues the monobit generator's stream.
	if err := CheckByteBalanceOf(g); err != nil {
		return err
	}
	logger.V(1).Info("check passed", "check", CheckByteBalance)
	return nil
}

// newFromEntropy builds a generator whose explicit 32-byte seed is read
// from cfg.Entropy.
func newFromEntropy(cfg SelfTestConfig) (*Generator, error) {
	seed, err := internal.ReadEntropy(cfg.Entropy, seedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return New(Config{Seed: seed, Hash: cfg.Hash})
}

// SelfTestSeed returns the fixed seed of the determinism check: the
// SHA-256 digest of SelfTestSeedPhrase.
func SelfTestSeed() []byte {
	sum := sha256.Sum256([]byte(SelfTestSeedPhrase))
	return sum[:]
}

// CheckDeterminismOf verifies that two generators built from the
// self-test seed produce the same 64 bytes.
func CheckDeterminismOf(h HashSuite) error {
	seed := SelfTestSeed()
	a, err := New(Config{Seed: seed, Hash: h})
	if err != nil {
		return err
	}
	b, err := New(Config{Seed: seed, Hash: h})
	if err != nil {
		return err
	}
	x, _ := a.Fill(selfTestSampleBytes)
	y, _ := b.Fill(selfTestSampleBytes)
	if !bytes.Equal(x, y) {
		return &SelfTestError{Check: CheckDeterminism, Err: ErrDeterminism}
	}
	return nil
}

// CheckDistinctnessOf verifies that two independently seeded generators
// produce different 64-byte outputs. Equality is a failure, never a flake.
func CheckDistinctnessOf(a, b *Generator) error {
	x, _ := a.Fill(selfTestSampleBytes)
	y, _ := b.Fill(selfTestSampleBytes)
	if bytes.Equal(x, y) {
		return &SelfTestError{Check: CheckDistinctness, Err: ErrDistinctness}
	}
	return nil
}

// CheckMonobitOf draws 131072 bits from g and verifies that the
// proportion of set bits lies in [0.49, 0.51]. It returns the proportion.
func CheckMonobitOf(g *Generator) (float64, error) {
	sample, _ := g.Fill(monobitBits / 8)
	ratio := stats.Monobit(sample)
	if ratio < monobitLow || ratio > monobitHigh {
		return ratio, &SelfTestError{
			Check:  CheckMonobit,
			Detail: fmt.Sprintf("%.6f", ratio),
			Err:    ErrMonobit,
		}
	}
	return ratio, nil
}

// CheckByteBalanceOf draws 65536 bytes from g and verifies that every
// byte value occurs between 0.4 and 2.6 times the uniform expectation.
func CheckByteBalanceOf(g *Generator) error {
	sample, _ := g.Fill(byteBalanceBytes)
	counts := stats.ByteCounts(sample)
	if v, c, ok := stats.Outlier(counts, len(sample), byteBalanceLow, byteBalanceHigh); !ok {
		return &SelfTestError{
			Check:  CheckByteBalance,
			Detail: fmt.Sprintf("value %d occurred %d times", v, c),
			Err:    ErrByteBalance,
		}
	}
	return nil
}
