// Package generate implements the paracletic command: print random bytes
// as hex or run the generator self-test.
package generate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	paracletic "github.com/opd-ai/go-paracletic"
	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
)

// ErrSelfTestFailed is returned after a failing self-test has been
// reported on the output writer.
var ErrSelfTestFailed = errors.New("selftest failed")

// ErrorMessage returns the line to report for an error from Run, or ""
// when Run has already reported it on the output writer.
func ErrorMessage(err error) string {
	if err == nil || errors.Is(err, ErrSelfTestFailed) {
		return ""
	}
	return err.Error()
}

// Config holds paracletic command configuration.
type Config struct {
	Bytes     int    `env:"PARACLETIC_BYTES" envDefault:"32"`
	Seed      string `env:"PARACLETIC_SEED"`
	Hash      string `env:"PARACLETIC_HASH" envDefault:"sha2"`
	Verbosity int    `env:"PARACLETIC_VERBOSITY" envDefault:"0"`
	SelfTest  bool

	// SeedSet reports whether a seed was given at all. An empty seed that
	// was given is an explicit empty seed, not a request for entropy.
	SeedSet bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Bytes, "n", cfg.Bytes, "number of random bytes to output")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "hex-encoded seed (optional)")
	fs.StringVar(&cfg.Hash, "hash", cfg.Hash, "hash suite: sha2, blake2b or blake3")
	fs.BoolVar(&cfg.SelfTest, "selftest", false, "run the internal self-test suite")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity (0-2)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.SeedSet = config.SeedGiven(fs, "PARACLETIC_SEED")
	return cfg, nil
}

// Run executes the paracletic command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	logger := log.FromContext(ctx, "generate")

	hash, err := paracletic.ParseHashSuite(cfg.Hash)
	if err != nil {
		return err
	}

	if cfg.SelfTest {
		err := paracletic.SelfTest(paracletic.SelfTestConfig{Hash: hash, Logger: logger})
		var stErr *paracletic.SelfTestError
		switch {
		case err == nil:
			fmt.Fprintln(out, "SELFTEST PASS")
			return nil
		case errors.As(err, &stErr):
			fmt.Fprintf(out, "SELFTEST FAIL: %s\n", stErr.Diagnostic())
			return ErrSelfTestFailed
		default:
			return err
		}
	}

	var seed []byte
	if cfg.SeedSet {
		if seed, err = config.DecodeSeed(cfg.Seed); err != nil {
			return err
		}
	}
	g, err := paracletic.New(paracletic.Config{Seed: seed, Hash: hash, Logger: logger})
	if err != nil {
		return err
	}
	s, err := g.FillHex(cfg.Bytes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}
