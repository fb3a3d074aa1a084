// Package niststreams exports independent generator streams as ASCII
// '0'/'1' files for the NIST statistical test suite.
package niststreams

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	paracletic "github.com/opd-ai/go-paracletic"
	"github.com/opd-ai/go-paracletic/internal/bitstring"
	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
)

// Config holds niststreams command configuration.
type Config struct {
	Streams   int    `env:"PARACLETIC_STREAMS" envDefault:"100"`
	Bits      int    `env:"PARACLETIC_BITS" envDefault:"1000000"`
	OutDir    string `env:"PARACLETIC_OUT_DIR" envDefault:"data"`
	Workers   int    `env:"PARACLETIC_WORKERS"`
	Hash      string `env:"PARACLETIC_HASH" envDefault:"sha2"`
	Verbosity int    `env:"PARACLETIC_VERBOSITY" envDefault:"0"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	fs.IntVar(&cfg.Streams, "streams", cfg.Streams, "number of streams")
	fs.IntVar(&cfg.Bits, "bits", cfg.Bits, "bits per stream")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "output directory")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "streams generated concurrently")
	fs.StringVar(&cfg.Hash, "hash", cfg.Hash, "hash suite: sha2, blake2b or blake3")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity (0-2)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Streams < 0 {
		return fmt.Errorf("streams must be non-negative, got %d", c.Streams)
	}
	if c.Bits < 0 {
		return fmt.Errorf("bits must be non-negative, got %d", c.Bits)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.OutDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}

// StreamName returns the file name of the 1-based stream i.
func StreamName(i int) string {
	return fmt.Sprintf("chaos_%03d.bin", i)
}

// WriteStream draws bits bits from g and writes them to path as ASCII.
func WriteStream(g *paracletic.Generator, path string, bits int) error {
	raw, err := g.Fill(bitstring.ByteLen(bits))
	if err != nil {
		return err
	}
	text, err := bitstring.Encode(raw, bits)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, text, 0o644); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}

// Run executes the niststreams command. Each stream gets its own freshly
// seeded generator; at most cfg.Workers streams are generated at once.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := log.FromContext(ctx, "niststreams")

	hash, err := paracletic.ParseHashSuite(cfg.Hash)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	bar := NewBar(out, cfg.Streams)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 1; i <= cfg.Streams; i++ {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			g, err := paracletic.New(paracletic.Config{Hash: hash, Logger: logger})
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.OutDir, StreamName(i))
			if err := WriteStream(g, path, cfg.Bits); err != nil {
				return fmt.Errorf("stream %d: %w", i, err)
			}
			logger.V(1).Info("stream written", "path", path)
			bar.Increment()
			return nil
		})
	}
	err = eg.Wait()
	if cfg.Streams > 0 {
		fmt.Fprintln(out)
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
