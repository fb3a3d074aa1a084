// Package bigcrush writes a long run of generator output as raw 32-bit
// words for batteries that read binary files, such as TestU01 BigCrush.
package bigcrush

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/minio/highwayhash"

	paracletic "github.com/opd-ai/go-paracletic"
	"github.com/opd-ai/go-paracletic/internal/config"
	"github.com/opd-ai/go-paracletic/internal/log"
)

const wordSize = 4

// fingerprintKey keys the HighwayHash fingerprint of the written stream.
// It is fixed so fingerprints from separate runs compare.
var fingerprintKey [32]byte

// Config holds bigcrush command configuration.
type Config struct {
	Words     int    `env:"PARACLETIC_WORDS" envDefault:"50000000"`
	Out       string `env:"PARACLETIC_OUT" envDefault:"chaos_bigcrush_u32.bin"`
	Chunk     int    `env:"PARACLETIC_CHUNK" envDefault:"1000000"`
	Seed      string `env:"PARACLETIC_SEED"`
	Hash      string `env:"PARACLETIC_HASH" envDefault:"sha2"`
	Verbosity int    `env:"PARACLETIC_VERBOSITY" envDefault:"0"`

	// SeedSet reports whether Seed was given; otherwise the generator is
	// seeded from fresh entropy.
	SeedSet bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Words, "words", cfg.Words, "number of uint32 words to write")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output file")
	fs.IntVar(&cfg.Chunk, "chunk", cfg.Chunk, "words generated per write")
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "hex-encoded seed (optional)")
	fs.StringVar(&cfg.Hash, "hash", cfg.Hash, "hash suite: sha2, blake2b or blake3")
	fs.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity (0-2)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.SeedSet = config.SeedGiven(fs, "PARACLETIC_SEED")
	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Words < 0 {
		return fmt.Errorf("words must be non-negative, got %d", c.Words)
	}
	if c.Chunk <= 0 {
		return fmt.Errorf("chunk must be positive, got %d", c.Chunk)
	}
	if c.Out == "" {
		return errors.New("output path is required")
	}
	return nil
}

// Progress describes how far a Stream call has got.
type Progress struct {
	Written int
	Total   int
	Elapsed time.Duration
}

// Percent returns the share of words written, from 0 to 100.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Written) / float64(p.Total) * 100
}

// Rate returns the throughput in words per second.
func (p Progress) Rate() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Written) / p.Elapsed.Seconds()
}

// ETA estimates the time left at the current rate.
func (p Progress) ETA() time.Duration {
	rate := p.Rate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(p.Total-p.Written) / rate * float64(time.Second))
}

func (p Progress) String() string {
	var epoch time.Time
	return fmt.Sprintf("progress: %s/%s (%6.2f%%)  elapsed: %s  rate: %s words/s  eta: %s",
		humanize.Comma(int64(p.Written)),
		humanize.Comma(int64(p.Total)),
		p.Percent(),
		p.Elapsed.Round(100*time.Millisecond),
		humanize.Comma(int64(p.Rate())),
		humanize.RelTime(epoch, epoch.Add(p.ETA()), "left", ""))
}

// Summary is the outcome of a completed Stream call.
type Summary struct {
	Words       int
	Bytes       int64
	Elapsed     time.Duration
	Fingerprint [32]byte
}

// Stream writes words uint32 values from g to w, chunk words at a time,
// calling report after every chunk. It stops between chunks when ctx is
// cancelled.
func Stream(ctx context.Context, g *paracletic.Generator, w io.Writer, words, chunk int, report func(Progress)) (Summary, error) {
	if chunk <= 0 {
		return Summary{}, fmt.Errorf("chunk must be positive, got %d", chunk)
	}
	fp, err := highwayhash.New(fingerprintKey[:])
	if err != nil {
		return Summary{}, err
	}
	mw := io.MultiWriter(w, fp)

	start := time.Now()
	written := 0
	var n int64
	for written < words {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		k := min(chunk, words-written)
		raw, err := g.Fill(wordSize * k)
		if err != nil {
			return Summary{}, err
		}
		m, err := mw.Write(raw)
		n += int64(m)
		if err != nil {
			return Summary{}, fmt.Errorf("write chunk: %w", err)
		}
		written += k
		if report != nil {
			report(Progress{Written: written, Total: words, Elapsed: time.Since(start)})
		}
	}

	sum := Summary{Words: written, Bytes: n, Elapsed: time.Since(start)}
	copy(sum.Fingerprint[:], fp.Sum(nil))
	return sum, nil
}

// Run executes the bigcrush command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := log.FromContext(ctx, "bigcrush")

	hash, err := paracletic.ParseHashSuite(cfg.Hash)
	if err != nil {
		return err
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

	path, err := filepath.Abs(cfg.Out)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(out, "Generating %s uint32 words into %s\n", humanize.Comma(int64(cfg.Words)), path)
	sum, err := Stream(ctx, g, f, cfg.Words, cfg.Chunk, func(p Progress) {
		fmt.Fprintln(out, p)
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.V(1).Info("stream written", "path", path, "bytes", sum.Bytes)
	fmt.Fprintf(out, "Done. %s (%s bytes) in %s, highwayhash-256 %x\n",
		humanize.Bytes(uint64(sum.Bytes)),
		humanize.Comma(sum.Bytes),
		sum.Elapsed.Round(10*time.Millisecond),
		sum.Fingerprint)
	return nil
}
