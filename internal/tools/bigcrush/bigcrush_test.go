package bigcrush

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/highwayhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paracletic "github.com/opd-ai/go-paracletic"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("bigcrush", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 50_000_000, cfg.Words)
	assert.Equal(t, "chaos_bigcrush_u32.bin", cfg.Out)
	assert.Equal(t, 1_000_000, cfg.Chunk)
	assert.Equal(t, "sha2", cfg.Hash)
	assert.False(t, cfg.SeedSet)
}

func TestParseConfigFlags(t *testing.T) {
	t.Setenv("PARACLETIC_WORDS", "10")

	fs := flag.NewFlagSet("bigcrush", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-out", "x.bin", "-chunk", "4", "-seed", "00"})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Words)
	assert.Equal(t, "x.bin", cfg.Out)
	assert.Equal(t, 4, cfg.Chunk)
	assert.True(t, cfg.SeedSet)
}

func TestValidate(t *testing.T) {
	valid := Config{Words: 1, Chunk: 1, Out: "x"}
	require.NoError(t, valid.Validate())

	for name, cfg := range map[string]Config{
		"negative words": {Words: -1, Chunk: 1, Out: "x"},
		"zero chunk":     {Words: 1, Chunk: 0, Out: "x"},
		"no output":      {Words: 1, Chunk: 1},
	} {
		assert.Error(t, cfg.Validate(), name)
	}

	fs := flag.NewFlagSet("bigcrush", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-chunk", "0"})
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	seed := []byte("bigcrush")
	g, err := paracletic.NewSeeded(seed)
	require.NoError(t, err)

	var buf bytes.Buffer
	var reports []Progress
	sum, err := Stream(context.Background(), g, &buf, 1000, 256, func(p Progress) {
		reports = append(reports, p)
	})
	require.NoError(t, err)

	assert.Equal(t, 1000, sum.Words)
	assert.Equal(t, int64(4000), sum.Bytes)
	require.Len(t, reports, 4)
	assert.Equal(t, []int{256, 512, 768, 1000}, []int{
		reports[0].Written, reports[1].Written, reports[2].Written, reports[3].Written,
	})
	for _, r := range reports {
		assert.Equal(t, 1000, r.Total)
	}

	// Every chunk is a whole number of blocks, so the file equals one Fill.
	ref, err := paracletic.NewSeeded(seed)
	require.NoError(t, err)
	want, err := ref.Fill(4000)
	require.NoError(t, err)
	assert.Equal(t, want, buf.Bytes())

	assert.Equal(t, highwayhash.Sum(want, fingerprintKey[:]), sum.Fingerprint)
}

func TestStreamZeroWords(t *testing.T) {
	g, err := paracletic.NewSeeded(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	calls := 0
	sum, err := Stream(context.Background(), g, &buf, 0, 16, func(Progress) { calls++ })
	require.NoError(t, err)
	assert.Zero(t, sum.Bytes)
	assert.Zero(t, buf.Len())
	assert.Zero(t, calls)
}

func TestStreamCancelled(t *testing.T) {
	g, err := paracletic.NewSeeded(nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	_, err = Stream(ctx, g, &buf, 100, 10, func(p Progress) {
		if p.Written == 20 {
			cancel()
		}
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 80, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestStreamWriteError(t *testing.T) {
	g, err := paracletic.NewSeeded(nil)
	require.NoError(t, err)

	_, err = Stream(context.Background(), g, failingWriter{}, 10, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = Stream(context.Background(), g, &bytes.Buffer{}, 10, 0, nil)
	require.Error(t, err)
}

func TestProgress(t *testing.T) {
	p := Progress{Written: 50, Total: 100, Elapsed: 10 * time.Second}
	assert.InDelta(t, 50.0, p.Percent(), 1e-9)
	assert.InDelta(t, 5.0, p.Rate(), 1e-9)
	assert.Equal(t, 10*time.Second, p.ETA())

	s := p.String()
	assert.Contains(t, s, "progress: 50/100 ( 50.00%)")
	assert.Contains(t, s, "elapsed: 10s")
	assert.Contains(t, s, "rate: 5 words/s")
	assert.Contains(t, s, "eta: 10 seconds left")

	var zero Progress
	assert.Zero(t, zero.Percent())
	assert.Zero(t, zero.Rate())
	assert.Zero(t, zero.ETA())
	assert.Contains(t, zero.String(), "eta: now")

	big := Progress{Written: 1_000_000, Total: 50_000_000, Elapsed: time.Second}
	assert.Contains(t, big.String(), "1,000,000/50,000,000")
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	cfg := Config{Words: 100, Chunk: 30, Out: path, Seed: "00ff", SeedSet: true}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, &out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 400)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Generating 100 uint32 words into "+path+"\n"))
	assert.Equal(t, 4, strings.Count(text, "progress: "))
	assert.Contains(t, text, fmt.Sprintf("highwayhash-256 %x\n", highwayhash.Sum(data, fingerprintKey[:])))

	// Same seed, same file.
	var again bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, &again))
	data2, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, data2)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	err := Run(ctx, Config{Words: 1, Chunk: 1, Out: filepath.Join(dir, "a"), Seed: "q", SeedSet: true}, nil)
	assert.EqualError(t, err, "invalid seed hex string")

	err = Run(ctx, Config{Words: 1, Chunk: 1, Out: filepath.Join(dir, "a"), Hash: "md5"}, nil)
	assert.ErrorIs(t, err, paracletic.ErrUnknownHashSuite)

	err = Run(ctx, Config{Words: 1, Chunk: 1, Out: filepath.Join(dir, "missing", "a")}, nil)
	assert.Error(t, err)

	err = Run(ctx, Config{Words: 1, Chunk: 0, Out: "a"}, nil)
	assert.Error(t, err)
}
