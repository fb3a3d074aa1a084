package paracletic

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"testing"
)

func TestFillLength(t *testing.T) {
	for _, n := range []int{0, 1, 31, 32, 33, 64, 100, 1000} {
		g, err := NewSeeded([]byte("length"))
		if err != nil {
			t.Fatalf("NewSeeded() error = %v", err)
		}
		out, err := g.Fill(n)
		if err != nil {
			t.Fatalf("Fill(%d) error = %v", n, err)
		}
		if len(out) != n {
			t.Errorf("Fill(%d) returned %d bytes", n, len(out))
		}
		blocks := uint64((n + BlockSize - 1) / BlockSize)
		if g.ctr.lo != blocks*(dilution+1) {
			t.Errorf("Fill(%d): counter = %d, want %d", n, g.ctr.lo, blocks*(dilution+1))
		}
	}
}

func TestFillZero(t *testing.T) {
	g, _ := NewSeeded([]byte("zero"))
	before := g.State()
	out, err := g.Fill(0)
	if err != nil {
		t.Fatalf("Fill(0) error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("Fill(0) = %v, want empty non-nil slice", out)
	}
	if g.State() != before || g.ctr != (counter{}) {
		t.Error("Fill(0) should not advance the generator")
	}
}

func TestFillNegative(t *testing.T) {
	g, _ := NewSeeded([]byte("negative"))
	out, err := g.Fill(-1)
	if !errors.Is(err, ErrNegativeLength) {
		t.Errorf("Fill(-1) error = %v, want ErrNegativeLength", err)
	}
	if out != nil {
		t.Error("Fill(-1) should not return partial output")
	}
	if g.ctr != (counter{}) {
		t.Error("a failed Fill should not advance the generator")
	}
}

func TestFillTooLarge(t *testing.T) {
	g, _ := NewSeeded([]byte("too large"))
	for _, n := range []int{MaxFillLength + 1, math.MaxInt - 10, math.MaxInt} {
		out, err := g.Fill(n)
		if !errors.Is(err, ErrLengthTooLarge) {
			t.Errorf("Fill(%d) error = %v, want ErrLengthTooLarge", n, err)
		}
		if out != nil {
			t.Errorf("Fill(%d) should not return output", n)
		}
	}
	if _, err := g.FillHex(math.MaxInt); !errors.Is(err, ErrLengthTooLarge) {
		t.Errorf("FillHex(MaxInt) error = %v", err)
	}
	if g.ctr != (counter{}) {
		t.Error("a rejected Fill should not advance the generator")
	}
}

// Truncation keeps a prefix: the first n bytes of a longer request.
func TestFillTruncationIsPrefix(t *testing.T) {
	seed := []byte("prefix")
	a, _ := NewSeeded(seed)
	b, _ := NewSeeded(seed)
	long, _ := a.Fill(96)
	short, _ := b.Fill(40)
	if !bytes.Equal(long[:40], short) {
		t.Error("Fill(40) should equal the first 40 bytes of Fill(96)")
	}
}

// Consecutive fills at block granularity concatenate; otherwise the tail
// of the last block is discarded.
func TestFillSequence(t *testing.T) {
	seed := []byte("sequence")

	a, _ := NewSeeded(seed)
	whole, _ := a.Fill(128)

	b, _ := NewSeeded(seed)
	first, _ := b.Fill(64)
	second, _ := b.Fill(64)
	if !bytes.Equal(whole, append(first, second...)) {
		t.Error("block-aligned fills should concatenate to one stream")
	}

	c, _ := NewSeeded(seed)
	x, _ := c.Fill(1)
	y, _ := c.Fill(32)
	if x[0] != whole[0] {
		t.Error("Fill(1) should return the first byte of the stream")
	}
	if !bytes.Equal(y, whole[32:64]) {
		t.Error("Fill after a partial block should start at the next block")
	}
}

// A block is the hash of the serialized state, the key and the counter
// after five steps.
func TestBlockConstruction(t *testing.T) {
	g, _ := NewSeeded([]byte("block"))
	ref, _ := NewSeeded([]byte("block"))

	out, _ := g.Fill(BlockSize)

	for i := 0; i < dilution; i++ {
		ref.Advance()
	}
	want := ref.suite.Sum256(serialize(ref.state), ref.key[:], ref.ctr.bytes())
	if !bytes.Equal(out, want[:]) {
		t.Errorf("block = %x, want %x", out, want)
	}
}

func TestRead(t *testing.T) {
	a, _ := NewSeeded([]byte("reader"))
	b, _ := NewSeeded([]byte("reader"))

	buf := make([]byte, 50)
	n, err := a.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	want, _ := b.Fill(50)
	if !bytes.Equal(buf, want) {
		t.Error("Read should match Fill")
	}

	c, _ := NewSeeded([]byte("reader"))
	got, err := io.ReadAll(io.LimitReader(c, 64))
	if err != nil || len(got) != 64 {
		t.Fatalf("io.ReadAll = %d bytes, %v", len(got), err)
	}
}

func TestFillHex(t *testing.T) {
	a, _ := NewSeeded([]byte("hex"))
	b, _ := NewSeeded([]byte("hex"))
	s, err := a.FillHex(20)
	if err != nil {
		t.Fatalf("FillHex() error = %v", err)
	}
	raw, _ := b.Fill(20)
	if s != hex.EncodeToString(raw) {
		t.Errorf("FillHex = %s, want %x", s, raw)
	}
	if len(s) != 40 {
		t.Errorf("len(FillHex(20)) = %d", len(s))
	}
	if _, err := a.FillHex(-5); !errors.Is(err, ErrNegativeLength) {
		t.Errorf("FillHex(-5) error = %v", err)
	}
}

func TestSelfTestScenario(t *testing.T) {
	a, _ := New(Config{Seed: SelfTestSeed()})
	b, _ := New(Config{Seed: SelfTestSeed()})
	x, _ := a.FillHex(64)
	y, _ := b.FillHex(64)
	if x != y {
		t.Fatalf("fresh generators from the self-test seed differ:\n%s\n%s", x, y)
	}
	const want = "c3c0638518677f1e9c5b27ea1c2ab4f3cea3aa8f35bd0aa53880fad93cd918b7" +
		"234198a1f1c668790ef1ca6ad4892e7362596bf0b107a0c04fe8ec721ac7494f"
	if x != want {
		t.Errorf("self-test stream = %s, want %s", x, want)
	}
}

func BenchmarkFill(b *testing.B) {
	g, err := NewSeeded([]byte("benchmark"))
	if err != nil {
		b.Fatalf("NewSeeded() error = %v", err)
	}
	b.SetBytes(4096)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Fill(4096); err != nil {
			b.Fatal(err)
		}
	}
}
