package niststreams

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const barWidth = 40

// Bar is a single-line progress bar redrawn with a carriage return.
// It is safe for concurrent use.
type Bar struct {
	mu      sync.Mutex
	w       io.Writer
	current int
	total   int
}

// NewBar returns a Bar counting up to total.
func NewBar(w io.Writer, total int) *Bar {
	return &Bar{w: w, total: total}
}

// Increment records one finished item and redraws the bar.
func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current++
	io.WriteString(b.w, "\r"+RenderBar(b.current, b.total))
}

// RenderBar draws current out of total as a 40-column bar of '#' and '-'
// followed by the percentage and counts.
func RenderBar(current, total int) string {
	if total <= 0 {
		return ""
	}
	filled := barWidth * current / total
	pct := float64(current) / float64(total) * 100
	return fmt.Sprintf("[%s%s] %6.2f%%  (%d/%d)",
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), pct, current, total)
}
