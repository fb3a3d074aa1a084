// Package stats implements the elementary frequency measurements used by
// the generator self-test.
package stats

import "math/bits"

// Ones counts the set bits in data.
func Ones(data []byte) int {
	n := 0
	for _, b := range data {
		n += bits.OnesCount8(b)
	}
	return n
}

// Monobit returns the proportion of set bits in data. It returns 0 for
// empty input.
func Monobit(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	return float64(Ones(data)) / float64(len(data)*8)
}

// ByteCounts returns the number of occurrences of every byte value.
func ByteCounts(data []byte) [256]int {
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	return counts
}

// Outlier reports the first byte value whose count lies outside
// [lowFactor, highFactor] times the expected uniform count.
// ok is true when every count is within bounds.
func Outlier(counts [256]int, total int, lowFactor, highFactor float64) (value, count int, ok bool) {
	expected := float64(total) / 256.0
	low := expected * lowFactor
	high := expected * highFactor
	for v, c := range counts {
		if float64(c) < low || float64(c) > high {
			return v, c, false
		}
	}
	return 0, 0, true
}
