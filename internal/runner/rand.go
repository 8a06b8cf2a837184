package runner

import (
	"math/rand/v2"
)

// Source is the random source driving level generation.
// Tests inject a scripted implementation.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a seeded PCG source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// weighted picks values[i] with probability weights[i]/sum(weights).
func weighted(src Source, values, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return values[0]
	}
	r := src.IntN(total)
	for i, w := range weights {
		if r < w {
			return values[i]
		}
		r -= w
	}
	return values[len(values)-1]
}

// chance returns true with probability p.
func chance(src Source, p float64) bool {
	return src.Float64() < p
}

// randInt returns a value in [lo, hi].
func randInt(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// shuffled returns 0..n-1 in random order.
func shuffled(src Source, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

// seq returns lo..hi inclusive.
func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}
