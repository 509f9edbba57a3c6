package randx

import (
	"math/rand/v2"
)

// Source is the random source used by the stage transformations, the
// untrained-model output and the quiz shuffle.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Default returns a source backed by the runtime's global generator. It is
// safe for concurrent use.
func Default() Source {
	return globalSource{}
}

// NewSeeded returns a deterministic source. Not safe for concurrent use.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// OrDefault returns src, or the global source when src is nil.
func OrDefault(src Source) Source {
	if src == nil {
		return Default()
	}
	return src
}
