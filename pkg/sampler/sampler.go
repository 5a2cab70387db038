// Package sampler provides the weighted random choice used to pick production rules.
package sampler

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// Source is the random capability the generator draws from.
// *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a deterministic source seeded with seed.
// The returned source is not safe for concurrent use; give each generation its own.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Locked wraps a Source so it can be shared by concurrent callers.
type Locked struct {
	mu  sync.Mutex
	src Source
}

// NewLocked wraps src with a mutex.
func NewLocked(src Source) *Locked {
	return &Locked{src: src}
}

// Float64 draws from the wrapped source under the lock.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Choose draws one index with probability proportional to weights.
// Weights need not sum to one: they are scaled by 1/sum before the draw.
// Zero-weight entries are never selected.
func Choose(src Source, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: no weights to choose from", domain.ErrGrammarConfig)
	}

	var sum float64
	last := -1
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: negative weight %v at index %d", domain.ErrGrammarConfig, w, i)
		}
		if math.IsNaN(w) || math.IsInf(w, 1) {
			return 0, fmt.Errorf("%w: non-finite weight %v at index %d", domain.ErrGrammarConfig, w, i)
		}
		if w > 0 {
			last = i
		}
		sum += w
	}
	if last < 0 {
		return 0, fmt.Errorf("%w: all weights are zero", domain.ErrGrammarConfig)
	}
	scalingFactor := 1 / sum

	n := src.Float64()
	cum := float64(0)
	for i, w := range weights {
		cum += scalingFactor * w
		if n < cum {
			return i, nil
		}
	}

	// Rounding can leave cum a hair under 1.
	return last, nil
}
