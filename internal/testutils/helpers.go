package testutils

import (
	"testing"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Scripted replays a fixed sequence of draws, wrapping around at the end.
// It satisfies sampler.Source.
type Scripted struct {
	Draws []float64
	pos   int
}

// NewScripted creates a source that yields draws in order.
func NewScripted(draws ...float64) *Scripted {
	return &Scripted{Draws: draws}
}

func (s *Scripted) Float64() float64 {
	v := s.Draws[s.pos%len(s.Draws)]
	s.pos++
	return v
}

// Consumed returns how many draws have been taken.
func (s *Scripted) Consumed() int {
	return s.pos
}

// RequireIndependent fails the test if any two nodes of tree share a child slice
// backing array or a node pointer.
func RequireIndependent(t *testing.T, tree *domain.Tree) {
	t.Helper()

	seen := make(map[*domain.Tree]bool)
	arrays := make(map[**domain.Tree]bool)
	stack := []*domain.Tree{tree}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		require.False(t, seen[n], "node %q reached twice", n.Label)
		seen[n] = true

		if len(n.Children) > 0 {
			head := &n.Children[0]
			require.False(t, arrays[head], "children of %q share a backing array", n.Label)
			arrays[head] = true
		}
		stack = append(stack, n.Children...)
	}
}
