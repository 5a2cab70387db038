package logical_test

import (
	"context"
	"testing"

	"github.com/aretw0/treeoracle/internal/runtime"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/sampler"
	"github.com/aretw0/treeoracle/pkg/score/logical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bin(label domain.Label, a, b *domain.Tree) *domain.Tree { return domain.NewTree(label, a, b) }

func TestEvaluate(t *testing.T) {
	x, y := domain.Leaf("x"), domain.Leaf("y")

	tests := []struct {
		name string
		tree *domain.Tree
		x, y float64
		want float64
	}{
		{"and(x, y)", bin("and", x, y), 0, 1, 0},
		{"or(x, y)", bin("or", x, y), 0, 1, 1},
		{"not(x)", domain.NewTree("not", x), 0, 1, 1},
		{"x", x, 0.3, 0.9, 0.3},
		{"y", y, 0.3, 0.9, 0.9},
		{"and fuzzy", bin("and", x, y), 0.5, 0.5, 0.25},
		{"or saturates", bin("or", x, y), 0.7, 0.6, 1},
		{"or sums", bin("or", x, y), 0.2, 0.3, 0.5},
		{"nested", domain.NewTree("not", bin("or", bin("and", x, y), x)), 0.5, 0.5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logical.Evaluate(tt.tree, tt.x, tt.y)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEvaluate_UnknownLabel(t *testing.T) {
	_, err := logical.Evaluate(domain.NewTree("xor", domain.Leaf("x"), domain.Leaf("y")), 0, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)

	_, err = logical.Evaluate(domain.NewTree("not", domain.Leaf("S")), 0, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)
}

func TestEvaluate_Arity(t *testing.T) {
	_, err := logical.Evaluate(domain.NewTree("and", domain.Leaf("x")), 0, 1)
	assert.ErrorIs(t, err, domain.ErrGrammarConfig)
}

func TestEvaluate_ClosedOnUnitInterval(t *testing.T) {
	gen := runtime.NewGenerator()
	inputs := []float64{0, 0.25, 0.5, 0.75, 1}

	for seed := int64(0); seed < 200; seed++ {
		tree, err := gen.Generate(context.Background(), grammar.Start, grammar.Logical(), sampler.NewSource(seed))
		require.NoError(t, err)

		for _, x := range inputs {
			for _, y := range inputs {
				v, err := logical.Evaluate(tree, x, y)
				require.NoError(t, err)
				assert.True(t, v >= 0 && v <= 1, "seed %d: %s(%v, %v) = %v", seed, tree, x, y, v)
			}
		}
	}
}

func TestScorer(t *testing.T) {
	s := logical.NewScorer()
	v, err := s.Score(domain.NewTree("not", domain.Leaf("y")))
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}
