package rna_test

import (
	"context"
	"math"
	"testing"

	"github.com/aretw0/treeoracle/internal/runtime"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/sampler"
	"github.com/aretw0/treeoracle/pkg/score/rna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(l domain.Label) *domain.Tree { return domain.Leaf(l) }

func hairpin(bases ...domain.Label) *domain.Tree {
	tree := domain.NewTree(domain.LabelHairpinEnd, leaf(bases[len(bases)-1]))
	for i := len(bases) - 2; i >= 0; i-- {
		tree = domain.NewTree(domain.LabelHairpin, leaf(bases[i]), tree)
	}
	return tree
}

func pair(l domain.Label, inner *domain.Tree, r domain.Label) *domain.Tree {
	return domain.NewTree(domain.LabelPair, leaf(l), inner, leaf(r))
}

func TestClassifyPair(t *testing.T) {
	tests := []struct {
		l, r domain.Label
		want rna.PairClass
	}{
		{"a", "u", rna.PairAU},
		{"u", "a", rna.PairAU},
		{"c", "g", rna.PairCG},
		{"g", "c", rna.PairCG},
		{"g", "u", rna.PairGU},
		{"u", "g", rna.PairGU},
	}
	for _, tt := range tests {
		got, err := rna.ClassifyPair(tt.l, tt.r)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "(%s, %s)", tt.l, tt.r)
	}

	bases := []domain.Label{"a", "c", "g", "u"}
	valid := 0
	for _, l := range bases {
		for _, r := range bases {
			if _, err := rna.ClassifyPair(l, r); err == nil {
				valid++
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidBasePair)
			}
		}
	}
	assert.Equal(t, 6, valid)

	_, err := rna.ClassifyPair("a", "c")
	assert.ErrorIs(t, err, domain.ErrInvalidBasePair)
	assert.Equal(t, "c,g", rna.PairCG.String())
}

func TestEstimate_StackedPairs(t *testing.T) {
	inner := pair("g", hairpin("a", "a", "a", "a"), "c")
	outer := pair("c", inner, "g")

	innerEnergy, err := rna.Estimate(inner)
	require.NoError(t, err)
	got, err := rna.Estimate(outer)
	require.NoError(t, err)

	assert.InDelta(t, -2.8+innerEnergy, got, 1e-12)
	assert.InDelta(t, rna.StackingEnergy[rna.PairCG][rna.PairCG]+innerEnergy, got, 1e-12)
}

func TestEstimate_StackingTableOrientation(t *testing.T) {
	// outer a/u over inner c/g uses row a,u column c,g
	tree := pair("a", pair("c", hairpin("g", "g", "g"), "g"), "u")
	got, err := rna.Estimate(tree)
	require.NoError(t, err)
	assert.InDelta(t, -1.9+2.5+1.2*math.Log(3), got, 1e-12)

	// and the reverse: outer c/g over inner a/u uses row c,g column a,u
	tree = pair("c", pair("a", hairpin("g", "g", "g"), "u"), "g")
	got, err = rna.Estimate(tree)
	require.NoError(t, err)
	assert.InDelta(t, -2.0+2.5+1.2*math.Log(3), got, 1e-12)
}

func TestEstimate_DangleChain(t *testing.T) {
	tree := domain.NewTree(domain.LabelDangle, leaf("c"),
		domain.NewTree(domain.LabelDangle, leaf("a"),
			domain.NewTree(domain.LabelDangleEnd, leaf("g"))))

	n, err := rna.ChainLength(tree, domain.LabelDangle, domain.LabelDangleEnd)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := rna.Estimate(tree)
	require.NoError(t, err)
	assert.InDelta(t, 3.9+0.75*math.Log(3), got, 1e-12)
}

func TestEstimate_Components(t *testing.T) {
	hp := hairpin("a", "c", "g", "u")

	tests := []struct {
		name string
		tree *domain.Tree
		want float64
	}{
		{"Hairpin of four", hp, 2.5 + 1.2*math.Log(4)},
		{"Single dangle", domain.NewTree(domain.LabelDangle, leaf("a"), domain.NewTree(domain.LabelDangleEnd, leaf("u"))), 3.9 + 0.75*math.Log(2)},
		{"Unstacked closing pair", pair("a", hp, "u"), 2.5 + 1.2*math.Log(4)},
		{"Split adds", domain.NewTree(domain.LabelSplit, hp, hp), 2 * (2.5 + 1.2*math.Log(4))},
		{"Branch adds", domain.NewTree(domain.LabelBranch, pair("g", hp, "u"), hp), 2 * (2.5 + 1.2*math.Log(4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rna.Estimate(tt.tree)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestEstimate_Errors(t *testing.T) {
	_, err := rna.Estimate(leaf("a"))
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)

	_, err = rna.Estimate(domain.NewTree("loop", leaf("a")))
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)

	_, err = rna.Estimate(pair("a", pair("a", hairpin("g", "g", "g"), "c"), "u"))
	assert.ErrorIs(t, err, domain.ErrInvalidBasePair)

	_, err = rna.Estimate(domain.NewTree(domain.LabelHairpin, leaf("a"), leaf("b")))
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)
}

func TestEstimate_FiniteOnGeneratedTrees(t *testing.T) {
	gen := runtime.NewGenerator()
	for seed := int64(0); seed < 300; seed++ {
		tree, err := gen.Generate(context.Background(), grammar.Start, grammar.RNA(), sampler.NewSource(seed))
		require.NoError(t, err)

		e, err := rna.Estimate(tree)
		require.NoError(t, err, "seed %d: %s", seed, tree)
		assert.False(t, math.IsNaN(e) || math.IsInf(e, 0), "seed %d: energy %v", seed, e)
	}
}
