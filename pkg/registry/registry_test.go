package registry_test

import (
	"testing"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := registry.Default(0, 1)
	assert.Equal(t, []string{"logical", "rna"}, r.Names())

	e, err := r.Get("logical")
	require.NoError(t, err)
	assert.Equal(t, grammar.Start, e.Start)

	score, err := e.Scorer.Score(domain.NewTree(domain.LabelNot, domain.Leaf(domain.LabelX)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestRegister_Overwrite(t *testing.T) {
	r := registry.Default(0, 1)
	custom := grammar.NewBuilder("coin").Symbol("S").Rule(0.5, "heads").Rule(0.5, "tails").MustBuild()

	r.Register("logical", registry.Entry{
		Grammar: custom,
		Start:   "S",
		Scorer:  ports.ScorerFunc(func(*domain.Tree) (float64, error) { return 42, nil }),
	})

	e, err := r.Get("logical")
	require.NoError(t, err)
	assert.Equal(t, "coin", e.Grammar.Name())
}

func TestGet_Missing(t *testing.T) {
	_, err := registry.NewRegistry().Get("nope")
	assert.ErrorIs(t, err, domain.ErrGrammarLookup)
}
