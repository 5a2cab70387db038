package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_String(t *testing.T) {
	tests := []struct {
		name string
		tree *domain.Tree
		want string
	}{
		{"Leaf", domain.Leaf("x"), "x"},
		{"Unary", domain.NewTree("not", domain.Leaf("y")), "not(y)"},
		{
			name: "Nested",
			tree: domain.NewTree("and",
				domain.NewTree("or", domain.Leaf("x"), domain.Leaf("y")),
				domain.NewTree("not", domain.Leaf("x")),
			),
			want: "and(or(x, y), not(x))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tree.String())
		})
	}
}

func TestNewTree_IndependentChildren(t *testing.T) {
	a := domain.Leaf("a")
	b := domain.Leaf("b")

	a.Children = append(a.Children, domain.Leaf("c"))
	assert.Empty(t, b.Children, "appending to one childless node must not leak into another")

	kids := []*domain.Tree{domain.Leaf("x"), domain.Leaf("y")}
	parent := domain.NewTree("and", kids...)
	kids[0] = domain.Leaf("z")
	assert.Equal(t, "and(x, y)", parent.String())
}

func TestTree_Clone(t *testing.T) {
	orig := domain.NewTree("pair",
		domain.Leaf("C"),
		domain.NewTree("hairpin", domain.Leaf("B"), domain.Leaf("H1")),
		domain.Leaf("G"),
	)
	cp := orig.Clone()
	require.Equal(t, orig.String(), cp.String())

	cp.Children[1].Children[0] = domain.Leaf("c")
	cp.Children[0].Label = "g"

	assert.Equal(t, "pair(C, hairpin(B, H1), G)", orig.String())
	assert.Equal(t, "pair(g, hairpin(c, H1), G)", cp.String())
	assert.Nil(t, (*domain.Tree)(nil).Clone())
}

func TestTree_Metrics(t *testing.T) {
	tree := domain.NewTree("split",
		domain.NewTree("dangle", domain.Leaf("a"), domain.NewTree("dangle_end", domain.Leaf("c"))),
		domain.Leaf("g"),
	)
	assert.Equal(t, 6, tree.Size())
	assert.Equal(t, 4, tree.Depth())
	assert.Equal(t, []domain.Label{"a", "c", "g"}, tree.Leaves())
	assert.Equal(t, 1, domain.Leaf("x").Size())
}

func TestTree_JSON(t *testing.T) {
	tree := domain.NewTree("not", domain.Leaf("x"))
	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"not","children":[{"label":"x"}]}`, string(data))
}

func TestAlphabet_Check(t *testing.T) {
	alphabet := domain.Alphabet{"not": 1, "x": 0}

	assert.NoError(t, alphabet.Check(domain.NewTree("not", domain.NewTree("not", domain.Leaf("x")))))

	err := alphabet.Check(domain.NewTree("not", domain.Leaf("y")))
	assert.ErrorIs(t, err, domain.ErrUnknownLabel)

	err = alphabet.Check(domain.NewTree("not", domain.Leaf("x"), domain.Leaf("x")))
	assert.ErrorIs(t, err, domain.ErrGrammarConfig)
	var arity *domain.ArityError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 1, arity.Want)
	assert.Equal(t, 2, arity.Got)
}

func TestAggregateError(t *testing.T) {
	err := &domain.AggregateError{Errors: []error{
		&domain.LookupError{Symbol: "Q"},
		&domain.ConfigError{Symbol: "S", Reason: "weights sum to 0.9"},
	}}

	assert.ErrorIs(t, err, domain.ErrGrammarLookup)
	assert.ErrorIs(t, err, domain.ErrGrammarConfig)
	assert.NotErrorIs(t, err, domain.ErrUnknownLabel)
	assert.Len(t, domain.ValidationErrors(err), 2)
	assert.Contains(t, err.Error(), "2 validation errors")
	assert.Nil(t, domain.ValidationErrors(errors.New("plain")))
}

func TestSample_Snapshot(t *testing.T) {
	s := &domain.Sample{ID: "s1", Tree: domain.NewTree("not", domain.Leaf("x")), Score: 1}
	cp := s.Snapshot()
	cp.Tree.Children[0].Label = "y"
	assert.Equal(t, "not(x)", s.Tree.String())
}
