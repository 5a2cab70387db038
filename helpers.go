package treeoracle

import (
	"context"

	"github.com/aretw0/treeoracle/internal/runtime"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/sampler"
	"github.com/aretw0/treeoracle/pkg/score/logical"
	"github.com/aretw0/treeoracle/pkg/score/rna"
)

var defaultGenerator = runtime.NewGenerator()

// GenerateTree samples a tree from gr at start, drawing from src.
func GenerateTree(start domain.Label, gr *grammar.Grammar, src sampler.Source) (*domain.Tree, error) {
	return defaultGenerator.Generate(context.Background(), start, gr, src)
}

// TreeSize returns the number of nodes of tree, root included.
func TreeSize(tree *domain.Tree) int {
	return tree.Size()
}

// EvaluateLogical evaluates a logical tree with x and y bound to truth values.
func EvaluateLogical(tree *domain.Tree, x, y float64) (float64, error) {
	return logical.Evaluate(tree, x, y)
}

// EstimateEnergy returns the free-energy estimate of an RNA tree.
func EstimateEnergy(tree *domain.Tree) (float64, error) {
	return rna.Estimate(tree)
}
