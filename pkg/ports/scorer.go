package ports

import "github.com/aretw0/treeoracle/pkg/domain"

// Scorer maps a generated tree to a scalar label.
type Scorer interface {
	Score(tree *domain.Tree) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(tree *domain.Tree) (float64, error)

// Score calls f(tree).
func (f ScorerFunc) Score(tree *domain.Tree) (float64, error) {
	return f(tree)
}
