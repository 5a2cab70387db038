// Package logical evaluates Boolean-expression trees under a fuzzy semantics.
package logical

import (
	"math"

	"github.com/aretw0/treeoracle/pkg/domain"
)

const evaluatorName = "logical"

// Evaluate returns the fuzzy truth value of tree for inputs x and y.
//
// Callers pass x, y in [0, 1] to keep the result in [0, 1]; no clamping is done.
// or is the saturating sum min(1, a+b), not the max-based disjunction.
func Evaluate(tree *domain.Tree, x, y float64) (float64, error) {
	switch tree.Label {
	case domain.LabelX:
		return x, nil
	case domain.LabelY:
		return y, nil
	case domain.LabelNot:
		if err := arity(tree, 1); err != nil {
			return 0, err
		}
		a, err := Evaluate(tree.Children[0], x, y)
		if err != nil {
			return 0, err
		}
		return 1 - a, nil
	case domain.LabelAnd:
		a, b, err := binary(tree, x, y)
		if err != nil {
			return 0, err
		}
		return a * b, nil
	case domain.LabelOr:
		a, b, err := binary(tree, x, y)
		if err != nil {
			return 0, err
		}
		return math.Min(1, a+b), nil
	default:
		return 0, &domain.LabelError{Label: tree.Label, Evaluator: evaluatorName}
	}
}

func binary(tree *domain.Tree, x, y float64) (float64, float64, error) {
	if err := arity(tree, 2); err != nil {
		return 0, 0, err
	}
	a, err := Evaluate(tree.Children[0], x, y)
	if err != nil {
		return 0, 0, err
	}
	b, err := Evaluate(tree.Children[1], x, y)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func arity(tree *domain.Tree, want int) error {
	if len(tree.Children) != want {
		return &domain.ArityError{Label: tree.Label, Want: want, Got: len(tree.Children)}
	}
	return nil
}

// Scorer evaluates trees at fixed inputs.
type Scorer struct {
	X float64
	Y float64
}

// NewScorer returns the scorer used by the oracle: x = 0, y = 1.
func NewScorer() Scorer {
	return Scorer{X: 0, Y: 1}
}

// Score evaluates tree at the scorer's inputs.
func (s Scorer) Score(tree *domain.Tree) (float64, error) {
	return Evaluate(tree, s.X, s.Y)
}
