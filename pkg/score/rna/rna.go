// Package rna estimates an illustrative free energy for RNA secondary-structure trees.
//
// The model follows the stacking approximation of nearest-neighbour energy
// tables: stacked base pairs earn a fixed bonus, dangling strands and hairpin
// loops pay a cost logarithmic in their length. It is not thermodynamically
// calibrated.
package rna

import (
	"math"

	"github.com/aretw0/treeoracle/pkg/domain"
)

const evaluatorName = "rna"

// PairClass identifies one of the three canonical base pairs, order-independent.
type PairClass int

const (
	PairAU PairClass = iota
	PairCG
	PairGU
)

func (c PairClass) String() string {
	switch c {
	case PairAU:
		return "a,u"
	case PairCG:
		return "c,g"
	case PairGU:
		return "g,u"
	}
	return "invalid"
}

// StackingEnergy is indexed by [outer pair][inner pair].
var StackingEnergy = [3][3]float64{
	//  A/U   C/G   G/U
	{-0.9, -1.9, -0.9}, // A/U
	{-2.0, -2.8, -1.6}, // C/G
	{-0.8, -1.6, -0.5}, // G/U
}

// Energy model constants.
const (
	DangleBase   = 3.9
	DangleSlope  = 0.75
	HairpinBase  = 2.5
	HairpinSlope = 1.2
)

// ClassifyPair maps two bases to their canonical pair class.
func ClassifyPair(left, right domain.Label) (PairClass, error) {
	switch {
	case (left == domain.BaseA && right == domain.BaseU) || (left == domain.BaseU && right == domain.BaseA):
		return PairAU, nil
	case (left == domain.BaseC && right == domain.BaseG) || (left == domain.BaseG && right == domain.BaseC):
		return PairCG, nil
	case (left == domain.BaseG && right == domain.BaseU) || (left == domain.BaseU && right == domain.BaseG):
		return PairGU, nil
	}
	return 0, &domain.BasePairError{Left: left, Right: right}
}

// ChainLength counts the nodes of a link/end chain starting at t, following
// each link node's second child: 1 + count(tail) for link, 1 for end.
func ChainLength(t *domain.Tree, link, end domain.Label) (int, error) {
	n := 0
	for cur := t; ; {
		switch cur.Label {
		case link:
			if len(cur.Children) != 2 {
				return 0, &domain.ArityError{Label: cur.Label, Want: 2, Got: len(cur.Children)}
			}
			n++
			cur = cur.Children[1]
		case end:
			return n + 1, nil
		default:
			return 0, &domain.LabelError{Label: cur.Label, Evaluator: evaluatorName}
		}
	}
}

// Estimate returns the free-energy estimate of tree.
func Estimate(tree *domain.Tree) (float64, error) {
	switch tree.Label {
	case domain.LabelDangle:
		n, err := ChainLength(tree, domain.LabelDangle, domain.LabelDangleEnd)
		if err != nil {
			return 0, err
		}
		return DangleBase + DangleSlope*math.Log(float64(n)), nil

	case domain.LabelSplit, domain.LabelBranch:
		if err := arity(tree, 2); err != nil {
			return 0, err
		}
		a, err := Estimate(tree.Children[0])
		if err != nil {
			return 0, err
		}
		b, err := Estimate(tree.Children[1])
		if err != nil {
			return 0, err
		}
		return a + b, nil

	case domain.LabelPair:
		if err := arity(tree, 3); err != nil {
			return 0, err
		}
		inner := tree.Children[1]
		if inner.Label != domain.LabelPair {
			// An unstacked closing pair contributes nothing beyond its interior.
			return Estimate(inner)
		}
		if err := arity(inner, 3); err != nil {
			return 0, err
		}

		outerClass, err := ClassifyPair(tree.Children[0].Label, tree.Children[2].Label)
		if err != nil {
			return 0, err
		}
		innerClass, err := ClassifyPair(inner.Children[0].Label, inner.Children[2].Label)
		if err != nil {
			return 0, err
		}
		rest, err := Estimate(inner)
		if err != nil {
			return 0, err
		}
		return StackingEnergy[outerClass][innerClass] + rest, nil

	case domain.LabelHairpin:
		m, err := ChainLength(tree, domain.LabelHairpin, domain.LabelHairpinEnd)
		if err != nil {
			return 0, err
		}
		return HairpinBase + HairpinSlope*math.Log(float64(m)), nil

	default:
		return 0, &domain.LabelError{Label: tree.Label, Evaluator: evaluatorName}
	}
}

func arity(tree *domain.Tree, want int) error {
	if len(tree.Children) != want {
		return &domain.ArityError{Label: tree.Label, Want: want, Got: len(tree.Children)}
	}
	return nil
}

// Scorer adapts Estimate to the scorer interface.
type Scorer struct{}

// Score returns the free-energy estimate of tree.
func (Scorer) Score(tree *domain.Tree) (float64, error) {
	return Estimate(tree)
}
