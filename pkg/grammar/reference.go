package grammar

import (
	"sync"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// Start is the start symbol of both reference grammars.
const Start domain.Label = "S"

// Reference grammar names.
const (
	NameLogical = "logical"
	NameRNA     = "rna"
)

var logical = sync.OnceValue(func() *Grammar {
	return NewBuilder(NameLogical).
		Symbol("S").
		Rule(0.20, domain.LabelNot, "S").
		Rule(0.15, domain.LabelAnd, "S", "S").
		Rule(0.15, domain.LabelOr, "S", "S").
		Rule(0.25, domain.LabelX).
		Rule(0.25, domain.LabelY).
		MustBuild()
})

// Logical returns the grammar of fuzzy Boolean expressions over x and y.
func Logical() *Grammar {
	return logical()
}

var rna = sync.OnceValue(func() *Grammar {
	b := NewBuilder(NameRNA)

	// structures
	b.Symbol("S").
		Rule(0.10, domain.LabelDangle, "B", "D").
		Rule(0.05, domain.LabelSplit, "S", "S").
		Rule(0.20, domain.LabelPair, "C", "I", "G").
		Rule(0.15, domain.LabelPair, "G", "I", "C").
		Rule(0.15, domain.LabelPair, "A", "I", "U").
		Rule(0.15, domain.LabelPair, "U", "I", "A").
		Rule(0.10, domain.LabelPair, "U", "I", "G").
		Rule(0.10, domain.LabelPair, "G", "I", "U")

	// dangling bases
	b.Symbol("D").
		Rule(0.3, domain.LabelDangle, "B", "D").
		Rule(0.7, domain.LabelDangleEnd, "B")

	// continuations within a stack: branch, open a hairpin, or keep stacking
	b.Symbol("I").
		Rule(0.05, domain.LabelBranch, "I", "I").
		Rule(0.05, domain.LabelPair, "C", "H0", "G").
		Rule(0.05, domain.LabelPair, "G", "H0", "C").
		Rule(0.05, domain.LabelPair, "A", "H0", "U").
		Rule(0.05, domain.LabelPair, "U", "H0", "A").
		Rule(0.05, domain.LabelPair, "U", "H0", "G").
		Rule(0.05, domain.LabelPair, "G", "H0", "U").
		Rule(0.10, domain.LabelPair, "C", "I", "G").
		Rule(0.10, domain.LabelPair, "G", "I", "C").
		Rule(0.15, domain.LabelPair, "A", "I", "U").
		Rule(0.10, domain.LabelPair, "U", "I", "A").
		Rule(0.10, domain.LabelPair, "U", "I", "G").
		Rule(0.10, domain.LabelPair, "G", "I", "U")

	// hairpins have at least three unpaired bases
	b.Symbol("H0").Rule(1, domain.LabelHairpin, "B", "H1")
	b.Symbol("H1").Rule(1, domain.LabelHairpin, "B", "H2")
	b.Symbol("H2").Rule(1, domain.LabelHairpin, "B", "H")
	b.Symbol("H").
		Rule(0.2, domain.LabelHairpin, "B", "H").
		Rule(0.8, domain.LabelHairpinEnd, "B")

	// bases
	b.Symbol("B").
		Rule(0.25, domain.BaseC).
		Rule(0.25, domain.BaseG).
		Rule(0.25, domain.BaseA).
		Rule(0.25, domain.BaseU)
	b.Symbol("C").Rule(1, domain.BaseC)
	b.Symbol("G").Rule(1, domain.BaseG)
	b.Symbol("A").Rule(1, domain.BaseA)
	b.Symbol("U").Rule(1, domain.BaseU)

	return b.MustBuild()
})

// RNA returns the grammar of RNA secondary structures.
func RNA() *Grammar {
	return rna()
}

// ByName returns a reference grammar by name.
func ByName(name string) (*Grammar, bool) {
	switch name {
	case NameLogical:
		return Logical(), true
	case NameRNA:
		return RNA(), true
	}
	return nil, false
}

// Names lists the reference grammars.
func Names() []string {
	return []string{NameLogical, NameRNA}
}

// LogicalAlphabet returns the arity of every construct of the logical grammar.
func LogicalAlphabet() domain.Alphabet {
	return domain.Alphabet{
		domain.LabelNot: 1,
		domain.LabelAnd: 2,
		domain.LabelOr:  2,
		domain.LabelX:   0,
		domain.LabelY:   0,
	}
}

// RNAAlphabet returns the arity of every construct of the RNA grammar.
func RNAAlphabet() domain.Alphabet {
	return domain.Alphabet{
		domain.LabelDangle:     2,
		domain.LabelDangleEnd:  1,
		domain.LabelSplit:      2,
		domain.LabelPair:       3,
		domain.LabelBranch:     2,
		domain.LabelHairpin:    2,
		domain.LabelHairpinEnd: 1,
		domain.BaseC:           0,
		domain.BaseG:           0,
		domain.BaseA:           0,
		domain.BaseU:           0,
	}
}
