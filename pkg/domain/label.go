package domain

// Label tags the construct a node represents.
// During generation a label may also name a nonterminal placeholder.
type Label string

// Logical grammar constructs.
const (
	LabelX   Label = "x"
	LabelY   Label = "y"
	LabelNot Label = "not"
	LabelAnd Label = "and"
	LabelOr  Label = "or"
)

// RNA secondary-structure constructs.
const (
	LabelDangle     Label = "dangle"
	LabelDangleEnd  Label = "dangle_end"
	LabelSplit      Label = "split"
	LabelBranch     Label = "branch"
	LabelPair       Label = "pair"
	LabelHairpin    Label = "hairpin"
	LabelHairpinEnd Label = "hairpin_end"
)

// RNA bases.
const (
	BaseA Label = "a"
	BaseC Label = "c"
	BaseG Label = "g"
	BaseU Label = "u"
)

// IsBase reports whether the label is one of the four RNA bases.
func (l Label) IsBase() bool {
	switch l {
	case BaseA, BaseC, BaseG, BaseU:
		return true
	}
	return false
}
