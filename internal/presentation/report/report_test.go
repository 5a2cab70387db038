package report_test

import (
	"testing"

	"github.com/aretw0/treeoracle/internal/presentation/report"
	"github.com/aretw0/treeoracle/internal/validator"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar(t *testing.T) {
	analysis, err := validator.Analyze(grammar.Logical(), grammar.Start)
	require.NoError(t, err)

	out := report.Grammar(grammar.Logical(), analysis)

	assert.Contains(t, out, "# Grammar `logical`")
	assert.Contains(t, out, "| `S` | 0.2 | `not(S)` |")
	assert.Contains(t, out, "| `S` | 0.15 | `and(S, S)` |")
	assert.Contains(t, out, "| `S` | 0.25 | `x` |")
	assert.Contains(t, out, "**Expected tree size:** 5.00 nodes")
}

func TestGrammar_NoAnalysis(t *testing.T) {
	out := report.Grammar(grammar.RNA(), nil)
	assert.NotContains(t, out, "## Analysis")
	assert.Contains(t, out, "`hairpin_end(B)`")
}

func TestSample(t *testing.T) {
	s := &domain.Sample{
		ID:      "abc",
		Grammar: "logical",
		Seed:    3,
		Tree:    domain.NewTree(domain.LabelNot, domain.Leaf(domain.LabelX)),
		Size:    2,
		Score:   1,
	}
	out := report.Sample(s)
	assert.Contains(t, out, "# Sample `abc`")
	assert.Contains(t, out, "```mermaid\ngraph TD\n")
	assert.Contains(t, out, `n1(("x"))`)
}
