// Package report renders grammars and samples as markdown documents.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/treeoracle/internal/presentation/graph"
	"github.com/aretw0/treeoracle/internal/validator"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
)

// Grammar renders the productions of gr as a markdown table, followed by the
// analysis summary when analysis is non-nil.
func Grammar(gr *grammar.Grammar, analysis *validator.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Grammar `%s`\n\n", gr.Name())
	sb.WriteString("| Symbol | Weight | Template |\n")
	sb.WriteString("|--------|-------:|----------|\n")
	for _, sym := range gr.Symbols() {
		options, weights, _ := gr.Lookup(sym)
		for i, opt := range options {
			fmt.Fprintf(&sb, "| `%s` | %s | `%s` |\n", sym, strconv.FormatFloat(weights[i], 'f', -1, 64), opt)
		}
	}

	if analysis != nil {
		sb.WriteString("\n## Analysis\n\n")
		fmt.Fprintf(&sb, "- **Start:** `%s`\n", analysis.Start)
		fmt.Fprintf(&sb, "- **Reachable symbols:** %d\n", len(analysis.Reachable))
		if len(analysis.Unreachable) > 0 {
			fmt.Fprintf(&sb, "- **Unreachable:** %s\n", codeList(analysis.Unreachable))
		}
		if len(analysis.Unproductive) > 0 {
			fmt.Fprintf(&sb, "- **Unproductive:** %s\n", codeList(analysis.Unproductive))
		}
		if math.IsInf(analysis.ExpectedSize, 1) {
			sb.WriteString("- **Expected tree size:** unbounded\n")
		} else {
			fmt.Fprintf(&sb, "- **Expected tree size:** %.2f nodes\n", analysis.ExpectedSize)
		}
	}

	return sb.String()
}

// Sample renders one sample with its tree as a Mermaid block.
func Sample(s *domain.Sample) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Sample `%s`\n\n", s.ID)
	fmt.Fprintf(&sb, "- **Grammar:** %s\n", s.Grammar)
	fmt.Fprintf(&sb, "- **Seed:** %d (index %d)\n", s.Seed, s.Index)
	fmt.Fprintf(&sb, "- **Size:** %d nodes\n", s.Size)
	fmt.Fprintf(&sb, "- **Score:** %g\n\n", s.Score)
	sb.WriteString("```mermaid\n")
	sb.WriteString(graph.TreeMermaid(s.Tree, nil))
	sb.WriteString("```\n")
	return sb.String()
}

func codeList(labels []domain.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = "`" + string(l) + "`"
	}
	return strings.Join(parts, ", ")
}
