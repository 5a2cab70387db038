package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
)

// TreeOverlay highlights nodes of a rendered tree.
type TreeOverlay struct {
	// Labels lists node labels to highlight, e.g. every "pair".
	Labels []domain.Label
}

// TreeMermaid produces a Mermaid flowchart of a derivation tree.
// Nodes are numbered in pre-order; leaves are drawn as circles.
// The walk uses an explicit stack so very deep trees render without recursion.
func TreeMermaid(tree *domain.Tree, overlay *TreeOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	type item struct {
		node   *domain.Tree
		parent int
	}

	highlight := make(map[domain.Label]bool)
	if overlay != nil {
		for _, l := range overlay.Labels {
			highlight[l] = true
		}
	}
	var marked []int

	next := 0
	stack := []item{{node: tree, parent: -1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := next
		next++

		opener, closer := "[", "]"
		if it.node.IsLeaf() {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    n%d%s\"%s\"%s\n", id, opener, escape(string(it.node.Label)), closer)
		if it.parent >= 0 {
			fmt.Fprintf(&sb, "    n%d --> n%d\n", it.parent, id)
		}
		if highlight[it.node.Label] {
			marked = append(marked, id)
		}

		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: it.node.Children[i], parent: id})
		}
	}

	if len(marked) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef marked fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		for _, id := range marked {
			fmt.Fprintf(&sb, "    class n%d marked;\n", id)
		}
	}

	return sb.String()
}

// GrammarMermaid produces a Mermaid flowchart of a grammar's productions.
// Nonterminals are rectangles, rule templates are subroutines labelled with
// their construct, and edges from a symbol carry the option weight.
func GrammarMermaid(gr *grammar.Grammar) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, sym := range gr.Symbols() {
		safeSym := sanitizeMermaidID(string(sym))
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", safeSym, escape(string(sym)))
	}

	for _, sym := range gr.Symbols() {
		safeSym := sanitizeMermaidID(string(sym))
		options, weights, _ := gr.Lookup(sym)
		for i, opt := range options {
			optID := fmt.Sprintf("%s__%d", safeSym, i)
			fmt.Fprintf(&sb, "    %s[[\"%s\"]]\n", optID, escape(string(opt.Label)))

			arrow := fmt.Sprintf("-- \"%s\" -->", strconv.FormatFloat(weights[i], 'g', -1, 64))
			if weights[i] == 0 {
				arrow = "-. \"0\" .->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeSym, arrow, optID)

			for _, child := range opt.Children {
				fmt.Fprintf(&sb, "    %s --> %s\n", optID, sanitizeMermaidID(string(child.Label)))
			}
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "$", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return "sym_" + s
}
