// Package validator inspects a grammar beyond structural validity: which
// symbols a start symbol reaches, which can finish a derivation, and how
// large an average derivation is.
package validator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
)

// maxIterations bounds the fixed-point iteration of ExpectedSize.
const maxIterations = 10_000

// divergenceLimit marks an expected size as unbounded.
const divergenceLimit = 1e12

// Report summarizes a grammar analysis.
type Report struct {
	Start       domain.Label
	Reachable   []domain.Label
	Unreachable []domain.Label
	// Unproductive symbols cannot derive any finite tree.
	Unproductive []domain.Label
	// ExpectedSize is the mean node count of a tree grown from Start;
	// +Inf when the branching process is critical or supercritical.
	ExpectedSize float64
}

// Finite reports whether generation from Start terminates with probability one
// and a finite mean size.
func (r *Report) Finite() bool {
	return !math.IsInf(r.ExpectedSize, 1) && len(r.Unproductive) == 0
}

// Analyze validates gr and then crawls it from start.
func Analyze(gr *grammar.Grammar, start domain.Label) (*Report, error) {
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	if !gr.IsNonterminal(start) {
		return nil, &domain.LookupError{Symbol: start}
	}

	report := &Report{Start: start}

	reach := Reachable(gr, start)
	for _, sym := range gr.Symbols() {
		if reach[sym] {
			report.Reachable = append(report.Reachable, sym)
		} else {
			report.Unreachable = append(report.Unreachable, sym)
		}
	}

	productive := Productive(gr)
	for _, sym := range report.Reachable {
		if !productive[sym] {
			report.Unproductive = append(report.Unproductive, sym)
		}
	}

	report.ExpectedSize = ExpectedSizes(gr)[start]
	return report, nil
}

// Reachable returns every symbol reachable from start, start included.
func Reachable(gr *grammar.Grammar, start domain.Label) map[domain.Label]bool {
	visited := make(map[domain.Label]bool)
	queue := []domain.Label{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		options, weights, ok := gr.Lookup(current)
		if !ok {
			continue
		}
		for i, opt := range options {
			if weights[i] == 0 {
				continue // never chosen
			}
			for _, child := range opt.Children {
				if !visited[child.Label] {
					queue = append(queue, child.Label)
				}
			}
		}
	}

	return visited
}

// Productive returns the symbols with at least one positive-weight option
// whose placeholders are all productive, computed as a least fixed point.
func Productive(gr *grammar.Grammar) map[domain.Label]bool {
	productive := make(map[domain.Label]bool)

	for changed := true; changed; {
		changed = false
		for _, sym := range gr.Symbols() {
			if productive[sym] {
				continue
			}
			options, weights, _ := gr.Lookup(sym)
			for i, opt := range options {
				if weights[i] == 0 {
					continue
				}
				ok := true
				for _, child := range opt.Children {
					if !productive[child.Label] {
						ok = false
						break
					}
				}
				if ok {
					productive[sym] = true
					changed = true
					break
				}
			}
		}
	}

	return productive
}

// ExpectedSizes returns the mean node count of a tree derived from each symbol.
// It iterates E(s) = 1 + sum_o w_o * sum_c E(c) from zero; the iteration
// increases monotonically and converges exactly when the mean is finite.
func ExpectedSizes(gr *grammar.Grammar) map[domain.Label]float64 {
	symbols := gr.Symbols()
	sizes := make(map[domain.Label]float64, len(symbols))

	for iter := 0; iter < maxIterations; iter++ {
		next := make(map[domain.Label]float64, len(symbols))
		delta := 0.0
		for _, sym := range symbols {
			options, weights, _ := gr.Lookup(sym)
			e := 1.0
			for i, opt := range options {
				if weights[i] == 0 {
					continue
				}
				sum := 0.0
				for _, child := range opt.Children {
					sum += sizes[child.Label]
				}
				e += weights[i] * sum
			}
			next[sym] = e
			delta = math.Max(delta, math.Abs(e-sizes[sym]))
		}
		sizes = next
		if delta < 1e-9 {
			return sizes
		}
	}

	// Not converged: symbols still growing are unbounded.
	for sym, e := range sizes {
		if e > divergenceLimit || !converged(gr, sizes, sym) {
			sizes[sym] = math.Inf(1)
		}
	}
	return sizes
}

func converged(gr *grammar.Grammar, sizes map[domain.Label]float64, sym domain.Label) bool {
	options, weights, _ := gr.Lookup(sym)
	e := 1.0
	for i, opt := range options {
		for _, child := range opt.Children {
			e += weights[i] * sizes[child.Label]
		}
	}
	return math.Abs(e-sizes[sym]) < 1e-6*math.Max(1, e)
}

// String renders the report as a short multi-line summary.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start: %s\n", r.Start)
	fmt.Fprintf(&sb, "reachable: %s\n", join(r.Reachable))
	if len(r.Unreachable) > 0 {
		fmt.Fprintf(&sb, "unreachable: %s\n", join(r.Unreachable))
	}
	if len(r.Unproductive) > 0 {
		fmt.Fprintf(&sb, "unproductive: %s\n", join(r.Unproductive))
	}
	if math.IsInf(r.ExpectedSize, 1) {
		sb.WriteString("expected size: unbounded\n")
	} else {
		fmt.Fprintf(&sb, "expected size: %.2f nodes\n", r.ExpectedSize)
	}
	return sb.String()
}

func join(labels []domain.Label) string {
	s := make([]string, len(labels))
	for i, l := range labels {
		s[i] = string(l)
	}
	sort.Strings(s)
	return strings.Join(s, ", ")
}
