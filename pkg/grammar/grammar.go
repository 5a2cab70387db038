package grammar

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// Tolerance is the allowed deviation of a weight vector's sum from one.
const Tolerance = 1e-9

// Grammar is an immutable mapping from nonterminal to weighted rule templates.
type Grammar struct {
	name    string
	order   []domain.Label
	options map[domain.Label][]*domain.Tree
	weights map[domain.Label][]float64

	once sync.Once
	err  error
}

// New creates a grammar from parallel option and weight maps.
// Templates and weight slices are copied, so later changes by the caller have
// no effect. New does not validate; Validate runs before first use.
func New(name string, options map[domain.Label][]*domain.Tree, weights map[domain.Label][]float64) *Grammar {
	g := &Grammar{
		name:    name,
		options: make(map[domain.Label][]*domain.Tree, len(options)),
		weights: make(map[domain.Label][]float64, len(weights)),
	}

	seen := make(map[domain.Label]bool, len(options))
	for symbol, opts := range options {
		cloned := make([]*domain.Tree, len(opts))
		for i, o := range opts {
			cloned[i] = o.Clone()
		}
		g.options[symbol] = cloned
		seen[symbol] = true
	}
	for symbol, ws := range weights {
		g.weights[symbol] = append([]float64(nil), ws...)
		seen[symbol] = true
	}

	for symbol := range seen {
		g.order = append(g.order, symbol)
	}
	sort.Slice(g.order, func(i, j int) bool { return g.order[i] < g.order[j] })
	return g
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Symbols returns the nonterminals in definition order.
func (g *Grammar) Symbols() []domain.Label {
	return append([]domain.Label(nil), g.order...)
}

// IsNonterminal reports whether label is a key of the grammar.
func (g *Grammar) IsNonterminal(label domain.Label) bool {
	_, ok := g.options[label]
	if !ok {
		_, ok = g.weights[label]
	}
	return ok
}

// Lookup returns the rule templates and weights for symbol.
// The returned slices belong to the grammar and must be treated as read-only.
func (g *Grammar) Lookup(symbol domain.Label) ([]*domain.Tree, []float64, bool) {
	opts, ok := g.options[symbol]
	if !ok {
		return nil, nil, false
	}
	return opts, g.weights[symbol], true
}

// Validate checks every rule set and caches the result.
// It reports, in aggregate: option/weight length mismatches, empty rule sets,
// negative weights, weight vectors not summing to one, template children that
// are not bare placeholders, and placeholders that are not grammar keys.
func (g *Grammar) Validate() error {
	g.once.Do(func() {
		g.err = g.validate()
	})
	return g.err
}

func (g *Grammar) validate() error {
	var errs []error

	for _, symbol := range g.order {
		opts, hasOpts := g.options[symbol]
		ws := g.weights[symbol]

		if !hasOpts || len(opts) == 0 {
			errs = append(errs, &domain.ConfigError{Symbol: symbol, Reason: "no rule options"})
			continue
		}
		if len(opts) != len(ws) {
			errs = append(errs, &domain.ConfigError{
				Symbol: symbol,
				Reason: fmt.Sprintf("there are %d rule options but %d probabilities", len(opts), len(ws)),
			})
			continue
		}

		var sum float64
		for i, w := range ws {
			if w < 0 || math.IsNaN(w) {
				errs = append(errs, &domain.ConfigError{
					Symbol: symbol,
					Reason: fmt.Sprintf("probability %d is %v", i, w),
				})
			}
			sum += w
		}
		if math.Abs(sum-1) > Tolerance {
			errs = append(errs, &domain.ConfigError{
				Symbol: symbol,
				Reason: fmt.Sprintf("probabilities sum to %v, not 1", sum),
			})
		}

		for _, tmpl := range opts {
			for _, child := range tmpl.Children {
				if !child.IsLeaf() {
					errs = append(errs, &domain.ConfigError{
						Symbol: symbol,
						Reason: fmt.Sprintf("template %s has a non-placeholder child %s", tmpl, child),
					})
					continue
				}
				if !g.IsNonterminal(child.Label) {
					errs = append(errs, &domain.LookupError{Symbol: child.Label})
				}
			}
		}
	}

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// Normalized returns a copy whose weight vectors are rescaled to sum to one.
// It fails when a vector is empty, mismatched, negative or sums to zero.
func (g *Grammar) Normalized() (*Grammar, error) {
	weights := make(map[domain.Label][]float64, len(g.weights))
	for _, symbol := range g.order {
		opts := g.options[symbol]
		ws := g.weights[symbol]
		if len(opts) != len(ws) {
			return nil, &domain.ConfigError{
				Symbol: symbol,
				Reason: fmt.Sprintf("there are %d rule options but %d probabilities", len(opts), len(ws)),
			}
		}

		var sum float64
		for _, w := range ws {
			if w < 0 {
				return nil, &domain.ConfigError{Symbol: symbol, Reason: "negative probability"}
			}
			sum += w
		}
		if sum == 0 {
			return nil, &domain.ConfigError{Symbol: symbol, Reason: "probabilities sum to 0"}
		}

		scaled := make([]float64, len(ws))
		for i, w := range ws {
			scaled[i] = w / sum
		}
		weights[symbol] = scaled
	}

	n := New(g.name, g.options, weights)
	n.order = append([]domain.Label(nil), g.order...)
	return n, nil
}
