package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/sampler"
)

// DefaultMaxSteps bounds the number of expansions of a single generation.
const DefaultMaxSteps = 1_000_000

// nilLabel marks the synthetic root that holds the start placeholder.
const nilLabel domain.Label = "$nil"

// Generator samples concrete trees from grammars.
// A Generator holds no per-generation state and is safe for concurrent use,
// provided each call receives its own Source.
type Generator struct {
	logger   *slog.Logger
	hooks    domain.Hooks
	maxSteps int
	validate bool
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithMaxSteps bounds the expansions per generation. Zero disables the bound.
func WithMaxSteps(n int) Option {
	return func(g *Generator) {
		g.maxSteps = n
	}
}

// WithValidation toggles whole-grammar validation before the first expansion.
// When disabled only the per-site checks of the expansion loop apply.
func WithValidation(enabled bool) Option {
	return func(g *Generator) {
		g.validate = enabled
	}
}

// NewGenerator creates a generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSteps: DefaultMaxSteps,
		validate: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// site references a child slot whose current content is an unexpanded placeholder.
type site struct {
	parent *domain.Tree
	index  int
}

// Generate samples a tree from gr starting at start, drawing from src.
//
// The synthetic root's single child slot holds the start placeholder. Each
// popped site is rewritten with a deep clone of a weighted-random template, and
// the clone's children are pushed last-first so that expansion proceeds
// depth-first, left to right. For a fixed sequence of draws the result is
// therefore reproducible.
func (g *Generator) Generate(ctx context.Context, start domain.Label, gr *grammar.Grammar, src sampler.Source) (*domain.Tree, error) {
	if g.validate {
		if err := gr.Validate(); err != nil {
			return nil, fmt.Errorf("grammar %q: %w", gr.Name(), err)
		}
	}
	if !gr.IsNonterminal(start) {
		return nil, &domain.LookupError{Symbol: start}
	}

	began := time.Now()
	root := domain.NewTree(nilLabel, domain.Leaf(start))
	stack := []site{{parent: root, index: 0}}

	steps := 0
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			g.logger.Debug("generation cancelled", "grammar", gr.Name(), "start", start, "steps", steps)
			return nil, err
		}
		if g.maxSteps > 0 && steps >= g.maxSteps {
			g.logger.Debug("generation aborted", "grammar", gr.Name(), "start", start, "steps", steps)
			return nil, &domain.NonterminationError{Start: start, Steps: g.maxSteps}
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		symbol := s.parent.Children[s.index].Label
		options, weights, ok := gr.Lookup(symbol)
		if !ok {
			return nil, &domain.LookupError{Symbol: symbol}
		}
		if len(options) != len(weights) {
			return nil, &domain.ConfigError{
				Symbol: symbol,
				Reason: fmt.Sprintf("there are %d rule options but %d probabilities", len(options), len(weights)),
			}
		}

		r, err := sampler.Choose(src, weights)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", symbol, err)
		}

		expanded := options[r].Clone()
		s.parent.Children[s.index] = expanded
		steps++

		if g.hooks.OnExpand != nil {
			g.hooks.OnExpand(ctx, &domain.ExpandEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventExpand, Grammar: gr.Name()},
				Symbol:    symbol,
				Option:    r,
				Step:      steps,
			})
		}

		for c := len(expanded.Children) - 1; c >= 0; c-- {
			stack = append(stack, site{parent: expanded, index: c})
		}
	}

	g.logger.Debug("tree generated", "grammar", gr.Name(), "start", start, "steps", steps, "elapsed", time.Since(began))
	return root.Children[0], nil
}
