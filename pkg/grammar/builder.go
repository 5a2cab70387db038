package grammar

import "github.com/aretw0/treeoracle/pkg/domain"

// Builder manages grammar construction.
type Builder struct {
	name    string
	order   []domain.Label
	symbols map[domain.Label]*SymbolBuilder
}

// NewBuilder creates a new grammar builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		symbols: make(map[domain.Label]*SymbolBuilder),
	}
}

// Symbol starts (or resumes) the rule set for a nonterminal.
func (b *Builder) Symbol(symbol domain.Label) *SymbolBuilder {
	if sb, ok := b.symbols[symbol]; ok {
		return sb
	}
	sb := &SymbolBuilder{builder: b, symbol: symbol}
	b.symbols[symbol] = sb
	b.order = append(b.order, symbol)
	return sb
}

// Build compiles and validates the grammar.
func (b *Builder) Build() (*Grammar, error) {
	options := make(map[domain.Label][]*domain.Tree, len(b.symbols))
	weights := make(map[domain.Label][]float64, len(b.symbols))
	for symbol, sb := range b.symbols {
		options[symbol] = sb.options
		weights[symbol] = sb.weights
	}

	g := New(b.name, options, weights)
	g.order = append([]domain.Label(nil), b.order...)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustBuild is like Build but panics on an invalid grammar.
// It is meant for static configuration.
func (b *Builder) MustBuild() *Grammar {
	g, err := b.Build()
	if err != nil {
		panic("grammar " + b.name + ": " + err.Error())
	}
	return g
}

// SymbolBuilder provides a fluent API for one nonterminal's productions.
type SymbolBuilder struct {
	builder *Builder
	symbol  domain.Label
	options []*domain.Tree
	weights []float64
}

// Option adds a production with the given probability.
func (s *SymbolBuilder) Option(weight float64, template *domain.Tree) *SymbolBuilder {
	s.options = append(s.options, template)
	s.weights = append(s.weights, weight)
	return s
}

// Rule adds a production whose template is label(children...), each child a placeholder.
func (s *SymbolBuilder) Rule(weight float64, label domain.Label, children ...domain.Label) *SymbolBuilder {
	return s.Option(weight, Template(label, children...))
}

// Symbol switches to another nonterminal of the same builder.
func (s *SymbolBuilder) Symbol(symbol domain.Label) *SymbolBuilder {
	return s.builder.Symbol(symbol)
}

// Build finishes the grammar.
func (s *SymbolBuilder) Build() (*Grammar, error) {
	return s.builder.Build()
}

// MustBuild finishes the grammar, panicking if it is invalid.
func (s *SymbolBuilder) MustBuild() *Grammar {
	return s.builder.MustBuild()
}

// Template creates a one-level rule template label(children...).
func Template(label domain.Label, children ...domain.Label) *domain.Tree {
	leaves := make([]*domain.Tree, len(children))
	for i, c := range children {
		leaves[i] = domain.Leaf(c)
	}
	return domain.NewTree(label, leaves...)
}
