// Package registry maps grammar names to everything needed to sample and
// score them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/grammar"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/score/logical"
	"github.com/aretw0/treeoracle/pkg/score/rna"
)

// Entry binds a grammar to its start symbol and scorer.
type Entry struct {
	Grammar *grammar.Grammar
	Start   domain.Label
	Scorer  ports.Scorer
	// Alphabet, when set, is checked against every generated tree.
	Alphabet domain.Alphabet
}

// Registry manages the available grammars.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Default returns a registry holding the logical and RNA reference grammars.
// The logical scorer binds x and y.
func Default(x, y float64) *Registry {
	r := NewRegistry()
	r.Register(grammar.NameLogical, Entry{
		Grammar:  grammar.Logical(),
		Start:    grammar.Start,
		Scorer:   logical.Scorer{X: x, Y: y},
		Alphabet: grammar.LogicalAlphabet(),
	})
	r.Register(grammar.NameRNA, Entry{
		Grammar:  grammar.RNA(),
		Start:    grammar.Start,
		Scorer:   rna.Scorer{},
		Alphabet: grammar.RNAAlphabet(),
	})
	return r
}

// Register adds a grammar to the registry.
// If a grammar with the same name exists, it is overwritten.
func (r *Registry) Register(name string, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = e
}

// Get looks up a grammar by name.
// Returns an error matching domain.ErrGrammarLookup if it is not registered.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("grammar %q: %w", name, domain.ErrGrammarLookup)
	}
	return e, nil
}

// Names returns the registered grammar names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
