package domain

import (
	"errors"
	"fmt"
)

// ErrGrammarLookup is returned when a nonterminal is not a key of the grammar.
var ErrGrammarLookup = errors.New("nonterminal not found in grammar")

// ErrGrammarConfig is returned when a grammar is malformed: options and weights
// differ in length, weights are negative or do not sum to one, or a generated
// node does not match its alphabet arity.
var ErrGrammarConfig = errors.New("invalid grammar configuration")

// ErrGrammarNontermination is returned when generation exceeds its step bound.
var ErrGrammarNontermination = errors.New("grammar did not terminate")

// ErrUnknownLabel is returned when a scorer meets a label outside its alphabet.
var ErrUnknownLabel = errors.New("unknown label")

// ErrInvalidBasePair is returned when two bases do not form a canonical pair.
var ErrInvalidBasePair = errors.New("invalid base pair")

// ErrSampleNotFound is returned when a sample ID cannot be found in the store.
var ErrSampleNotFound = errors.New("sample not found")

// LookupError reports the nonterminal that could not be resolved.
type LookupError struct {
	Symbol Label
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("symbol %q: %s", e.Symbol, ErrGrammarLookup)
}

func (e *LookupError) Is(target error) bool { return target == ErrGrammarLookup }

// ConfigError reports a malformed rule set for one symbol.
type ConfigError struct {
	Symbol Label
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("symbol %q: %s", e.Symbol, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrGrammarConfig }

// ArityError reports a node whose child count differs from its alphabet entry.
type ArityError struct {
	Label Label
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("label %q: expected %d children, got %d", e.Label, e.Want, e.Got)
}

func (e *ArityError) Is(target error) bool { return target == ErrGrammarConfig }

// NonterminationError reports the step bound that was exceeded.
type NonterminationError struct {
	Start Label
	Steps int
}

func (e *NonterminationError) Error() string {
	return fmt.Sprintf("expansion from %q exceeded %d steps", e.Start, e.Steps)
}

func (e *NonterminationError) Is(target error) bool { return target == ErrGrammarNontermination }

// LabelError reports a label a scorer does not understand.
type LabelError struct {
	Label     Label
	Evaluator string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("%s: unexpected tree label %q", e.Evaluator, e.Label)
}

func (e *LabelError) Is(target error) bool { return target == ErrUnknownLabel }

// BasePairError reports a base combination outside {a,u}, {c,g} and {g,u}.
type BasePairError struct {
	Left  Label
	Right Label
}

func (e *BasePairError) Error() string {
	return fmt.Sprintf("unexpected base pair: (%s, %s)", e.Left, e.Right)
}

func (e *BasePairError) Is(target error) bool { return target == ErrInvalidBasePair }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
