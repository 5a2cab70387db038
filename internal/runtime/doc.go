// Package runtime implements stochastic tree generation from a weighted grammar.
//
// Expansion is iterative: pending nonterminal sites live on an explicit stack,
// so generated trees may be arbitrarily deep without growing the call stack.
package runtime
