// Package score groups the interpretations that turn a generated tree into a number.
//
// Each subpackage walks a tree recursively in post-order:
//   - logical: fuzzy truth value of a Boolean expression.
//   - rna: illustrative free energy of an RNA secondary structure.
package score
