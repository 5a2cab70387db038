/*
Package grammar defines probabilistic tree grammars.

A Grammar maps each nonterminal symbol to an ordered list of rule templates and
a parallel list of selection probabilities. Templates are one level deep: a
construct label whose children are nonterminal placeholders. Grammars are
immutable once built and safe to share between goroutines; the generator clones
every template it installs.

Two reference grammars are supplied as static configuration: Logical, over
fuzzy Boolean expressions, and RNA, over RNA secondary structures.
*/
package grammar
