/*
Package treeoracle generates labelled synthetic training data for tree-structured
learners.

A probabilistic tree grammar assigns each nonterminal a weighted list of
one-level rule templates. Sampling a grammar grows a concrete derivation tree;
a scorer then maps the tree to a scalar. Two reference grammars are built in:

  - logical: fuzzy Boolean expressions over x and y, scored by a saturating
    fuzzy evaluator (and = product, or = min(1, a+b), not = 1-a).
  - rna: RNA secondary structures, scored by an illustrative free-energy
    estimate with a base-pair stacking table and logarithmic loop costs.

# Usage

	oracle := treeoracle.New(treeoracle.WithSeed(42))

	tree, truth, err := oracle.GenerateLogicalTree(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(tree, truth)

	// 1000 reproducible samples, generated in parallel
	samples, err := oracle.Batch(ctx, "rna", 1000)

Every sample of a batch draws from its own random source seeded with
seed+index, so a batch is identical whatever the worker count.

# Architecture

  - pkg/domain: trees, samples, errors and hooks.
  - pkg/grammar: grammar validation, the builder and the reference grammars.
  - pkg/sampler: injectable randomness and weighted choice.
  - pkg/score: the logical evaluator and the RNA energy estimator.
  - internal/runtime: the iterative tree generator.
  - pkg/adapters: sample stores (memory, file, badger, redis) and HTTP/MCP surfaces.
  - pkg/persistence/middleware: logging and validation decorators for stores.
*/
package treeoracle
