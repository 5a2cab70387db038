/*
Package domain contains the core domain models of the tree oracle.

It defines the labeled trees produced by grammar sampling, the scored samples
handed to training pipelines, the error taxonomy shared by the generator and
the scorers, and the lifecycle hooks used for observability. This package is
kept pure and free of I/O, randomness and persistence.

# Key Entities

  - Tree: A labeled node owning an ordered sequence of child trees.
  - Label: The construct tag of a node (logical operators, RNA motifs, bases).
  - Alphabet: The arity of every terminal construct a scorer understands.
  - Sample: A generated tree together with its score (the oracle output).
  - Hooks: Callbacks fired during expansion and sampling.
*/
package domain
