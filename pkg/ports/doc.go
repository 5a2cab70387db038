/*
Package ports defines the driven ports (interfaces) for the oracle.

These interfaces decouple generation and scoring from external implementations,
allowing samples to be persisted in various backends.

# Key Interfaces

  - SampleStore: Responsible for persisting and loading generated Samples.
  - Scorer: Maps a generated tree to a scalar (fuzzy truth value, energy estimate).
*/
package ports
