package ports

import (
	"context"

	"github.com/aretw0/treeoracle/pkg/domain"
)

// SampleStore defines the interface for persisting generated samples.
// This allows a batch to be produced once and consumed later by a training pipeline.
type SampleStore interface {
	// Save persists the sample under sample.ID.
	Save(ctx context.Context, sample *domain.Sample) error

	// Load retrieves the sample for a given ID.
	// Returns domain.ErrSampleNotFound if the sample does not exist.
	Load(ctx context.Context, id string) (*domain.Sample, error)

	// Delete removes the sample for a given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored samples.
	List(ctx context.Context) ([]string, error)
}
