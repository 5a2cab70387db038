package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/aretw0/treeoracle/pkg/registry"
)

// ErrInvalidSample is returned when a sample is rejected before it reaches the store.
var ErrInvalidSample = errors.New("invalid sample")

type validationMiddleware struct {
	next ports.SampleStore
	reg  *registry.Registry
}

// NewValidationMiddleware creates a middleware that refuses to persist samples a
// training pipeline could not consume: missing ID or tree, non-finite score, a
// size that disagrees with the tree, or a tree outside the grammar's alphabet.
// Samples whose grammar is not in reg skip the alphabet check.
func NewValidationMiddleware(reg *registry.Registry) Middleware {
	return func(next ports.SampleStore) ports.SampleStore {
		return &validationMiddleware{next: next, reg: reg}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, sample *domain.Sample) error {
	if err := m.check(sample); err != nil {
		return err
	}
	return m.next.Save(ctx, sample)
}

func (m *validationMiddleware) check(s *domain.Sample) error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil", ErrInvalidSample)
	case s.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidSample)
	case s.Tree == nil:
		return fmt.Errorf("%w: %s has no tree", ErrInvalidSample, s.ID)
	case math.IsNaN(s.Score) || math.IsInf(s.Score, 0):
		return fmt.Errorf("%w: %s has non-finite score %v", ErrInvalidSample, s.ID, s.Score)
	}

	if size := s.Tree.Size(); s.Size != 0 && s.Size != size {
		return fmt.Errorf("%w: %s records size %d but tree has %d nodes", ErrInvalidSample, s.ID, s.Size, size)
	}

	if m.reg == nil {
		return nil
	}
	entry, err := m.reg.Get(s.Grammar)
	if err != nil || entry.Alphabet == nil {
		return nil
	}
	if err := entry.Alphabet.Check(s.Tree); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidSample, s.ID, err)
	}
	return nil
}

func (m *validationMiddleware) Load(ctx context.Context, id string) (*domain.Sample, error) {
	return m.next.Load(ctx, id)
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
