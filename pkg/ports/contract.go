package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractSample(id string) *domain.Sample {
	tree := domain.NewTree(domain.LabelAnd, domain.Leaf(domain.LabelX), domain.NewTree(domain.LabelNot, domain.Leaf(domain.LabelY)))
	return &domain.Sample{
		ID:        id,
		Grammar:   "logical",
		Seed:      7,
		Index:     3,
		Tree:      tree,
		Score:     0,
		Size:      tree.Size(),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// RunSampleStoreContract runs a suite of tests to verify that a SampleStore implementation
// adheres to the defined interface contract.
func RunSampleStoreContract(t *testing.T, store SampleStore) {
	ctx := context.Background()
	sampleID := "contract-test-sample-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sample := contractSample(sampleID)

		err := store.Save(ctx, sample)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sampleID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sample.ID, loaded.ID)
		assert.Equal(t, sample.Grammar, loaded.Grammar)
		assert.Equal(t, sample.Seed, loaded.Seed)
		assert.Equal(t, sample.Index, loaded.Index)
		assert.Equal(t, sample.Size, loaded.Size)
		assert.Equal(t, sample.Tree.String(), loaded.Tree.String())
		assert.InDelta(t, sample.Score, loaded.Score, 1e-12)
		assert.True(t, sample.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sampleID)
		require.NoError(t, err)
		loaded.Tree.Children[0].Label = "mutated"

		again, err := store.Load(ctx, sampleID)
		require.NoError(t, err)
		assert.Equal(t, domain.LabelX, again.Tree.Children[0].Label)
	})

	t.Run("Overwrite", func(t *testing.T) {
		sample := contractSample(sampleID)
		sample.Score = 0.5
		require.NoError(t, store.Save(ctx, sample))

		loaded, err := store.Load(ctx, sampleID)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, loaded.Score, 1e-12)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sampleID)
		assert.ErrorIs(t, err, domain.ErrSampleNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractSample(sampleID))
		require.NoError(t, err)

		err = store.Delete(ctx, sampleID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sampleID)
		assert.ErrorIs(t, err, domain.ErrSampleNotFound, "Load after Delete should return ErrSampleNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sampleID + "-1"
		id2 := sampleID + "-2"
		_ = store.Save(ctx, contractSample(id1))
		_ = store.Save(ctx, contractSample(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
