package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/treeoracle/pkg/adapters/file"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SampleStore
var _ ports.SampleStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSampleStoreContract(t, store)
}

func TestFileStore_LayoutAndCleanup(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	sample := &domain.Sample{ID: "abc", Grammar: "rna", Tree: domain.NewTree("hairpin_end", domain.Leaf("a"))}
	require.NoError(t, store.Save(ctx, sample))

	_, err := os.Stat(filepath.Join(dir, "abc.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	// Unrelated files are ignored by List.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.Sample{ID: ""}))
	assert.Error(t, store.Save(ctx, &domain.Sample{ID: "../escape"}))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSampleNotFound)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_DefaultPath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".treeoracle", "samples"), store.BasePath)
}
