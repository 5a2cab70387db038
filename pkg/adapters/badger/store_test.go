package badger_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/treeoracle/pkg/adapters/badger"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/ports"
	backend "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...badger.Option) *badger.Store {
	t.Helper()
	store, err := badger.OpenInMemory(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_Contract(t *testing.T) {
	ports.RunSampleStoreContract(t, newStore(t))
}

func TestBadgerStore_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := badger.Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &domain.Sample{ID: "kept", Tree: domain.Leaf(domain.LabelX), Score: 0.25}))
	require.NoError(t, store.Close())

	reopened, err := badger.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, 0.25, loaded.Score)
	assert.Equal(t, "x", loaded.Tree.String())
}

func TestBadgerStore_Prefix(t *testing.T) {
	ctx := context.Background()
	db, err := backend.Open(backend.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	logical := badger.NewFromDB(db, badger.WithPrefix("logical/"))
	rna := badger.NewFromDB(db, badger.WithPrefix("rna/"))

	require.NoError(t, logical.Save(ctx, &domain.Sample{ID: "one", Tree: domain.Leaf(domain.LabelY)}))
	require.NoError(t, rna.Save(ctx, &domain.Sample{ID: "two", Tree: domain.Leaf(domain.LabelX)}))

	ids, err := logical.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, ids)

	_, err = rna.Load(ctx, "one")
	assert.ErrorIs(t, err, domain.ErrSampleNotFound)
}

func TestBadgerStore_TTL(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, badger.WithTTL(time.Hour))

	require.NoError(t, store.Save(ctx, &domain.Sample{ID: "short", Tree: domain.Leaf(domain.LabelX)}))
	_, err := store.Load(ctx, "short")
	assert.NoError(t, err)
}

func TestBadgerStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	assert.Error(t, store.Save(ctx, &domain.Sample{Tree: domain.Leaf(domain.LabelX)}))

	_, err := badger.Open("", nil)
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, store.Save(cancelled, &domain.Sample{ID: "a"}), context.Canceled)
}
