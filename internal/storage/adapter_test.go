package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cart/internal/kv/filekv"
	"cart/internal/model"
)

func newFileAdapter(t *testing.T) (*Adapter, *filekv.Store) {
	t.Helper()
	store := filekv.New(filepath.Join(t.TempDir(), "cart.json"))
	return NewAdapter(store, zap.NewNop()), store
}

func TestAdapter_RoundTrip(t *testing.T) {
	a, _ := newFileAdapter(t)
	ctx := context.Background()

	cats := []model.Category{
		{ID: 1, Name: "Produce", Items: []model.Item{
			{ID: 100, Name: "Apples", Quantity: "6", Completed: false},
			{ID: 101, Name: "Pears", Quantity: "2 kg", Completed: true},
		}},
		{ID: 2, Name: "Bakery", Items: []model.Item{}},
	}
	a.Save(ctx, cats)

	got := a.Load(ctx)
	assert.Equal(t, cats, got, "serialization round-trips losslessly")
}

func TestAdapter_EmptyCategorySerializesAsEmptyArray(t *testing.T) {
	a, store := newFileAdapter(t)
	ctx := context.Background()

	a.Save(ctx, []model.Category{{ID: 1, Name: "Produce", Items: []model.Item{}}})

	raw, found, err := store.Get(ctx, "categories")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"items":[]`, "empty item lists stay arrays, not null")
}

func TestAdapter_LoadMissingKey(t *testing.T) {
	a, _ := newFileAdapter(t)
	got := a.Load(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAdapter_LoadMalformedPayload(t *testing.T) {
	a, store := newFileAdapter(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "categories", "{definitely not json"))

	got := a.Load(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got, "corrupt payload degrades to an empty list")
}

func TestAdapter_LoadNullPayload(t *testing.T) {
	a, store := newFileAdapter(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "categories", "null"))

	got := a.Load(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

// brokenKV fails every call; the adapter has to absorb it.
type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (brokenKV) Close() error                              { return nil }

func TestAdapter_SwallowsStorageFailures(t *testing.T) {
	a := NewAdapter(brokenKV{}, zap.NewNop())
	ctx := context.Background()

	got := a.Load(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got, "read failure degrades to an empty list")

	// Must not panic or propagate.
	a.Save(ctx, []model.Category{{ID: 1, Name: "Produce"}})
}
