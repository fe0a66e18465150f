package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"cart/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memPersister records every snapshot the writer hands it.
type memPersister struct {
	mu      sync.Mutex
	initial []model.Category
	saves   [][]model.Category
}

func (p *memPersister) Load(context.Context) []model.Category {
	return model.Clone(p.initial)
}

func (p *memPersister) Save(_ context.Context, cats []model.Category) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, model.Clone(cats))
}

func (p *memPersister) last() ([]model.Category, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil, false
	}
	return p.saves[len(p.saves)-1], true
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	s := Open(context.Background(), p, zap.NewNop())
	t.Cleanup(s.Close)
	return s, p
}

func TestAddCategory_AssignsSequentialIDs(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.AddCategory("Produce")
	require.NoError(t, err)
	b, err := s.AddCategory("Bakery")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	// Deleting the highest id frees it for reuse (max+1 scheme).
	require.NoError(t, s.DeleteCategory(b.ID))
	c, err := s.AddCategory("Frozen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ID)
}

func TestAddCategory_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddCategory("Produce")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyName},
		{"whitespace only", "   ", ErrEmptyName},
		{"exact duplicate", "Produce", ErrDuplicateCategory},
		{"case variant", "pRoDuCe", ErrDuplicateCategory},
		{"duplicate after trim", "  produce  ", ErrDuplicateCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddCategory(tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Len(t, s.Categories(), 1, "no state change on rejection")
		})
	}
}

func TestAddCategory_TrimsName(t *testing.T) {
	s, _ := newTestStore(t)
	c, err := s.AddCategory("  Produce  ")
	require.NoError(t, err)
	assert.Equal(t, "Produce", c.Name)
}

func TestRenameCategory(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.AddCategory("Produce")
	b, _ := s.AddCategory("Bakery")

	assert.ErrorIs(t, s.RenameCategory(99, "X"), ErrCategoryNotFound)
	assert.ErrorIs(t, s.RenameCategory(a.ID, "  "), ErrEmptyName)
	assert.ErrorIs(t, s.RenameCategory(b.ID, "produce"), ErrDuplicateCategory)

	// Changing only the casing of a category's own name is allowed.
	require.NoError(t, s.RenameCategory(a.ID, "PRODUCE"))
	got, found := s.Category(a.ID)
	require.True(t, found)
	assert.Equal(t, "PRODUCE", got.Name)
}

func TestDeleteCategory_CascadesItems(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	_, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)
	_, err = s.AddItem(c.ID, "Pears", "4")
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(c.ID))
	assert.Empty(t, s.Categories())
	_, found := s.Category(c.ID)
	assert.False(t, found)

	assert.ErrorIs(t, s.DeleteCategory(c.ID), ErrCategoryNotFound)
}

func TestAddItem_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	_, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)

	_, err = s.AddItem(99, "Milk", "1")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = s.AddItem(c.ID, "  ", "1")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = s.AddItem(c.ID, "Milk", "  ")
	assert.ErrorIs(t, err, ErrEmptyQuantity)
	_, err = s.AddItem(c.ID, "apples", "3")
	assert.ErrorIs(t, err, ErrDuplicateItem)

	got, _ := s.Category(c.ID)
	assert.Len(t, got.Items, 1, "no state change on rejection")
}

func TestAddItem_SameNameAcrossCategories(t *testing.T) {
	s, _ := newTestStore(t)
	a, _ := s.AddCategory("Produce")
	b, _ := s.AddCategory("Bakery")

	_, err := s.AddItem(a.ID, "Rolls", "6")
	require.NoError(t, err)
	_, err = s.AddItem(b.ID, "Rolls", "12")
	require.NoError(t, err, "item names are only unique within a category")
}

func TestItemIDs_UniqueAtSameTimestamp(t *testing.T) {
	s, _ := newTestStore(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	c, _ := s.AddCategory("Produce")
	a, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)
	b, err := s.AddItem(c.ID, "Pears", "4")
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), a.ID)
	assert.Equal(t, fixed.UnixMilli()+1, b.ID, "colliding timestamp id gets bumped")
}

func TestToggleItem_DoubleToggleRestores(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	it, _ := s.AddItem(c.ID, "Apples", "6")

	done, err := s.ToggleItem(c.ID, it.ID)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = s.ToggleItem(c.ID, it.ID)
	require.NoError(t, err)
	assert.False(t, done, "toggling twice restores the original state")

	_, err = s.ToggleItem(c.ID, 12345)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = s.ToggleItem(999, it.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestEditItem(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	apples, _ := s.AddItem(c.ID, "Apples", "6")
	pears, _ := s.AddItem(c.ID, "Pears", "4")

	assert.ErrorIs(t, s.EditItem(99, apples.ID, "X", "1"), ErrCategoryNotFound)
	assert.ErrorIs(t, s.EditItem(c.ID, 12345, "X", "1"), ErrItemNotFound)
	assert.ErrorIs(t, s.EditItem(c.ID, apples.ID, " ", "1"), ErrEmptyName)
	assert.ErrorIs(t, s.EditItem(c.ID, apples.ID, "X", " "), ErrEmptyQuantity)
	assert.ErrorIs(t, s.EditItem(c.ID, pears.ID, "APPLES", "1"), ErrDuplicateItem)

	// Renaming an item to a case variant of itself is allowed.
	require.NoError(t, s.EditItem(c.ID, apples.ID, "apples", "2 kg"))
	got, _ := s.Category(c.ID)
	assert.Equal(t, "apples", got.Items[0].Name)
	assert.Equal(t, "2 kg", got.Items[0].Quantity)
}

func TestDeleteItem(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	it, _ := s.AddItem(c.ID, "Apples", "6")

	require.NoError(t, s.DeleteItem(c.ID, it.ID))
	got, _ := s.Category(c.ID)
	assert.Empty(t, got.Items)

	assert.ErrorIs(t, s.DeleteItem(c.ID, it.ID), ErrItemNotFound)
}

// The scenario walk from the data-model notes: add, item, toggle, then a
// case-variant category add is rejected with no state change.
func TestScenario_ProduceWalk(t *testing.T) {
	s, _ := newTestStore(t)

	c, err := s.AddCategory("Produce")
	require.NoError(t, err)
	require.Equal(t, int64(1), c.ID)

	it, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)
	assert.False(t, it.Completed)

	done, err := s.ToggleItem(c.ID, it.ID)
	require.NoError(t, err)
	assert.True(t, done)

	_, err = s.AddCategory("produce")
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	cats := s.Categories()
	require.Len(t, cats, 1)
	require.Len(t, cats[0].Items, 1)
	assert.True(t, cats[0].Items[0].Completed)
}

func TestOpen_LoadsPersistedState(t *testing.T) {
	p := &memPersister{initial: []model.Category{
		{ID: 3, Name: "Produce", Items: []model.Item{{ID: 10, Name: "Apples", Quantity: "6", Completed: true}}},
	}}
	s := Open(context.Background(), p, zap.NewNop())
	t.Cleanup(s.Close)

	cats := s.Categories()
	require.Len(t, cats, 1)
	assert.Equal(t, "Apples", cats[0].Items[0].Name)

	// max+1 picks up after the loaded ids.
	c, err := s.AddCategory("Bakery")
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
}

func TestClose_FlushesLastSnapshot(t *testing.T) {
	s, p := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	it, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)
	_, err = s.ToggleItem(c.ID, it.ID)
	require.NoError(t, err)

	want := s.Categories()
	s.Close()

	got, saved := p.last()
	require.True(t, saved, "mutations must reach the persister")
	assert.Equal(t, want, got, "last save carries the full final state")
}

func TestSnapshots_KeepEmptyItemsNonNil(t *testing.T) {
	s, p := newTestStore(t)
	_, err := s.AddCategory("Produce")
	require.NoError(t, err)
	s.Close()

	got, saved := p.last()
	require.True(t, saved)
	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Items, "fresh categories persist with items: []")
}

func TestCategories_ReturnsIsolatedSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	c, _ := s.AddCategory("Produce")
	_, err := s.AddItem(c.ID, "Apples", "6")
	require.NoError(t, err)

	snap := s.Categories()
	snap[0].Name = "Hacked"
	snap[0].Items[0].Name = "Hacked"

	cats := s.Categories()
	assert.Equal(t, "Produce", cats[0].Name)
	assert.Equal(t, "Apples", cats[0].Items[0].Name)
}
