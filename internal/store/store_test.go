package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ren89/property-listing-app/internal/filter"
	"github.com/ren89/property-listing-app/internal/models"
	"github.com/ren89/property-listing-app/internal/store"
)

// fakeLister serves a canned collection or a canned error.
type fakeLister struct {
	listings []models.PropertyListing
	err      error
	calls    int
}

func (f *fakeLister) ListProperties(ctx context.Context) ([]models.PropertyListing, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.PropertyListing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

func threeListings() []models.PropertyListing {
	return []models.PropertyListing{
		{ID: "a", Title: "Loft", Price: 30000, PropertyType: models.PropertyTypeApartment, Status: models.PropertyStatusForRent},
		{ID: "b", Title: "Bungalow", Price: 2500000, PropertyType: models.PropertyTypeHouse, Status: models.PropertyStatusForSale},
		{ID: "c", Title: "Stall", Price: 15000, PropertyType: models.PropertyTypeCommercial, Status: models.PropertyStatusForRent},
	}
}

func TestListStore_LoadReplacesWholesale(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Loading())

	// A second load with different backend content replaces, not merges.
	lister.listings = threeListings()[:1]
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "a", s.Snapshot()[0].ID)
}

func TestListStore_LoadFailureKeepsPriorState(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))
	versionBefore := s.Version()

	lister.err = errors.New("backend down")
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load property listings")

	assert.Equal(t, 3, s.Len(), "prior collection retained")
	assert.Equal(t, versionBefore, s.Version(), "no mutation on failed load")
	assert.False(t, s.Loading(), "loading flag cleared on failure")
}

func TestListStore_AddPrepends(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))

	s.Add(models.PropertyListing{ID: "new", Title: "Penthouse"})

	snap := s.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "new", snap[0].ID)
	assert.Equal(t, "a", snap[1].ID)
}

func TestListStore_AddThenRemoveRestoresCollection(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))
	before := s.Snapshot()

	s.Add(models.PropertyListing{ID: "tmp"})
	s.Remove("tmp")

	assert.Equal(t, before, s.Snapshot())
}

func TestListStore_UpdateMergesFields(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))

	newPrice := 32000.0
	s.Update("a", models.UpdatePropertyData{Price: &newPrice})

	snap := s.Snapshot()
	assert.Equal(t, 32000.0, snap[0].Price)
	assert.Equal(t, "Loft", snap[0].Title, "unset fields untouched")
}

func TestListStore_UpdateUnknownIDIsNoOp(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))
	versionBefore := s.Version()

	title := "Ghost"
	s.Update("missing", models.UpdatePropertyData{Title: &title})

	assert.Equal(t, versionBefore, s.Version())
}

func TestListStore_RemoveUnknownIDIsNoOp(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))
	versionBefore := s.Version()

	s.Remove("missing")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, versionBefore, s.Version())
}

func TestListStore_ReplaceSettlesOptimisticPatch(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))

	confirmed := threeListings()[0]
	confirmed.Price = 31000
	s.Replace(confirmed)

	assert.Equal(t, 31000.0, s.Snapshot()[0].Price)
}

func TestListStore_VisibleFiltersAndMemoizes(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)
	require.NoError(t, s.Load(context.Background()))

	crit := filter.Default()
	crit.Status = string(models.PropertyStatusForRent)

	first := s.Visible(crit)
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].ID)
	assert.Equal(t, "c", first[1].ID)

	// Unchanged collection and criteria reuse the memo; the returned copy is
	// caller-owned either way.
	first[0].Title = "mutated"
	second := s.Visible(crit)
	assert.Equal(t, "Loft", second[0].Title)

	// A mutation invalidates the memo.
	s.Remove("a")
	third := s.Visible(crit)
	require.Len(t, third, 1)
	assert.Equal(t, "c", third[0].ID)
}

func TestListStore_VersionIncrementsOnMutations(t *testing.T) {
	lister := &fakeLister{listings: threeListings()}
	s := store.New(lister)

	v0 := s.Version()
	require.NoError(t, s.Load(context.Background()))
	v1 := s.Version()
	assert.Greater(t, v1, v0)

	s.Add(models.PropertyListing{ID: "x"})
	assert.Greater(t, s.Version(), v1)
}
