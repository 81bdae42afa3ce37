// Package store maintains the authoritative local mirror of property
// listings for a single view session. The backend is the system of record;
// this collection may transiently diverge from it during an optimistic
// window and is reconciled by a wholesale reload, never by diffing.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/ren89/property-listing-app/internal/filter"
	"github.com/ren89/property-listing-app/internal/models"
)

// Lister is the listings collaborator the store loads from. The property
// service satisfies it; tests substitute a fake.
type Lister interface {
	ListProperties(ctx context.Context) ([]models.PropertyListing, error)
}

// ListStore holds the in-memory listing collection for one view session.
// Every state transition is serialized by the mutex: operations are atomic
// with respect to a single local update even when requests are issued
// concurrently. It is not shared across sessions.
type ListStore struct {
	lister Lister

	mu       sync.Mutex
	listings []models.PropertyListing
	loading  bool
	version  uint64

	memo visibleMemo
}

// visibleMemo caches the last filter computation keyed on
// (collection version, criteria snapshot).
type visibleMemo struct {
	valid    bool
	version  uint64
	criteria filter.Criteria
	result   []models.PropertyListing
}

// New creates a store that loads from the given collaborator.
func New(lister Lister) *ListStore {
	return &ListStore{lister: lister}
}

// Load fetches the full collection (ordered by creation time descending by
// the collaborator) and replaces local state wholesale. The loading flag is
// true for the duration and false on completion, success or failure. On
// failure the prior local state is retained and the error returned to the
// caller for display; there is no automatic retry.
func (s *ListStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	listings, err := s.lister.ListProperties(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return fmt.Errorf("failed to load property listings: %w", err)
	}
	s.listings = listings
	s.bumpLocked()
	return nil
}

// Add prepends a server-confirmed listing without waiting for a reload.
// The inserted value is authoritative (it came back from a create call),
// not speculative.
func (s *ListStore) Add(p models.PropertyListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = append([]models.PropertyListing{p}, s.listings...)
	s.bumpLocked()
}

// Update merges the provided fields into the entry with the given id.
// An unknown id is a no-op.
func (s *ListStore) Update(id string, patch models.UpdatePropertyData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].ID == id {
			patch.Apply(&s.listings[i])
			s.bumpLocked()
			return
		}
	}
}

// Replace swaps the entry matching p's id with p wholesale. Used to settle
// an optimistic patch with the server-confirmed record. An unknown id is a
// no-op.
func (s *ListStore) Replace(p models.PropertyListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].ID == p.ID {
			s.listings[i] = p
			s.bumpLocked()
			return
		}
	}
}

// Remove drops the entry with the given id immediately, before server
// deletion is confirmed. If the server deletion then fails the caller
// reconciles by invoking Load; the store does not roll back.
func (s *ListStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].ID == id {
			s.listings = append(s.listings[:i:i], s.listings[i+1:]...)
			s.bumpLocked()
			return
		}
	}
}

// Snapshot returns a copy of the current collection in order.
func (s *ListStore) Snapshot() []models.PropertyListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PropertyListing, len(s.listings))
	copy(out, s.listings)
	return out
}

// Len returns the current collection size.
func (s *ListStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings)
}

// Loading reports whether a Load is in flight.
func (s *ListStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Version increments on every local mutation. It keys derived-state memos.
func (s *ListStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Visible returns the filtered subset for the given criteria, recomputing
// only when the collection or the criteria changed since the last call.
func (s *ListStore) Visible(c filter.Criteria) []models.PropertyListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.memo.valid || s.memo.version != s.version || s.memo.criteria != c {
		s.memo = visibleMemo{
			valid:    true,
			version:  s.version,
			criteria: c,
			result:   filter.Apply(s.listings, c),
		}
	}
	out := make([]models.PropertyListing, len(s.memo.result))
	copy(out, s.memo.result)
	return out
}

func (s *ListStore) bumpLocked() {
	s.version++
}
