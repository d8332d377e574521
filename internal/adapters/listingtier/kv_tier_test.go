package listingtier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"listing-feed-service/internal/core/domain"
)

type mapStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string][]byte)}
}

func (s *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (s *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *mapStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func TestKVListingTierRoundTrip(t *testing.T) {
	store := newMapStore()
	tier := NewKVListingTier("cache", store, 0)
	ctx := context.Background()

	listing := &domain.Listing{ID: "l-1", Title: "Bole apartment"}
	if err := tier.Store(ctx, listing); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if _, ok := store.data["listing:l-1"]; !ok {
		t.Fatalf("expected entry under listing:l-1, keys: %v", store.data)
	}

	got, err := tier.Resolve(ctx, "l-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.ID != "l-1" || got.Title != "Bole apartment" {
		t.Fatalf("unexpected listing back: %+v", got)
	}
}

func TestKVListingTierMissPassesThrough(t *testing.T) {
	tier := NewKVListingTier("cache", newMapStore(), 0)
	if _, err := tier.Resolve(context.Background(), "absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestKVListingTierCorruptEntryIsMalformed(t *testing.T) {
	store := newMapStore()
	store.data["listing:bad"] = []byte("{not json")

	tier := NewKVListingTier("store", store, 0)
	_, err := tier.Resolve(context.Background(), "bad")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestKVListingTierStoreSkipsUnidentifiedListings(t *testing.T) {
	store := newMapStore()
	tier := NewKVListingTier("cache", store, 0)
	ctx := context.Background()

	if err := tier.Store(ctx, nil); err != nil {
		t.Fatalf("nil listing should be a no-op, got %v", err)
	}
	if err := tier.Store(ctx, &domain.Listing{Title: "no id"}); err != nil {
		t.Fatalf("id-less listing should be a no-op, got %v", err)
	}
	if len(store.data) != 0 {
		t.Fatalf("expected no writes, got %v", store.data)
	}
}
