package listingtier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// KVListingTier adapts any KVStorePort into a writable fallback-chain tier.
// The same implementation serves both the in-memory cache tier and the
// durable store tier; only the backing store and name differ.
type KVListingTier struct {
	name  string
	store port.KVStorePort
	ttl   time.Duration
}

func NewKVListingTier(name string, store port.KVStorePort, ttl time.Duration) *KVListingTier {
	return &KVListingTier{name: name, store: store, ttl: ttl}
}

func (t *KVListingTier) Name() string { return t.name }

func listingKey(id string) string { return "listing:" + id }

func (t *KVListingTier) Resolve(ctx context.Context, id string) (*domain.Listing, error) {
	value, err := t.store.Get(ctx, listingKey(id))
	if err != nil {
		return nil, err
	}
	var listing domain.Listing
	if err := json.Unmarshal(value, &listing); err != nil {
		// a corrupt cache entry is treated like a miss
		return nil, fmt.Errorf("%w: corrupt cached listing %s: %v", domain.ErrMalformedResponse, id, err)
	}
	return &listing, nil
}

func (t *KVListingTier) Store(ctx context.Context, l *domain.Listing) error {
	if l == nil || l.ID == "" {
		return nil
	}
	value, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return t.store.Set(ctx, listingKey(l.ID), value, t.ttl)
}
