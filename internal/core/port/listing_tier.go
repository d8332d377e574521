package port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

// ListingTierPort is one source in the fallback chain. Tiers are tried in
// order by the resolve use case; a tier signals "keep going" by returning a
// recoverable error (see domain.IsRecoverableLoadError).
type ListingTierPort interface {
	Name() string
	Resolve(ctx context.Context, id string) (*domain.Listing, error)
}

// WritableListingTierPort is a tier that can absorb a result found further
// down the chain, so subsequent loads in the session skip the slower source.
type WritableListingTierPort interface {
	ListingTierPort
	Store(ctx context.Context, l *domain.Listing) error
}
