package port

import "listing-feed-service/internal/core/domain"

// SampleDataPort serves the bundled last-resort data. It can never fail,
// which is what guarantees the fallback chain terminates.
type SampleDataPort interface {
	SampleFeed() []domain.Listing
	SampleListing(id string) *domain.Listing
	EmptyDraft() []byte
}
