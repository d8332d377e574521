package usecases_port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

type ResolveListingUseCase interface {
	Execute(ctx context.Context, listingID string) (*domain.ResolvedListing, error)
}
