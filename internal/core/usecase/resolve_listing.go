package usecase

import (
	"context"
	"fmt"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// ResolveListingUseCase walks an explicit ordered tier list with a
// first-success loop. Any failure (network, auth, malformed payload, or a
// record that is all placeholder defaults) advances to the next tier. The
// terminal sample tier cannot fail, so resolution always terminates.
type ResolveListingUseCase struct {
	tiers []port.ListingTierPort
}

func NewResolveListingUseCase(tiers ...port.ListingTierPort) *ResolveListingUseCase {
	return &ResolveListingUseCase{tiers: tiers}
}

func (uc *ResolveListingUseCase) Execute(ctx context.Context, listingID string) (*domain.ResolvedListing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ResolveListing",
		"listing_id": listingID,
	})
	logger.Info("Use case started", nil)

	for i, tier := range uc.tiers {
		listing, err := tier.Resolve(ctx, listingID)
		if err != nil {
			// 401s included: swallowed here, surfaced only as a debug line
			logger.Debug("Tier missed, advancing", port.Fields{
				"tier":  tier.Name(),
				"error": err.Error(),
			})
			continue
		}
		if domain.IsPlaceholderRecord(listing) {
			logger.Debug("Tier returned placeholder defaults, advancing", port.Fields{
				"tier": tier.Name(),
			})
			continue
		}

		// Terminal-tier answers are fabricated stand-ins and must never
		// enter the real tiers, or the next resolve would serve them as
		// ordinary cached data without the informational flag.
		if i < len(uc.tiers)-1 {
			uc.promote(ctx, logger, listing, i)
		}

		resolved := &domain.ResolvedListing{
			Listing:       listing,
			Source:        tier.Name(),
			Informational: i == len(uc.tiers)-1,
		}
		logger.Info("Use case finished successfully", port.Fields{
			"source":        resolved.Source,
			"informational": resolved.Informational,
		})
		return resolved, nil
	}

	return nil, fmt.Errorf("%w: no tier resolved listing %s", domain.ErrNotFound, listingID)
}

// promote writes a result found at tier index i back into the writable
// tiers above it, so subsequent loads in this session skip the slower
// sources. Results are never promoted upstream.
func (uc *ResolveListingUseCase) promote(ctx context.Context, logger port.LoggerPort, l *domain.Listing, from int) {
	for j := 0; j < from; j++ {
		writable, ok := uc.tiers[j].(port.WritableListingTierPort)
		if !ok {
			continue
		}
		if err := writable.Store(ctx, l); err != nil {
			logger.Warn("Failed to promote listing into faster tier", port.Fields{
				"tier":  writable.Name(),
				"error": err.Error(),
			})
		}
	}
}
