package usecase

import (
	"context"
	"math/rand"
	"time"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// GetHomeFeedUseCase builds the mixed homepage feed: sale and rent results
// fetched together, merged, deduplicated and shuffled. A property reachable
// through both query paths must appear once.
type GetHomeFeedUseCase struct {
	source  port.PropertySourcePort
	samples port.SampleDataPort
}

func NewGetHomeFeedUseCase(source port.PropertySourcePort, samples port.SampleDataPort) *GetHomeFeedUseCase {
	return &GetHomeFeedUseCase{source: source, samples: samples}
}

func (uc *GetHomeFeedUseCase) Execute(ctx context.Context) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetHomeFeed",
	})
	logger.Info("Use case started", nil)

	merged := make([]domain.Listing, 0, 32)
	failures := 0
	for _, offering := range []domain.OfferingType{domain.OfferingForSale, domain.OfferingForRent} {
		listings, err := uc.source.FetchListings(ctx, offering)
		if err != nil {
			// one side failing must not empty the homepage
			failures++
			logger.Warn("Feed side unavailable, continuing with the other", port.Fields{
				"offering": string(offering),
				"error":    err.Error(),
			})
			continue
		}
		merged = append(merged, listings...)
	}

	if failures == 2 {
		logger.Warn("Both feed sides unavailable, serving bundled sample feed", nil)
		merged = uc.samples.SampleFeed()
	}

	merged = domain.DeduplicateListings(merged)
	domain.ShuffleListings(merged, rand.New(rand.NewSource(time.Now().UnixNano())))

	logger.Info("Use case finished successfully", port.Fields{"count": len(merged)})
	return merged, nil
}
