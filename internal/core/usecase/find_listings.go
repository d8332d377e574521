package usecase

import (
	"context"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// FindListingsUseCase fetches the relevant feed(s) and applies the
// user-selected filter criteria and sort order. Upstream failures degrade
// like the home feed does: a surviving side is served alone, and when every
// side fails the bundled sample feed stands in with the informational flag
// set instead of a blocking error.
type FindListingsUseCase struct {
	source  port.PropertySourcePort
	samples port.SampleDataPort
}

func NewFindListingsUseCase(source port.PropertySourcePort, samples port.SampleDataPort) *FindListingsUseCase {
	return &FindListingsUseCase{source: source, samples: samples}
}

func (uc *FindListingsUseCase) Execute(ctx context.Context, criteria domain.FilterCriteria) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FindListings",
		"criteria": criteria.QueryValues().Encode(),
	})
	logger.Info("Use case started", nil)

	offerings := []domain.OfferingType{domain.OfferingForSale, domain.OfferingForRent}
	if criteria.OfferingType != "" {
		offerings = []domain.OfferingType{criteria.OfferingType}
	}

	var merged []domain.Listing
	failures := 0
	for _, offering := range offerings {
		listings, err := uc.source.FetchListings(ctx, offering)
		if err != nil {
			failures++
			logger.Warn("Feed side unavailable, continuing", port.Fields{
				"offering": string(offering),
				"error":    err.Error(),
			})
			continue
		}
		merged = append(merged, listings...)
	}

	informational := failures == len(offerings)
	if informational {
		logger.Warn("Every feed side unavailable, searching the bundled sample feed", nil)
		merged = uc.samples.SampleFeed()
	}

	result := criteria.Apply(domain.DeduplicateListings(merged))

	logger.Info("Use case finished successfully", port.Fields{
		"fetched":       len(merged),
		"returned":      len(result),
		"informational": informational,
	})
	return &domain.SearchResult{Listings: result, Informational: informational}, nil
}
