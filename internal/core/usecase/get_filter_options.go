package usecase

import (
	"context"

	"listing-feed-service/internal/constants"
	"listing-feed-service/internal/core/domain"
)

// GetFilterOptions returns the dictionaries the search controls are built
// from. They are compiled in, so the call never fails, but the interface
// keeps the transport uniform with the other read operations.
type GetFilterOptions struct{}

func NewGetFilterOptions() *GetFilterOptions {
	return &GetFilterOptions{}
}

func (uc *GetFilterOptions) Execute(_ context.Context) (domain.FilterOptions, error) {
	return domain.FilterOptions{
		RegionalStates: constants.RegionalStates,
		PriceRanges:    constants.PriceRanges,
		PropertyTypes:  constants.PropertyTypes,
		CountBuckets:   constants.CountBuckets,
		SortKeys:       domain.AllSortKeys,
	}, nil
}
