package mockdata

import (
	"context"
	"time"

	"listing-feed-service/internal/core/domain"
)

// SampleTier is the terminal fallback-chain tier. Resolve never fails.
type SampleTier struct {
	data *SampleData
}

func NewSampleTier(data *SampleData) *SampleTier {
	return &SampleTier{data: data}
}

func (t *SampleTier) Name() string { return "sample" }

func (t *SampleTier) Resolve(_ context.Context, id string) (*domain.Listing, error) {
	return t.data.SampleListing(id), nil
}

func parseSampleTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}
