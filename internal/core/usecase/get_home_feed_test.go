package usecase

import (
	"context"
	"testing"

	"listing-feed-service/internal/core/domain"
)

// stubPropertySource satisfies PropertySourcePort with canned per-offering
// results.
type stubPropertySource struct {
	byOffering map[domain.OfferingType][]domain.Listing
	errs       map[domain.OfferingType]error
	agents     []domain.Agent
	agentsErr  error
}

func (s *stubPropertySource) FetchListings(_ context.Context, offering domain.OfferingType) ([]domain.Listing, error) {
	if err := s.errs[offering]; err != nil {
		return nil, err
	}
	return s.byOffering[offering], nil
}

func (s *stubPropertySource) FetchListingByID(_ context.Context, id string) (*domain.Listing, error) {
	return nil, domain.ErrNotFound
}

func (s *stubPropertySource) FetchAgents(_ context.Context) ([]domain.Agent, error) {
	return s.agents, s.agentsErr
}

type stubSampleData struct {
	feed []domain.Listing
}

func (s *stubSampleData) SampleFeed() []domain.Listing { return s.feed }
func (s *stubSampleData) SampleListing(id string) *domain.Listing {
	if len(s.feed) == 0 {
		return &domain.Listing{ID: id}
	}
	l := s.feed[0]
	l.ID = id
	return &l
}
func (s *stubSampleData) EmptyDraft() []byte { return []byte("{}") }

func TestGetHomeFeedMergesAndDeduplicates(t *testing.T) {
	source := &stubPropertySource{
		byOffering: map[domain.OfferingType][]domain.Listing{
			domain.OfferingForSale: {
				{ID: "1", OfferingType: domain.OfferingForSale},
				{ID: "2", OfferingType: domain.OfferingForSale},
				{ID: "3", OfferingType: domain.OfferingForSale},
			},
			domain.OfferingForRent: {
				{ID: "3", OfferingType: domain.OfferingForRent}, // reachable from both sides
				{ID: "4", OfferingType: domain.OfferingForRent},
			},
		},
	}

	uc := NewGetHomeFeedUseCase(source, &stubSampleData{})
	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 unique listings from 3+2 with one overlap, got %d", len(got))
	}
	seen := make(map[string]bool)
	for _, l := range got {
		if seen[l.ID] {
			t.Fatalf("duplicate id %q in feed", l.ID)
		}
		seen[l.ID] = true
	}
}

func TestGetHomeFeedToleratesOneSideFailing(t *testing.T) {
	source := &stubPropertySource{
		byOffering: map[domain.OfferingType][]domain.Listing{
			domain.OfferingForSale: {{ID: "1"}, {ID: "2"}},
		},
		errs: map[domain.OfferingType]error{
			domain.OfferingForRent: domain.ErrNetworkUnavailable,
		},
	}

	uc := NewGetHomeFeedUseCase(source, &stubSampleData{})
	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("one failed side must not fail the feed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the surviving side's 2 listings, got %d", len(got))
	}
}

func TestGetHomeFeedServesSamplesWhenBothSidesFail(t *testing.T) {
	source := &stubPropertySource{
		errs: map[domain.OfferingType]error{
			domain.OfferingForSale: domain.ErrServer,
			domain.OfferingForRent: domain.ErrNetworkUnavailable,
		},
	}
	samples := &stubSampleData{feed: []domain.Listing{{ID: "sample-1"}, {ID: "sample-2"}}}

	uc := NewGetHomeFeedUseCase(source, samples)
	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("sample fallback must not error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the sample feed, got %d listings", len(got))
	}
}

func TestFindListingsAppliesCriteria(t *testing.T) {
	source := &stubPropertySource{
		byOffering: map[domain.OfferingType][]domain.Listing{
			domain.OfferingForSale: {
				{ID: "1", PropertyType: "Villa", OfferingType: domain.OfferingForSale},
				{ID: "2", PropertyType: "Apartment", OfferingType: domain.OfferingForSale},
			},
		},
	}

	uc := NewFindListingsUseCase(source, &stubSampleData{})
	got, err := uc.Execute(context.Background(), domain.FilterCriteria{
		OfferingType: domain.OfferingForSale,
		PropertyType: "Villa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Listings) != 1 || got.Listings[0].ID != "1" {
		t.Fatalf("expected only the villa, got %+v", got.Listings)
	}
	if got.Informational {
		t.Fatalf("a live result must not be informational")
	}
}

func TestFindListingsToleratesOneSideFailing(t *testing.T) {
	source := &stubPropertySource{
		byOffering: map[domain.OfferingType][]domain.Listing{
			domain.OfferingForSale: {{ID: "1"}, {ID: "2"}},
		},
		errs: map[domain.OfferingType]error{
			domain.OfferingForRent: domain.ErrNetworkUnavailable,
		},
	}

	uc := NewFindListingsUseCase(source, &stubSampleData{})
	got, err := uc.Execute(context.Background(), domain.FilterCriteria{})
	if err != nil {
		t.Fatalf("one failed side must not fail the search: %v", err)
	}
	if len(got.Listings) != 2 || got.Informational {
		t.Fatalf("expected the surviving side's 2 live listings, got %+v", got)
	}
}

func TestFindListingsSearchesSamplesWhenUpstreamIsDown(t *testing.T) {
	source := &stubPropertySource{
		errs: map[domain.OfferingType]error{
			domain.OfferingForSale: domain.ErrUnauthorized,
		},
	}
	samples := &stubSampleData{feed: []domain.Listing{
		{ID: "s1", PropertyType: "Villa", OfferingType: domain.OfferingForSale},
		{ID: "s2", PropertyType: "Apartment", OfferingType: domain.OfferingForSale},
	}}

	uc := NewFindListingsUseCase(source, samples)
	got, err := uc.Execute(context.Background(), domain.FilterCriteria{
		OfferingType: domain.OfferingForSale,
		PropertyType: "Villa",
	})
	if err != nil {
		t.Fatalf("upstream failure must degrade, not block: %v", err)
	}
	if !got.Informational {
		t.Fatalf("a sample-backed search must be flagged informational")
	}
	if len(got.Listings) != 1 || got.Listings[0].ID != "s1" {
		t.Fatalf("criteria must still apply to the sample feed, got %+v", got.Listings)
	}
}
