package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-feed-service/internal/core/domain"
)

// fakeTier is a scripted fallback tier; writable when store is set.
type fakeTier struct {
	name    string
	listing *domain.Listing
	err     error

	resolveCalls int
	stored       []*domain.Listing
	writable     bool
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) Resolve(_ context.Context, _ string) (*domain.Listing, error) {
	f.resolveCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.listing, nil
}

type fakeWritableTier struct {
	fakeTier
}

func (f *fakeWritableTier) Store(_ context.Context, l *domain.Listing) error {
	f.stored = append(f.stored, l)
	return nil
}

func TestResolveListingFirstTierWins(t *testing.T) {
	remote := &fakeTier{name: "remote", listing: &domain.Listing{ID: "x", Title: "Live"}}
	cache := &fakeWritableTier{fakeTier{name: "cache"}}

	uc := NewResolveListingUseCase(remote, cache)
	got, err := uc.Execute(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != "remote" || got.Informational {
		t.Fatalf("expected an ordinary remote hit, got %+v", got)
	}
	if cache.resolveCalls != 0 {
		t.Fatalf("later tiers must not be consulted after a hit")
	}
}

func TestResolveListingAdvancesPastFailures(t *testing.T) {
	remote := &fakeTier{name: "remote", err: domain.ErrUnauthorized}
	cache := &fakeWritableTier{fakeTier{name: "cache", err: domain.ErrNotFound}}
	store := &fakeWritableTier{fakeTier{name: "store", listing: &domain.Listing{ID: "x", Title: "Stored"}}}
	sample := &fakeTier{name: "sample", listing: &domain.Listing{ID: "x", Title: "Sample"}}

	uc := NewResolveListingUseCase(remote, cache, store, sample)
	got, err := uc.Execute(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != "store" {
		t.Fatalf("expected the store tier to answer, got %q", got.Source)
	}
	if got.Informational {
		t.Fatalf("a non-terminal hit must not be informational")
	}
	if sample.resolveCalls != 0 {
		t.Fatalf("terminal tier consulted despite an earlier hit")
	}
}

func TestResolveListingSkipsPlaceholderRecords(t *testing.T) {
	// a record of pure empty-form defaults counts as a miss
	remote := &fakeTier{name: "remote", listing: &domain.Listing{}}
	sample := &fakeTier{name: "sample", listing: &domain.Listing{ID: "x", Title: "Sample"}}

	uc := NewResolveListingUseCase(remote, sample)
	got, err := uc.Execute(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != "sample" {
		t.Fatalf("placeholder record should advance the chain, got source %q", got.Source)
	}
}

func TestResolveListingTerminalHitIsInformational(t *testing.T) {
	remote := &fakeTier{name: "remote", err: domain.ErrNetworkUnavailable}
	sample := &fakeTier{name: "sample", listing: &domain.Listing{ID: "x", Title: "Sample"}}

	uc := NewResolveListingUseCase(remote, sample)
	got, err := uc.Execute(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Informational {
		t.Fatalf("a terminal-tier answer must carry the informational flag")
	}
}

func TestResolveListingPromotesIntoEarlierWritableTiers(t *testing.T) {
	remote := &fakeTier{name: "remote", err: domain.ErrServer}
	cache := &fakeWritableTier{fakeTier{name: "cache", err: domain.ErrNotFound}}
	store := &fakeWritableTier{fakeTier{name: "store", listing: &domain.Listing{ID: "x", Title: "Stored"}}}
	sample := &fakeTier{name: "sample", listing: &domain.Listing{ID: "x", Title: "Sample"}}

	uc := NewResolveListingUseCase(remote, cache, store, sample)
	if _, err := uc.Execute(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.stored) != 1 || cache.stored[0].Title != "Stored" {
		t.Fatalf("hit should be promoted into the cache tier, stored: %v", cache.stored)
	}
	if len(store.stored) != 0 {
		t.Fatalf("the answering tier itself must not be written back")
	}
}

func TestResolveListingNeverPromotesTerminalAnswers(t *testing.T) {
	remote := &fakeTier{name: "remote", err: domain.ErrNetworkUnavailable}
	cache := &fakeWritableTier{fakeTier{name: "cache", err: domain.ErrNotFound}}
	store := &fakeWritableTier{fakeTier{name: "store", err: domain.ErrNotFound}}
	sample := &fakeTier{name: "sample", listing: &domain.Listing{ID: "ghost-id", Title: "Sample Villa"}}

	uc := NewResolveListingUseCase(remote, cache, store, sample)
	got, err := uc.Execute(context.Background(), "ghost-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Source != "sample" || !got.Informational {
		t.Fatalf("expected an informational sample answer, got %+v", got)
	}
	if len(cache.stored) != 0 || len(store.stored) != 0 {
		t.Fatalf("fabricated sample data must not be written into real tiers: cache=%v store=%v",
			cache.stored, store.stored)
	}

	// with the remote still down, a second resolve must again come from the
	// sample tier and stay flagged, not surface as an ordinary cache hit
	again, err := uc.Execute(context.Background(), "ghost-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Source != "sample" || !again.Informational {
		t.Fatalf("repeat resolve must stay informational, got %+v", again)
	}
}

func TestResolveListingExhaustionIsNotFound(t *testing.T) {
	remote := &fakeTier{name: "remote", err: domain.ErrServer}
	uc := NewResolveListingUseCase(remote)
	_, err := uc.Execute(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after exhaustion, got %v", err)
	}
}
