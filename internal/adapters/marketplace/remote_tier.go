package marketplace

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

// RemoteTier exposes the upstream API as the first source of the fallback
// chain. It is intentionally not writable: results are never promoted back
// to the remote.
type RemoteTier struct {
	client *Client
}

func NewRemoteTier(client *Client) *RemoteTier {
	return &RemoteTier{client: client}
}

func (t *RemoteTier) Name() string { return "remote" }

func (t *RemoteTier) Resolve(ctx context.Context, id string) (*domain.Listing, error) {
	return t.client.FetchListingByID(ctx, id)
}
