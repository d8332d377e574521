package port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

// PropertySourcePort is the upstream marketplace API, listing side.
type PropertySourcePort interface {
	// FetchListings returns normalized listings for one offering type.
	FetchListings(ctx context.Context, offering domain.OfferingType) ([]domain.Listing, error)
	FetchListingByID(ctx context.Context, id string) (*domain.Listing, error)
	FetchAgents(ctx context.Context) ([]domain.Agent, error)
}

// ConversationSourcePort is the upstream marketplace API, messaging side.
// All calls forward the caller's bearer token from the request context.
type ConversationSourcePort interface {
	FetchConversations(ctx context.Context) ([]domain.Conversation, error)
	FetchMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, conversationID, content string) (*domain.Message, error)

	FetchPendingMessages(ctx context.Context) ([]domain.PendingMessage, error)
	AcceptPendingMessage(ctx context.Context, messageID string) (*domain.Conversation, error)
	IgnorePendingMessage(ctx context.Context, messageID string) error
}
