package port

import (
	"context"

	"listing-feed-service/internal/core/domain"
)

// ConversationEventsPort publishes conversation lifecycle events for other
// services (notifications, analytics).
type ConversationEventsPort interface {
	PublishAccepted(ctx context.Context, conv domain.Conversation) error
}
