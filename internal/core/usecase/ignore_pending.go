package usecase

import (
	"context"
	"errors"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// IgnorePending declines a pending message. Like accept, the local removal
// and tombstone happen regardless of the upstream outcome.
type IgnorePending struct {
	conversations port.ConversationSourcePort
	store         *PendingStore
}

func NewIgnorePending(conversations port.ConversationSourcePort, store *PendingStore) *IgnorePending {
	return &IgnorePending{conversations: conversations, store: store}
}

func (uc *IgnorePending) Execute(ctx context.Context, userID, messageID string) error {
	logger := contextkeys.LoggerFromContext(ctx)

	if err := uc.conversations.IgnorePendingMessage(ctx, messageID); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		logger.Warn("pending message already settled upstream", port.Fields{"message_id": messageID})
	}

	if err := uc.store.Remove(ctx, userID, messageID); err != nil {
		logger.Warn("failed to drop ignored message from local set", port.Fields{"message_id": messageID, "error": err.Error()})
	}
	return uc.store.Tombstone(ctx, userID, messageID)
}
