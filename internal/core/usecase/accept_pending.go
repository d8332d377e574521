package usecase

import (
	"context"
	"errors"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// AcceptPending promotes a pending message into a real conversation.
// The local pending entry is removed and tombstoned unconditionally, so the
// message never resurfaces even if a later sync still sees it upstream.
type AcceptPending struct {
	conversations port.ConversationSourcePort
	store         *PendingStore
	events        port.ConversationEventsPort
}

func NewAcceptPending(conversations port.ConversationSourcePort, store *PendingStore, events port.ConversationEventsPort) *AcceptPending {
	return &AcceptPending{conversations: conversations, store: store, events: events}
}

func (uc *AcceptPending) Execute(ctx context.Context, userID, messageID string) (*domain.Conversation, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	conv, err := uc.conversations.AcceptPendingMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		// already accepted or no longer pending upstream, settle locally
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		logger.Warn("pending message already settled upstream", port.Fields{"message_id": messageID})
	}

	if err := uc.store.Remove(ctx, userID, messageID); err != nil {
		logger.Warn("failed to drop accepted message from local set", port.Fields{"message_id": messageID, "error": err.Error()})
	}
	if err := uc.store.Tombstone(ctx, userID, messageID); err != nil {
		logger.Warn("failed to tombstone accepted message", port.Fields{"message_id": messageID, "error": err.Error()})
	}

	if conv == nil {
		return nil, domain.ErrNotFound
	}

	if uc.events != nil {
		if err := uc.events.PublishAccepted(ctx, *conv); err != nil {
			logger.Warn("failed to publish conversation.accepted", port.Fields{"conversation_id": conv.ID, "error": err.Error()})
		}
	}
	return conv, nil
}
