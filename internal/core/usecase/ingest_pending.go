package usecase

import (
	"context"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// IngestPending stores a pending message delivered by the message events
// consumer. Tombstoned messages are silently dropped so a redelivered event
// cannot resurrect a decided message.
type IngestPending struct {
	store *PendingStore
}

func NewIngestPending(store *PendingStore) *IngestPending {
	return &IngestPending{store: store}
}

func (uc *IngestPending) Execute(ctx context.Context, recipientID string, msg domain.PendingMessage) error {
	logger := contextkeys.LoggerFromContext(ctx)

	if uc.store.IsTombstoned(ctx, recipientID, msg.ID) {
		logger.Debug("dropping event for already settled message", port.Fields{"message_id": msg.ID})
		return nil
	}
	return uc.store.Put(ctx, recipientID, msg)
}
