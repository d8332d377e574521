package usecase

import (
	"context"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/port"
)

// SyncPending runs on a schedule and mirrors the upstream pending set into
// the local per-user sets. It uses the service credential (the marketplace
// client falls back to it when the context carries no user token), so it can
// see messages for every recipient.
type SyncPending struct {
	conversations port.ConversationSourcePort
	store         *PendingStore
}

func NewSyncPending(conversations port.ConversationSourcePort, store *PendingStore) *SyncPending {
	return &SyncPending{conversations: conversations, store: store}
}

func (uc *SyncPending) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx)

	upstream, err := uc.conversations.FetchPendingMessages(ctx)
	if err != nil {
		return err
	}

	var stored int
	for _, msg := range upstream {
		if msg.RecipientID == "" {
			continue
		}
		if uc.store.IsTombstoned(ctx, msg.RecipientID, msg.ID) {
			continue
		}
		if err := uc.store.Put(ctx, msg.RecipientID, msg); err != nil {
			logger.Warn("failed to store pending message during sync", port.Fields{"message_id": msg.ID, "error": err.Error()})
			continue
		}
		stored++
	}
	logger.Info("pending sync finished", port.Fields{"fetched": len(upstream), "stored": stored})
	return nil
}
