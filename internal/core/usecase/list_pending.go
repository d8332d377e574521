package usecase

import (
	"context"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// ListPending merges the upstream pending set with what the event consumer
// stored locally, then drops everything the user has already accepted or
// ignored. The upstream call is best effort: when it fails the local set
// still answers.
type ListPending struct {
	conversations port.ConversationSourcePort
	store         *PendingStore
}

func NewListPending(conversations port.ConversationSourcePort, store *PendingStore) *ListPending {
	return &ListPending{conversations: conversations, store: store}
}

func (uc *ListPending) Execute(ctx context.Context, userID string) ([]domain.PendingMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	local, err := uc.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := make([]domain.PendingMessage, 0, len(local))
	seen := make(map[string]struct{})

	upstream, err := uc.conversations.FetchPendingMessages(ctx)
	if err != nil {
		logger.Warn("pending fetch from upstream failed, serving local set", port.Fields{"error": err.Error()})
	} else {
		for _, msg := range upstream {
			if _, ok := seen[msg.ID]; ok {
				continue
			}
			seen[msg.ID] = struct{}{}
			merged = append(merged, msg)
		}
	}

	for _, msg := range local {
		if _, ok := seen[msg.ID]; ok {
			continue
		}
		seen[msg.ID] = struct{}{}
		merged = append(merged, msg)
	}

	kept := merged[:0]
	for _, msg := range merged {
		if uc.store.IsTombstoned(ctx, userID, msg.ID) {
			continue
		}
		kept = append(kept, msg)
	}
	return kept, nil
}
