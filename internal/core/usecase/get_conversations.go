package usecase

import (
	"context"
	"encoding/json"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// GetConversations lists the user's conversations. Every successful fetch
// overwrites a last-good copy in the KV store; when the upstream is
// unreachable that copy is served with the informational flag set, so a
// flaky connection degrades the view instead of blanking it.
type GetConversations struct {
	conversations port.ConversationSourcePort
	kv            port.KVStorePort
}

func NewGetConversations(conversations port.ConversationSourcePort, kv port.KVStorePort) *GetConversations {
	return &GetConversations{conversations: conversations, kv: kv}
}

func conversationsKey(userID string) string { return "conversations:" + userID }

func (uc *GetConversations) Execute(ctx context.Context) (*domain.ConversationFeed, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	userID := contextkeys.UserIDFromContext(ctx)

	conversations, err := uc.conversations.FetchConversations(ctx)
	if err == nil {
		if value, marshalErr := json.Marshal(conversations); marshalErr == nil {
			if setErr := uc.kv.Set(ctx, conversationsKey(userID), value, 0); setErr != nil {
				logger.Warn("Failed to store last-good conversation list", port.Fields{"error": setErr.Error()})
			}
		}
		return &domain.ConversationFeed{Conversations: conversations}, nil
	}

	logger.Warn("Conversation fetch failed, serving last-good copy", port.Fields{"error": err.Error()})

	var cached []domain.Conversation
	if value, getErr := uc.kv.Get(ctx, conversationsKey(userID)); getErr == nil {
		// a corrupt copy degrades to an empty list rather than an error
		_ = json.Unmarshal(value, &cached)
	}
	return &domain.ConversationFeed{Conversations: cached, Informational: true}, nil
}
