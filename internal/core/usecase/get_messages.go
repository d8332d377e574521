package usecase

import (
	"context"
	"encoding/json"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// GetMessages returns a conversation's history bucketed by calendar day,
// oldest bucket first, ready for rendering. Like the conversation list, a
// successful fetch leaves a last-good copy in the KV store that is served
// with the informational flag when the upstream is down.
type GetMessages struct {
	conversations port.ConversationSourcePort
	kv            port.KVStorePort
}

func NewGetMessages(conversations port.ConversationSourcePort, kv port.KVStorePort) *GetMessages {
	return &GetMessages{conversations: conversations, kv: kv}
}

func messagesKey(conversationID string) string { return "messages:" + conversationID }

func (uc *GetMessages) Execute(ctx context.Context, conversationID string) (*domain.MessageHistory, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	msgs, err := uc.conversations.FetchMessages(ctx, conversationID)
	if err == nil {
		if value, marshalErr := json.Marshal(msgs); marshalErr == nil {
			if setErr := uc.kv.Set(ctx, messagesKey(conversationID), value, 0); setErr != nil {
				logger.Warn("Failed to store last-good message history", port.Fields{"error": setErr.Error()})
			}
		}
		return &domain.MessageHistory{Groups: domain.GroupMessagesByDate(msgs)}, nil
	}

	logger.Warn("Message fetch failed, serving last-good copy", port.Fields{
		"conversation_id": conversationID,
		"error":           err.Error(),
	})

	var cached []domain.Message
	if value, getErr := uc.kv.Get(ctx, messagesKey(conversationID)); getErr == nil {
		_ = json.Unmarshal(value, &cached)
	}
	return &domain.MessageHistory{Groups: domain.GroupMessagesByDate(cached), Informational: true}, nil
}
