package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// SendMessage delivers a message to the upstream marketplace. When the
// upstream is unreachable the message goes into a per-user outbox instead
// of being lost, and the receipt says so.
type SendMessage struct {
	conversations port.ConversationSourcePort
	kv            port.KVStorePort
}

func NewSendMessage(conversations port.ConversationSourcePort, kv port.KVStorePort) *SendMessage {
	return &SendMessage{conversations: conversations, kv: kv}
}

type outboxEntry struct {
	ConversationID string    `json:"conversationId"`
	Content        string    `json:"content"`
	QueuedAt       time.Time `json:"queuedAt"`
}

func outboxKey(userID string) string { return "outbox:" + userID }

func (uc *SendMessage) Execute(ctx context.Context, conversationID, content string) (*domain.SendReceipt, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrValidation
	}

	sent, err := uc.conversations.SendMessage(ctx, conversationID, content)
	if err == nil {
		// A successful send means the upstream is back, so flush anything
		// queued while it was down.
		if userID := contextkeys.UserIDFromContext(ctx); userID != "" {
			if drainErr := uc.DrainOutbox(ctx, userID); drainErr != nil {
				logger.Warn("outbox drain after successful send failed", port.Fields{"error": drainErr.Error()})
			}
		}
		return &domain.SendReceipt{Message: *sent}, nil
	}
	if !errors.Is(err, domain.ErrNetworkUnavailable) && !errors.Is(err, domain.ErrServer) {
		return nil, err
	}

	userID := contextkeys.UserIDFromContext(ctx)
	now := time.Now().UTC()
	if queueErr := uc.queue(ctx, userID, outboxEntry{ConversationID: conversationID, Content: content, QueuedAt: now}); queueErr != nil {
		logger.Error("failed to queue message after upstream failure", queueErr, port.Fields{"conversation_id": conversationID})
		return nil, err
	}

	logger.Warn("upstream send failed, message queued", port.Fields{"conversation_id": conversationID, "error": err.Error()})
	return &domain.SendReceipt{
		Message: domain.Message{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			SenderID:       userID,
			Content:        content,
			CreatedAt:      now,
		},
		Queued: true,
		Notice: "Message saved and will be sent when the connection recovers.",
	}, nil
}

func (uc *SendMessage) queue(ctx context.Context, userID string, entry outboxEntry) error {
	var entries []outboxEntry
	if value, err := uc.kv.Get(ctx, outboxKey(userID)); err == nil {
		// corrupt outbox starts over rather than blocking the send
		_ = json.Unmarshal(value, &entries)
	}
	entries = append(entries, entry)
	value, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return uc.kv.Set(ctx, outboxKey(userID), value, 0)
}

// DrainOutbox retries queued messages, keeping the ones that still fail.
func (uc *SendMessage) DrainOutbox(ctx context.Context, userID string) error {
	logger := contextkeys.LoggerFromContext(ctx)

	value, err := uc.kv.Get(ctx, outboxKey(userID))
	if err != nil {
		return nil
	}
	var entries []outboxEntry
	if err := json.Unmarshal(value, &entries); err != nil {
		return uc.kv.Remove(ctx, outboxKey(userID))
	}

	var remaining []outboxEntry
	for _, entry := range entries {
		if _, err := uc.conversations.SendMessage(ctx, entry.ConversationID, entry.Content); err != nil {
			remaining = append(remaining, entry)
		}
	}
	if len(remaining) == 0 {
		return uc.kv.Remove(ctx, outboxKey(userID))
	}
	logger.Info("outbox drained partially", port.Fields{"sent": len(entries) - len(remaining), "remaining": len(remaining)})
	value, err = json.Marshal(remaining)
	if err != nil {
		return err
	}
	return uc.kv.Set(ctx, outboxKey(userID), value, 0)
}
