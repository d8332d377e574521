package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

func (c *Client) FetchConversations(ctx context.Context) ([]domain.Conversation, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceClient",
		"method":    "FetchConversations",
	})

	body, err := c.get(ctx, c.baseURL+"/api/conversations")
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raws, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	conversations := make([]domain.Conversation, 0, len(raws))
	for _, raw := range raws {
		conversations = append(conversations, toDomainConversation(raw))
	}
	logger.Info("Fetched conversations", port.Fields{"count": len(conversations)})
	return conversations, nil
}

func (c *Client) FetchMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":       "MarketplaceClient",
		"method":          "FetchMessages",
		"conversation_id": conversationID,
	})

	u := fmt.Sprintf("%s/api/messages?conversationId=%s", c.baseURL, url.QueryEscape(conversationID))
	body, err := c.get(ctx, u)
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raws, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(raws))
	for _, raw := range raws {
		messages = append(messages, toDomainMessage(raw))
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":       "MarketplaceClient",
		"method":          "SendMessage",
		"conversation_id": conversationID,
	})

	payload, _ := json.Marshal(map[string]string{
		"conversationId": conversationID,
		"content":        content,
	})

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/api/messages", bytes.NewReader(payload))
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}
	body, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}

	raw, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	msg := toDomainMessage(raw)
	if msg.ConversationID == "" {
		msg.ConversationID = conversationID
	}
	return &msg, nil
}

func (c *Client) FetchPendingMessages(ctx context.Context) ([]domain.PendingMessage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MarketplaceClient",
		"method":    "FetchPendingMessages",
	})

	body, err := c.get(ctx, c.baseURL+"/api/messages/pending")
	if err != nil {
		logger.Error("Marketplace request failed", err, nil)
		return nil, err
	}

	raws, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	pending := make([]domain.PendingMessage, 0, len(raws))
	for _, raw := range raws {
		pending = append(pending, toDomainPendingMessage(raw))
	}
	return pending, nil
}

func (c *Client) AcceptPendingMessage(ctx context.Context, messageID string) (*domain.Conversation, error) {
	u := fmt.Sprintf("%s/api/messages/pending/%s/accept", c.baseURL, url.PathEscape(messageID))
	resp, err := c.doRequest(ctx, http.MethodPut, u, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}

	raw, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	conv := toDomainConversation(raw)
	return &conv, nil
}

func (c *Client) IgnorePendingMessage(ctx context.Context, messageID string) error {
	u := fmt.Sprintf("%s/api/messages/pending/%s/ignore", c.baseURL, url.PathEscape(messageID))
	resp, err := c.doRequest(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}
	_, err = c.readBody(resp)
	return err
}
