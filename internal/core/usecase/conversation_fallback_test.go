package usecase

import (
	"context"
	"testing"
	"time"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
)

func TestGetConversationsServesLiveListAndCachesIt(t *testing.T) {
	source := &stubConversationSource{conversations: []domain.Conversation{{ID: "c1"}, {ID: "c2"}}}
	kv := newMemKV()
	ctx := contextkeys.ContextWithUserID(context.Background(), "u1")

	uc := NewGetConversations(source, kv)
	feed, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(feed.Conversations) != 2 || feed.Informational {
		t.Fatalf("expected 2 live conversations, got %+v", feed)
	}
	if _, err := kv.Get(ctx, "conversations:u1"); err != nil {
		t.Fatalf("a successful fetch must leave a last-good copy: %v", err)
	}
}

func TestGetConversationsServesLastGoodCopyWhenUpstreamIsDown(t *testing.T) {
	source := &stubConversationSource{conversations: []domain.Conversation{{ID: "c1"}}}
	kv := newMemKV()
	ctx := contextkeys.ContextWithUserID(context.Background(), "u1")

	uc := NewGetConversations(source, kv)
	if _, err := uc.Execute(ctx); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	source.conversations = nil
	source.conversationsErr = domain.ErrNetworkUnavailable

	feed, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("upstream failure must degrade, not block: %v", err)
	}
	if !feed.Informational {
		t.Fatalf("a last-good answer must be flagged informational")
	}
	if len(feed.Conversations) != 1 || feed.Conversations[0].ID != "c1" {
		t.Fatalf("expected the cached conversation back, got %+v", feed.Conversations)
	}
}

func TestGetConversationsDegradesToEmptyListWithoutACopy(t *testing.T) {
	source := &stubConversationSource{conversationsErr: domain.ErrServer}
	ctx := contextkeys.ContextWithUserID(context.Background(), "u1")

	uc := NewGetConversations(source, newMemKV())
	feed, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("upstream failure must degrade, not block: %v", err)
	}
	if !feed.Informational || len(feed.Conversations) != 0 {
		t.Fatalf("expected an empty informational list, got %+v", feed)
	}
}

func TestGetMessagesServesLastGoodCopyWhenUpstreamIsDown(t *testing.T) {
	when := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	source := &stubConversationSource{messages: []domain.Message{
		{ID: "m1", ConversationID: "c1", Content: "hello", CreatedAt: when},
	}}
	kv := newMemKV()
	ctx := context.Background()

	uc := NewGetMessages(source, kv)
	if _, err := uc.Execute(ctx, "c1"); err != nil {
		t.Fatalf("priming fetch failed: %v", err)
	}

	source.messages = nil
	source.messagesErr = domain.ErrUnauthorized

	history, err := uc.Execute(ctx, "c1")
	if err != nil {
		t.Fatalf("upstream failure must degrade, not block: %v", err)
	}
	if !history.Informational {
		t.Fatalf("a last-good answer must be flagged informational")
	}
	if len(history.Groups) != 1 || len(history.Groups[0].Messages) != 1 {
		t.Fatalf("expected the cached message back, grouped, got %+v", history.Groups)
	}
	if history.Groups[0].Messages[0].ID != "m1" {
		t.Fatalf("expected m1 back, got %+v", history.Groups[0].Messages[0])
	}
}

func TestGetMessagesDegradesToEmptyHistoryWithoutACopy(t *testing.T) {
	source := &stubConversationSource{messagesErr: domain.ErrNetworkUnavailable}

	uc := NewGetMessages(source, newMemKV())
	history, err := uc.Execute(context.Background(), "c1")
	if err != nil {
		t.Fatalf("upstream failure must degrade, not block: %v", err)
	}
	if !history.Informational || len(history.Groups) != 0 {
		t.Fatalf("expected empty informational history, got %+v", history)
	}
}
