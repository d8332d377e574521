package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"listing-feed-service/internal/core/domain"
)

// memKV is a minimal in-process KVStorePort for tests.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// stubConversationSource scripts the upstream messaging API.
type stubConversationSource struct {
	conversations    []domain.Conversation
	conversationsErr error
	messages         []domain.Message
	messagesErr      error
	pending          []domain.PendingMessage
	pendingErr       error

	sendErr   error
	sendCalls int

	acceptConv *domain.Conversation
	acceptErr  error
	ignoreErr  error
}

func (s *stubConversationSource) FetchConversations(context.Context) ([]domain.Conversation, error) {
	return s.conversations, s.conversationsErr
}

func (s *stubConversationSource) FetchMessages(context.Context, string) ([]domain.Message, error) {
	return s.messages, s.messagesErr
}

func (s *stubConversationSource) SendMessage(_ context.Context, conversationID, content string) (*domain.Message, error) {
	s.sendCalls++
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &domain.Message{ID: "srv-1", ConversationID: conversationID, Content: content}, nil
}

func (s *stubConversationSource) FetchPendingMessages(context.Context) ([]domain.PendingMessage, error) {
	return s.pending, s.pendingErr
}

func (s *stubConversationSource) AcceptPendingMessage(context.Context, string) (*domain.Conversation, error) {
	return s.acceptConv, s.acceptErr
}

func (s *stubConversationSource) IgnorePendingMessage(context.Context, string) error {
	return s.ignoreErr
}

func TestListPendingMergesUpstreamAndLocal(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()

	if err := store.Put(ctx, "u1", domain.PendingMessage{ID: "local-1", RecipientID: "u1"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	source := &stubConversationSource{
		pending: []domain.PendingMessage{
			{ID: "up-1", RecipientID: "u1"},
			{ID: "local-1", RecipientID: "u1"}, // also known locally
		},
	}

	got, err := NewListPending(source, store).Execute(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 merged pending messages, got %d", len(got))
	}
}

func TestListPendingServesLocalWhenUpstreamFails(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()
	store.Put(ctx, "u1", domain.PendingMessage{ID: "local-1", RecipientID: "u1"})

	source := &stubConversationSource{pendingErr: domain.ErrNetworkUnavailable}

	got, err := NewListPending(source, store).Execute(ctx, "u1")
	if err != nil {
		t.Fatalf("upstream failure must not fail the listing: %v", err)
	}
	if len(got) != 1 || got[0].ID != "local-1" {
		t.Fatalf("expected the local set, got %+v", got)
	}
}

func TestAcceptPendingRemovesAndTombstones(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()
	store.Put(ctx, "u1", domain.PendingMessage{ID: "msg-1", RecipientID: "u1"})

	source := &stubConversationSource{
		acceptConv: &domain.Conversation{ID: "conv-1"},
		// upstream keeps returning the accepted message for a while
		pending: []domain.PendingMessage{{ID: "msg-1", RecipientID: "u1"}},
	}

	conv, err := NewAcceptPending(source, store, nil).Execute(ctx, "u1", "msg-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.ID != "conv-1" {
		t.Fatalf("expected the established conversation, got %+v", conv)
	}

	// the accepted message must not resurface even though upstream still has it
	got, err := NewListPending(source, store).Execute(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range got {
		if m.ID == "msg-1" {
			t.Fatalf("accepted message resurfaced in the pending list")
		}
	}
}

func TestIgnorePendingTombstones(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()
	store.Put(ctx, "u1", domain.PendingMessage{ID: "msg-1", RecipientID: "u1"})

	source := &stubConversationSource{}
	if err := NewIgnorePending(source, store).Execute(ctx, "u1", "msg-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.IsTombstoned(ctx, "u1", "msg-1") {
		t.Fatalf("ignored message must be tombstoned")
	}

	local, _ := store.List(ctx, "u1")
	for _, m := range local {
		if m.ID == "msg-1" {
			t.Fatalf("ignored message still in the local set")
		}
	}
}

func TestIngestPendingDropsTombstonedRedelivery(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()
	store.Tombstone(ctx, "u1", "msg-1")

	if err := NewIngestPending(store).Execute(ctx, "u1", domain.PendingMessage{ID: "msg-1", RecipientID: "u1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	local, _ := store.List(ctx, "u1")
	if len(local) != 0 {
		t.Fatalf("tombstoned redelivery must not be stored, got %+v", local)
	}
}

func TestIngestPendingIsIdempotent(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()

	msg := domain.PendingMessage{ID: "msg-1", RecipientID: "u1"}
	uc := NewIngestPending(store)
	uc.Execute(ctx, "u1", msg)
	uc.Execute(ctx, "u1", msg)

	local, _ := store.List(ctx, "u1")
	if len(local) != 1 {
		t.Fatalf("redelivered event must not duplicate the entry, got %d", len(local))
	}
}

func TestSyncPendingDistributesByRecipient(t *testing.T) {
	kv := newMemKV()
	store := NewPendingStore(kv)
	ctx := context.Background()
	store.Tombstone(ctx, "u2", "m3")

	source := &stubConversationSource{
		pending: []domain.PendingMessage{
			{ID: "m1", RecipientID: "u1"},
			{ID: "m2", RecipientID: "u2"},
			{ID: "m3", RecipientID: "u2"}, // already decided
			{ID: "m4"},                    // no recipient, skipped
		},
	}

	if err := NewSyncPending(source, store).Execute(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u1, _ := store.List(ctx, "u1")
	if len(u1) != 1 || u1[0].ID != "m1" {
		t.Fatalf("u1 set wrong: %+v", u1)
	}
	u2, _ := store.List(ctx, "u2")
	if len(u2) != 1 || u2[0].ID != "m2" {
		t.Fatalf("u2 set wrong: %+v", u2)
	}
}
