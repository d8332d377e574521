package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
)

func TestSendMessageDeliversUpstream(t *testing.T) {
	source := &stubConversationSource{}
	uc := NewSendMessage(source, newMemKV())

	receipt, err := uc.Execute(context.Background(), "conv-1", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Queued {
		t.Fatalf("a delivered message must not be marked queued")
	}
	if receipt.Message.ID != "srv-1" {
		t.Fatalf("expected the upstream message back, got %+v", receipt.Message)
	}
}

func TestSendMessageQueuesOnNetworkFailure(t *testing.T) {
	source := &stubConversationSource{sendErr: domain.ErrNetworkUnavailable}
	kv := newMemKV()
	uc := NewSendMessage(source, kv)

	ctx := contextkeys.ContextWithUserID(context.Background(), "u1")
	receipt, err := uc.Execute(ctx, "conv-1", "hello")
	if err != nil {
		t.Fatalf("a queued send is a success, got error: %v", err)
	}
	if !receipt.Queued {
		t.Fatalf("expected the receipt to say queued")
	}
	if receipt.Message.Content != "hello" {
		t.Fatalf("the user's input must be preserved, got %q", receipt.Message.Content)
	}
	if receipt.Notice == "" {
		t.Fatalf("a queued send should carry a user-facing notice")
	}
	if _, err := kv.Get(ctx, "outbox:u1"); err != nil {
		t.Fatalf("message not written to the outbox: %v", err)
	}
}

func TestSendMessageSurfacesNonRecoverableErrors(t *testing.T) {
	source := &stubConversationSource{sendErr: domain.ErrUnauthorized}
	uc := NewSendMessage(source, newMemKV())

	if _, err := uc.Execute(context.Background(), "conv-1", "hello"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("auth errors must surface, not queue, got %v", err)
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	uc := NewSendMessage(&stubConversationSource{}, newMemKV())
	if _, err := uc.Execute(context.Background(), "conv-1", "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank content, got %v", err)
	}
}

func TestDrainOutboxRetriesQueuedMessages(t *testing.T) {
	source := &stubConversationSource{sendErr: domain.ErrNetworkUnavailable}
	kv := newMemKV()
	uc := NewSendMessage(source, kv)
	ctx := contextkeys.ContextWithUserID(context.Background(), "u1")

	if _, err := uc.Execute(ctx, "conv-1", "first"); err != nil {
		t.Fatalf("queueing failed: %v", err)
	}

	// connection recovers
	source.sendErr = nil
	if err := uc.DrainOutbox(ctx, "u1"); err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if _, err := kv.Get(ctx, "outbox:u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("outbox should be empty after a full drain, got %v", err)
	}
	// one call for the original attempt, one for the retry
	if source.sendCalls != 2 {
		t.Fatalf("expected 2 send calls, got %d", source.sendCalls)
	}
}
