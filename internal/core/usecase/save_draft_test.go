package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

type testLogger struct{}

func (testLogger) Debug(string, port.Fields)                {}
func (testLogger) Info(string, port.Fields)                 {}
func (testLogger) Warn(string, port.Fields)                 {}
func (testLogger) Error(string, error, port.Fields)         {}
func (l testLogger) WithFields(port.Fields) port.LoggerPort { return l }

func TestSaveDraftDebouncesRapidSaves(t *testing.T) {
	kv := newMemKV()
	uc := NewSaveDraft(kv, testLogger{}, 30*time.Millisecond)
	ctx := context.Background()

	uc.Execute(ctx, "u1", "d1", []byte(`{"title":"one"}`))
	uc.Execute(ctx, "u1", "d1", []byte(`{"title":"two"}`))
	uc.Execute(ctx, "u1", "d1", []byte(`{"title":"three"}`))

	// nothing lands before the quiet interval elapses
	if _, err := kv.Get(ctx, "draft:u1:d1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("write happened before the debounce interval: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	got, err := kv.Get(ctx, "draft:u1:d1")
	if err != nil {
		t.Fatalf("debounced write never landed: %v", err)
	}
	if string(got) != `{"title":"three"}` {
		t.Fatalf("expected the latest payload, got %s", got)
	}
}

func TestSaveDraftDistinctDraftsDoNotCoalesce(t *testing.T) {
	kv := newMemKV()
	uc := NewSaveDraft(kv, testLogger{}, 10*time.Millisecond)
	ctx := context.Background()

	uc.Execute(ctx, "u1", "d1", []byte(`{"n":1}`))
	uc.Execute(ctx, "u1", "d2", []byte(`{"n":2}`))

	time.Sleep(60 * time.Millisecond)

	if _, err := kv.Get(ctx, "draft:u1:d1"); err != nil {
		t.Fatalf("first draft missing: %v", err)
	}
	if _, err := kv.Get(ctx, "draft:u1:d2"); err != nil {
		t.Fatalf("second draft missing: %v", err)
	}
}

func TestSaveDraftFlushWritesPending(t *testing.T) {
	kv := newMemKV()
	// long interval so only Flush can land the write
	uc := NewSaveDraft(kv, testLogger{}, time.Hour)
	ctx := context.Background()

	uc.Execute(ctx, "u1", "d1", []byte(`{"title":"draft"}`))
	uc.Flush()

	got, err := kv.Get(ctx, "draft:u1:d1")
	if err != nil {
		t.Fatalf("flushed draft missing: %v", err)
	}
	if string(got) != `{"title":"draft"}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestSaveDraftRejectsInvalidJSON(t *testing.T) {
	uc := NewSaveDraft(newMemKV(), testLogger{}, time.Millisecond)
	err := uc.Execute(context.Background(), "u1", "d1", []byte("{not json"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetDraftFallsBackToEmptyForm(t *testing.T) {
	samples := &stubSampleData{}
	uc := NewGetDraft(newMemKV(), samples)

	payload, source, err := uc.Execute(context.Background(), "u1", "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "sample" {
		t.Fatalf("expected the sample source, got %q", source)
	}
	if string(payload) != "{}" {
		t.Fatalf("expected the empty form, got %s", payload)
	}
}

func TestGetDraftReturnsStoredPayload(t *testing.T) {
	kv := newMemKV()
	ctx := context.Background()
	kv.Set(ctx, "draft:u1:d1", []byte(`{"title":"saved"}`), 0)

	uc := NewGetDraft(kv, &stubSampleData{})
	payload, source, err := uc.Execute(ctx, "u1", "d1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "store" {
		t.Fatalf("expected the store source, got %q", source)
	}
	if string(payload) != `{"title":"saved"}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}
