package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// SaveDraft persists listing-form drafts with a trailing debounce: rapid
// successive saves of the same draft collapse into one write of the latest
// payload after the quiet interval. Flush writes everything still pending,
// for shutdown.
type SaveDraft struct {
	kv       port.KVStorePort
	logger   port.LoggerPort
	interval time.Duration

	mu      sync.Mutex
	pending map[string]*pendingDraft
}

type pendingDraft struct {
	payload []byte
	timer   *time.Timer
}

func NewSaveDraft(kv port.KVStorePort, logger port.LoggerPort, interval time.Duration) *SaveDraft {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &SaveDraft{
		kv:       kv,
		logger:   logger,
		interval: interval,
		pending:  make(map[string]*pendingDraft),
	}
}

func (uc *SaveDraft) Execute(ctx context.Context, userID, draftID string, payload []byte) error {
	if !json.Valid(payload) {
		return domain.ErrValidation
	}
	key := draftKey(userID, draftID)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if entry, ok := uc.pending[key]; ok {
		entry.payload = payload
		entry.timer.Reset(uc.interval)
		return nil
	}

	entry := &pendingDraft{payload: payload}
	entry.timer = time.AfterFunc(uc.interval, func() { uc.fire(key) })
	uc.pending[key] = entry
	return nil
}

func (uc *SaveDraft) fire(key string) {
	uc.mu.Lock()
	entry, ok := uc.pending[key]
	if !ok {
		uc.mu.Unlock()
		return
	}
	delete(uc.pending, key)
	payload := entry.payload
	uc.mu.Unlock()

	uc.write(key, payload)
}

// Flush writes all debounced drafts immediately. Called on shutdown so no
// buffered draft is lost.
func (uc *SaveDraft) Flush() {
	uc.mu.Lock()
	drained := make(map[string][]byte, len(uc.pending))
	for key, entry := range uc.pending {
		entry.timer.Stop()
		drained[key] = entry.payload
	}
	uc.pending = make(map[string]*pendingDraft)
	uc.mu.Unlock()

	for key, payload := range drained {
		uc.write(key, payload)
	}
}

func (uc *SaveDraft) write(key string, payload []byte) {
	if err := uc.kv.Set(context.Background(), key, payload, 0); err != nil {
		uc.logger.Error("failed to persist draft", err, port.Fields{"key": key})
	}
}
