package usecase

import (
	"context"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/port"
)

// GetDraft loads a listing-form draft. A missing or unreadable draft falls
// back to the bundled empty form so the editor always opens with a valid
// payload.
type GetDraft struct {
	kv      port.KVStorePort
	samples port.SampleDataPort
}

func NewGetDraft(kv port.KVStorePort, samples port.SampleDataPort) *GetDraft {
	return &GetDraft{kv: kv, samples: samples}
}

func draftKey(userID, draftID string) string { return "draft:" + userID + ":" + draftID }

func (uc *GetDraft) Execute(ctx context.Context, userID, draftID string) ([]byte, string, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	value, err := uc.kv.Get(ctx, draftKey(userID, draftID))
	if err == nil && len(value) > 0 {
		return value, "store", nil
	}
	if err != nil {
		logger.Debug("draft not in store, serving empty form", port.Fields{"draft_id": draftID})
	}
	return uc.samples.EmptyDraft(), "sample", nil
}
