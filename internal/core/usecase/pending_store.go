package usecase

import (
	"context"
	"encoding/json"

	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

// PendingStore keeps per-user pending-message sets and accept/ignore
// tombstones in the injected KV layer. Tombstones are what keep a decided
// message from reappearing when a later upstream fetch or sync still
// returns it.
type PendingStore struct {
	kv port.KVStorePort
}

func NewPendingStore(kv port.KVStorePort) *PendingStore {
	return &PendingStore{kv: kv}
}

func pendingKey(userID string) string   { return "pending:" + userID }
func tombstoneKey(userID string) string { return "pending:tombstones:" + userID }

func (s *PendingStore) List(ctx context.Context, userID string) ([]domain.PendingMessage, error) {
	value, err := s.kv.Get(ctx, pendingKey(userID))
	if err != nil {
		if domain.IsRecoverableLoadError(err) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []domain.PendingMessage
	if err := json.Unmarshal(value, &msgs); err != nil {
		// corrupt entry behaves like an empty set
		return nil, nil
	}
	return msgs, nil
}

func (s *PendingStore) Put(ctx context.Context, userID string, msg domain.PendingMessage) error {
	msgs, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range msgs {
		if existing.ID == msg.ID {
			return nil
		}
	}
	msgs = append(msgs, msg)
	return s.save(ctx, userID, msgs)
}

func (s *PendingStore) Remove(ctx context.Context, userID, messageID string) error {
	msgs, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	kept := msgs[:0]
	for _, m := range msgs {
		if m.ID != messageID {
			kept = append(kept, m)
		}
	}
	return s.save(ctx, userID, kept)
}

func (s *PendingStore) save(ctx context.Context, userID string, msgs []domain.PendingMessage) error {
	value, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, pendingKey(userID), value, 0)
}

// Tombstone records that the user has decided on a message.
func (s *PendingStore) Tombstone(ctx context.Context, userID, messageID string) error {
	ids, _ := s.tombstones(ctx, userID)
	if _, ok := ids[messageID]; ok {
		return nil
	}
	ids[messageID] = struct{}{}
	flat := make([]string, 0, len(ids))
	for id := range ids {
		flat = append(flat, id)
	}
	value, err := json.Marshal(flat)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, tombstoneKey(userID), value, 0)
}

func (s *PendingStore) IsTombstoned(ctx context.Context, userID, messageID string) bool {
	ids, _ := s.tombstones(ctx, userID)
	_, ok := ids[messageID]
	return ok
}

func (s *PendingStore) tombstones(ctx context.Context, userID string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	value, err := s.kv.Get(ctx, tombstoneKey(userID))
	if err != nil {
		return ids, nil
	}
	var flat []string
	if err := json.Unmarshal(value, &flat); err != nil {
		return ids, nil
	}
	for _, id := range flat {
		ids[id] = struct{}{}
	}
	return ids, nil
}
