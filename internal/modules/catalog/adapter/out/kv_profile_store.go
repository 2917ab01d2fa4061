package out

import (
	"context"
	"encoding/json"
	"fmt"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
	"learnify/internal/platform/kv"
)

type KVProfileStore struct {
	store kv.Store
}

func NewKVProfileStore(store kv.Store) catalogout.ProfileStore {
	return &KVProfileStore{store: store}
}

func profileKey(userID string) string {
	return "profile_" + userID
}

func (s *KVProfileStore) LoadOverlay(ctx context.Context, userID string) (domain.ProfileOverlay, error) {
	raw, ok, err := s.store.Get(ctx, profileKey(userID))
	if err != nil {
		return domain.ProfileOverlay{}, err
	}
	if !ok {
		return domain.ProfileOverlay{}, nil
	}
	overlay := domain.ProfileOverlay{}
	if err := json.Unmarshal([]byte(raw), &overlay); err != nil {
		return domain.ProfileOverlay{}, fmt.Errorf("decode profile overlay: %w", err)
	}
	return overlay, nil
}

func (s *KVProfileStore) SaveOverlay(ctx context.Context, userID string, overlay domain.ProfileOverlay) error {
	payload, err := json.Marshal(overlay)
	if err != nil {
		return fmt.Errorf("marshal profile overlay: %w", err)
	}
	return s.store.Set(ctx, profileKey(userID), string(payload))
}
