package out

import (
	"context"
	"encoding/json"
	"fmt"

	"learnify/internal/modules/appstate/domain"
	appstateout "learnify/internal/modules/appstate/port/out"
	"learnify/internal/platform/kv"
)

// StorageKey holds the persisted preferences; namespaced it becomes
// learnify_storage.
const StorageKey = "storage"

type KVPreferencesStore struct {
	store kv.Store
}

func NewKVPreferencesStore(store kv.Store) appstateout.PreferencesStore {
	return &KVPreferencesStore{store: store}
}

func (s *KVPreferencesStore) Load(ctx context.Context) (domain.Preferences, bool, error) {
	raw, ok, err := s.store.Get(ctx, StorageKey)
	if err != nil || !ok {
		return domain.Preferences{}, false, err
	}
	prefs := domain.Preferences{}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return domain.Preferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, true, nil
}

func (s *KVPreferencesStore) Save(ctx context.Context, prefs domain.Preferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return s.store.Set(ctx, StorageKey, string(payload))
}
