package out

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
	"learnify/internal/platform/kv"
)

// KVActivityLog stores each user's activities as one JSON array.
type KVActivityLog struct {
	store kv.Store
	mu    sync.Mutex
}

func NewKVActivityLog(store kv.Store) catalogout.ActivityLog {
	return &KVActivityLog{store: store}
}

func activityKey(userID string) string {
	return "activities_" + userID
}

func (l *KVActivityLog) Append(ctx context.Context, activity domain.Activity) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	existing, err := l.load(ctx, activity.UserID)
	if err != nil {
		return err
	}
	existing = append(existing, activity)
	payload, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshal activity log: %w", err)
	}
	return l.store.Set(ctx, activityKey(activity.UserID), string(payload))
}

func (l *KVActivityLog) List(ctx context.Context, userID string) ([]domain.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx, userID)
}

func (l *KVActivityLog) load(ctx context.Context, userID string) ([]domain.Activity, error) {
	raw, ok, err := l.store.Get(ctx, activityKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Activity{}, nil
	}
	out := []domain.Activity{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode activity log: %w", err)
	}
	return out, nil
}
