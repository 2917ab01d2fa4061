package out

import (
	"context"
	"fmt"
	"strconv"

	"learnify/internal/modules/progress/domain"
	progressout "learnify/internal/modules/progress/port/out"
	"learnify/internal/platform/kv"
	"learnify/internal/platform/logger"
)

// KVProgressStore keeps one decimal string per course under progress_<id>.
type KVProgressStore struct {
	store kv.Store
	log   *logger.Logger
}

func NewKVProgressStore(store kv.Store, log *logger.Logger) progressout.ProgressStore {
	if log == nil {
		log = logger.Nop()
	}
	return &KVProgressStore{store: store, log: log}
}

func (s *KVProgressStore) Set(ctx context.Context, courseID string, percent int) error {
	if err := s.store.Set(ctx, domain.Key(courseID), strconv.Itoa(percent)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *KVProgressStore) Get(ctx context.Context, courseID string) (int, bool, error) {
	raw, ok, err := s.store.Get(ctx, domain.Key(courseID))
	if err != nil || !ok {
		return 0, false, err
	}
	percent, err := strconv.Atoi(raw)
	if err != nil {
		s.log.Warn("ignoring unparseable progress", "course_id", courseID, "value", raw)
		return 0, false, nil
	}
	return percent, true, nil
}

func (s *KVProgressStore) All(ctx context.Context) (map[string]int, error) {
	keys, err := s.store.Keys(ctx, domain.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	out := make(map[string]int, len(keys))
	for _, key := range keys {
		courseID, ok := domain.CourseIDFromKey(key)
		if !ok {
			continue
		}
		percent, found, err := s.Get(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if found {
			out[courseID] = percent
		}
	}
	return out, nil
}
