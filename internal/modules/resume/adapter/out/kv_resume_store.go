package out

import (
	"context"
	"encoding/json"
	"fmt"

	"learnify/internal/modules/resume/domain"
	resumeout "learnify/internal/modules/resume/port/out"
	"learnify/internal/platform/kv"
)

const ResumeKey = "resume"

type record struct {
	Version int           `json:"version"`
	Resume  domain.Resume `json:"resume"`
}

type KVResumeStore struct {
	store kv.Store
}

func NewKVResumeStore(store kv.Store) resumeout.ResumeStore {
	return &KVResumeStore{store: store}
}

func (s *KVResumeStore) Load(ctx context.Context) (domain.Resume, bool, error) {
	raw, ok, err := s.store.Get(ctx, ResumeKey)
	if err != nil || !ok {
		return domain.Resume{}, false, err
	}
	rec := record{}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Resume{}, false, fmt.Errorf("decode resume: %w", err)
	}
	if rec.Version > domain.SchemaVersion {
		return domain.Resume{}, false, fmt.Errorf("resume schema version %d is newer than supported %d", rec.Version, domain.SchemaVersion)
	}
	for _, section := range rec.Resume.Sections {
		if err := section.Validate(); err != nil {
			return domain.Resume{}, false, fmt.Errorf("decode resume: %w", err)
		}
	}
	return rec.Resume, true, nil
}

func (s *KVResumeStore) Save(ctx context.Context, resume domain.Resume) error {
	payload, err := json.Marshal(record{Version: domain.SchemaVersion, Resume: resume})
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	return s.store.Set(ctx, ResumeKey, string(payload))
}
