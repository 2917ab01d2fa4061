package usecase

import (
	"context"
	"sort"

	"learnify/internal/modules/progress/dto"
	progressin "learnify/internal/modules/progress/port/in"
	"learnify/internal/modules/progress/service"
	"learnify/internal/platform/querycache"
)

const (
	KeyCourseProgress = "courseProgress"
	KeyAllProgress    = "allProgress"
	// catalogue read refreshed after every progress write
	keyCurrentUser = "currentUser"
)

type Interactor struct {
	svc   *service.ProgressService
	cache *querycache.Client
}

func NewInteractor(svc *service.ProgressService, cache *querycache.Client) progressin.Usecase {
	return &Interactor{svc: svc, cache: cache}
}

func (i *Interactor) UpdateCourseProgress(ctx context.Context, input dto.UpdateProgressInput) (dto.ProgressOutput, error) {
	stored, err := i.svc.UpdateCourseProgress(ctx, input.CourseID, input.Percent)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	i.cache.Invalidate(KeyCourseProgress, input.CourseID)
	i.cache.Invalidate(KeyAllProgress)
	i.cache.Invalidate(keyCurrentUser)
	return dto.ProgressOutput{CourseID: input.CourseID, Percent: stored}, nil
}

func (i *Interactor) GetCourseProgress(ctx context.Context, courseID string) (dto.ProgressOutput, error) {
	percent, err := querycache.Fetch(ctx, i.cache, querycache.Query[int]{
		Key: []any{KeyCourseProgress, courseID},
		Fetch: func(ctx context.Context) (int, error) {
			return i.svc.GetCourseProgress(ctx, courseID)
		},
	})
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return dto.ProgressOutput{CourseID: courseID, Percent: percent}, nil
}

// GetAllProgress is ordered by course id.
func (i *Interactor) GetAllProgress(ctx context.Context) ([]dto.ProgressOutput, error) {
	all, err := querycache.Fetch(ctx, i.cache, querycache.Query[map[string]int]{
		Key:   []any{KeyAllProgress},
		Fetch: i.svc.GetAllProgress,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProgressOutput, 0, len(all))
	for courseID, percent := range all {
		out = append(out, dto.ProgressOutput{CourseID: courseID, Percent: percent})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CourseID < out[b].CourseID })
	return out, nil
}
