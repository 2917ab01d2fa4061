package in

import (
	"context"

	"learnify/internal/modules/appstate/dto"
)

type Usecase interface {
	State(ctx context.Context) (dto.StateOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.StateOutput, error)
	Logout(ctx context.Context) (dto.StateOutput, error)
	ToggleFavorite(ctx context.Context, courseID string) (dto.FavoriteOutput, error)
	SetTheme(ctx context.Context, theme string) (dto.StateOutput, error)
	SetLanguage(ctx context.Context, language string) (dto.StateOutput, error)
	SetSidebarCollapsed(ctx context.Context, collapsed bool) (dto.StateOutput, error)
	IncrementStudyTime(ctx context.Context, minutes int) (dto.StateOutput, error)
	SetStudyStreak(ctx context.Context, days int) (dto.StateOutput, error)
	SyncStudyStreak(ctx context.Context) (dto.StateOutput, error)
	MarkEnrolled(ctx context.Context, courseID string) (dto.StateOutput, error)
	CompleteCourse(ctx context.Context, courseID string) (dto.StateOutput, error)
}
