package in

import (
	"context"

	"learnify/internal/modules/appstate/dto"
	appstatein "learnify/internal/modules/appstate/port/in"
)

type CLIHandler struct {
	usecase appstatein.Usecase
}

func NewCLIHandler(usecase appstatein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) (dto.StateOutput, error) {
	return h.usecase.SetTheme(ctx, theme)
}

func (h CLIHandler) SetLanguage(ctx context.Context, language string) (dto.StateOutput, error) {
	return h.usecase.SetLanguage(ctx, language)
}

func (h CLIHandler) SetSidebarCollapsed(ctx context.Context, collapsed bool) (dto.StateOutput, error) {
	return h.usecase.SetSidebarCollapsed(ctx, collapsed)
}

func (h CLIHandler) ToggleFavorite(ctx context.Context, courseID string) (dto.FavoriteOutput, error) {
	return h.usecase.ToggleFavorite(ctx, courseID)
}

func (h CLIHandler) LogStudy(ctx context.Context, minutes int) (dto.StateOutput, error) {
	return h.usecase.IncrementStudyTime(ctx, minutes)
}

func (h CLIHandler) SyncStreak(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.SyncStudyStreak(ctx)
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.StateOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.Logout(ctx)
}
