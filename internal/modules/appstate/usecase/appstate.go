package usecase

import (
	"context"
	"strings"

	"learnify/internal/modules/appstate/domain"
	"learnify/internal/modules/appstate/dto"
	appstatein "learnify/internal/modules/appstate/port/in"
	"learnify/internal/modules/appstate/service"
)

type Interactor struct {
	svc *service.AppStateService
}

func NewInteractor(svc *service.AppStateService) appstatein.Usecase {
	return &Interactor{svc: svc}
}

func wrap(st domain.State, err error) (dto.StateOutput, error) {
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toOutput(st), nil
}

func (i *Interactor) State(ctx context.Context) (dto.StateOutput, error) {
	return wrap(i.svc.State(ctx))
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.StateOutput, error) {
	return wrap(i.svc.Login(ctx, strings.TrimSpace(input.Email), input.Password))
}

func (i *Interactor) Logout(ctx context.Context) (dto.StateOutput, error) {
	return wrap(i.svc.Logout(ctx))
}

func (i *Interactor) ToggleFavorite(ctx context.Context, courseID string) (dto.FavoriteOutput, error) {
	st, favorite, err := i.svc.ToggleFavorite(ctx, courseID)
	if err != nil {
		return dto.FavoriteOutput{}, err
	}
	return dto.FavoriteOutput{CourseID: courseID, Favorite: favorite, State: toOutput(st)}, nil
}

func (i *Interactor) SetTheme(ctx context.Context, theme string) (dto.StateOutput, error) {
	return wrap(i.svc.SetTheme(ctx, domain.Theme(strings.ToLower(theme))))
}

func (i *Interactor) SetLanguage(ctx context.Context, language string) (dto.StateOutput, error) {
	return wrap(i.svc.SetLanguage(ctx, domain.Language(strings.ToLower(language))))
}

func (i *Interactor) SetSidebarCollapsed(ctx context.Context, collapsed bool) (dto.StateOutput, error) {
	return wrap(i.svc.SetSidebarCollapsed(ctx, collapsed))
}

func (i *Interactor) IncrementStudyTime(ctx context.Context, minutes int) (dto.StateOutput, error) {
	return wrap(i.svc.IncrementStudyTime(ctx, minutes))
}

func (i *Interactor) SetStudyStreak(ctx context.Context, days int) (dto.StateOutput, error) {
	return wrap(i.svc.SetStudyStreak(ctx, days))
}

func (i *Interactor) SyncStudyStreak(ctx context.Context) (dto.StateOutput, error) {
	return wrap(i.svc.SyncStudyStreak(ctx))
}

func (i *Interactor) MarkEnrolled(ctx context.Context, courseID string) (dto.StateOutput, error) {
	return wrap(i.svc.MarkEnrolled(ctx, courseID))
}

func (i *Interactor) CompleteCourse(ctx context.Context, courseID string) (dto.StateOutput, error) {
	return wrap(i.svc.CompleteCourse(ctx, courseID))
}

func toOutput(st domain.State) dto.StateOutput {
	return dto.StateOutput{
		Authenticated:    st.Authenticated,
		UserID:           st.CurrentUserID,
		UserName:         st.CurrentUserName,
		Theme:            string(st.Theme),
		Language:         string(st.Language),
		SidebarCollapsed: st.SidebarCollapsed,
		FavoriteCourses:  st.FavoriteCourses,
		TotalStudyTime:   st.TotalStudyTime,
		StudyStreak:      st.StudyStreak,
		Progress:         st.Progress,
	}
}
