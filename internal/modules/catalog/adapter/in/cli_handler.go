package in

import (
	"context"

	"learnify/internal/modules/catalog/dto"
	catalogin "learnify/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListCourses(ctx context.Context) ([]dto.CourseOutput, error) {
	return h.usecase.GetAllCourses(ctx)
}

func (h CLIHandler) ShowCourse(ctx context.Context, id string) (dto.CourseOutput, error) {
	return h.usecase.GetCourseByID(ctx, id)
}

func (h CLIHandler) Search(ctx context.Context, query string) ([]dto.CourseOutput, error) {
	return h.usecase.SearchCourses(ctx, query)
}

func (h CLIHandler) Filter(ctx context.Context, category, level, price, duration string) ([]dto.CourseOutput, error) {
	return h.usecase.FilterCourses(ctx, dto.FilterInput{Category: category, Level: level, Price: price, Duration: duration})
}

func (h CLIHandler) ByCategory(ctx context.Context, category string) ([]dto.CourseOutput, error) {
	return h.usecase.GetCoursesByCategory(ctx, category)
}

func (h CLIHandler) Categories(ctx context.Context) ([]string, error) {
	return h.usecase.Categories(ctx)
}

// Recommended resolves the current user when userID is empty.
func (h CLIHandler) Recommended(ctx context.Context, userID string) ([]dto.CourseOutput, error) {
	if userID == "" {
		user, err := h.usecase.GetCurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		userID = user.ID
	}
	return h.usecase.GetRecommendedCourses(ctx, userID)
}

func (h CLIHandler) Enrolled(ctx context.Context) ([]dto.CourseOutput, error) {
	return h.usecase.GetEnrolledCourses(ctx)
}

func (h CLIHandler) Completed(ctx context.Context) ([]dto.CourseOutput, error) {
	return h.usecase.GetCompletedCourses(ctx)
}

func (h CLIHandler) Profile(ctx context.Context) (dto.UserOutput, error) {
	return h.usecase.GetCurrentUser(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, name, email, avatar *string) (dto.UserOutput, error) {
	return h.usecase.UpdateUserProfile(ctx, dto.UpdateProfileInput{Name: name, Email: email, Avatar: avatar})
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	user, err := h.usecase.GetCurrentUser(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return h.usecase.GetUserStats(ctx, user.ID)
}

func (h CLIHandler) RecentActivities(ctx context.Context) ([]dto.ActivityOutput, error) {
	user, err := h.usecase.GetCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return h.usecase.GetRecentActivities(ctx, user.ID)
}

func (h CLIHandler) LogActivity(ctx context.Context, input dto.LogActivityInput) (dto.ActivityOutput, error) {
	return h.usecase.LogActivity(ctx, input)
}

func (h CLIHandler) Prefetch(ctx context.Context) error {
	return h.usecase.Prefetch(ctx)
}
