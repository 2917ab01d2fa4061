package in

import (
	"context"

	"learnify/internal/modules/catalog/dto"
)

type UserUsecase interface {
	GetCurrentUser(ctx context.Context) (dto.UserOutput, error)
	UpdateUserProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.UserOutput, error)
	GetUserStats(ctx context.Context, userID string) (dto.StatsOutput, error)
}

type CourseUsecase interface {
	GetAllCourses(ctx context.Context) ([]dto.CourseOutput, error)
	GetCourseByID(ctx context.Context, id string) (dto.CourseOutput, error)
	SearchCourses(ctx context.Context, query string) ([]dto.CourseOutput, error)
	FilterCourses(ctx context.Context, input dto.FilterInput) ([]dto.CourseOutput, error)
	GetCoursesByCategory(ctx context.Context, category string) ([]dto.CourseOutput, error)
	GetRecommendedCourses(ctx context.Context, userID string) ([]dto.CourseOutput, error)
	GetEnrolledCourses(ctx context.Context) ([]dto.CourseOutput, error)
	GetCompletedCourses(ctx context.Context) ([]dto.CourseOutput, error)
	Categories(ctx context.Context) ([]string, error)
	EnrollInCourse(ctx context.Context, input dto.EnrollInput) (dto.EnrollOutput, error)
}

type ActivityUsecase interface {
	GetRecentActivities(ctx context.Context, userID string) ([]dto.ActivityOutput, error)
	LogActivity(ctx context.Context, input dto.LogActivityInput) (dto.ActivityOutput, error)
}

type Usecase interface {
	UserUsecase
	CourseUsecase
	ActivityUsecase
	Prefetch(ctx context.Context) error
}
