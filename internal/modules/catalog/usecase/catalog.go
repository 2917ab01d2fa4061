package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnify/internal/modules/catalog/domain"
	"learnify/internal/modules/catalog/dto"
	catalogin "learnify/internal/modules/catalog/port/in"
	"learnify/internal/modules/catalog/service"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/logger"
	"learnify/internal/platform/querycache"
)

// Cache keys shared with other modules that invalidate catalogue reads.
const (
	KeyCurrentUser      = "currentUser"
	KeyUserStats        = "userStats"
	KeyCourses          = "courses"
	KeyCourse           = "course"
	KeySearch           = "searchCourses"
	KeyFiltered         = "filteredCourses"
	KeyByCategory       = "coursesByCategory"
	KeyRecommended      = "recommendedCourses"
	KeyEnrolled         = "enrolledCourses"
	KeyCompleted        = "completedCourses"
	KeyCategories       = "categories"
	KeyRecentActivities = "recentActivities"
)

// StaleTimes overrides the cache default per query family. Zero keeps the
// client default.
type StaleTimes struct {
	Catalog   time.Duration
	Search    time.Duration
	Recommend time.Duration
}

type Interactor struct {
	users      *service.UserService
	courses    *service.CourseService
	activities *service.ActivityService
	cache      *querycache.Client
	clock      clock.Clock
	stale      StaleTimes
	log        *logger.Logger
}

func NewInteractor(users *service.UserService, courses *service.CourseService, activities *service.ActivityService, cache *querycache.Client, clk clock.Clock, stale StaleTimes, log *logger.Logger) catalogin.Usecase {
	if log == nil {
		log = logger.Nop()
	}
	return &Interactor{users: users, courses: courses, activities: activities, cache: cache, clock: clk, stale: stale, log: log}
}

func (i *Interactor) currentUser(ctx context.Context) (domain.User, error) {
	return querycache.Fetch(ctx, i.cache, querycache.Query[domain.User]{
		Key:   []any{KeyCurrentUser},
		Fetch: i.users.GetCurrentUser,
	})
}

func (i *Interactor) allCourses(ctx context.Context) ([]domain.Course, error) {
	return querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key:       []any{KeyCourses},
		StaleTime: i.stale.Catalog,
		Fetch:     i.courses.GetAllCourses,
	})
}

func (i *Interactor) recentActivities(ctx context.Context, userID string) ([]domain.Activity, error) {
	return querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Activity]{
		Key: []any{KeyRecentActivities, userID},
		Fetch: func(ctx context.Context) ([]domain.Activity, error) {
			return i.activities.GetRecentActivities(ctx, userID)
		},
	})
}

func (i *Interactor) GetCurrentUser(ctx context.Context) (dto.UserOutput, error) {
	user, err := i.currentUser(ctx)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUserOutput(user), nil
}

func (i *Interactor) UpdateUserProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.UserOutput, error) {
	patch := domain.ProfilePatch{Name: input.Name, Email: input.Email, Avatar: input.Avatar}
	if patch.IsEmpty() {
		return dto.UserOutput{}, fmt.Errorf("nothing to update: %w", apperrors.ErrInvalidInput)
	}
	userID := input.UserID
	if userID == "" {
		current, err := i.currentUser(ctx)
		if err != nil {
			return dto.UserOutput{}, err
		}
		userID = current.ID
	}
	updated, err := i.users.UpdateUserProfile(ctx, userID, patch)
	if err != nil {
		return dto.UserOutput{}, err
	}
	i.cache.SetQueryData(updated, KeyCurrentUser)
	i.cache.Invalidate(KeyUserStats)
	i.log.Info("profile updated", "user_id", userID)
	return toUserOutput(updated), nil
}

func (i *Interactor) GetUserStats(ctx context.Context, userID string) (dto.StatsOutput, error) {
	stats, err := querycache.Fetch(ctx, i.cache, querycache.Query[domain.UserStats]{
		Key: []any{KeyUserStats, userID},
		Fetch: func(ctx context.Context) (domain.UserStats, error) {
			activities, err := i.activities.GetRecentActivities(ctx, userID)
			if err != nil {
				return domain.UserStats{}, err
			}
			return i.users.GetUserStats(ctx, userID, activities, i.clock.Now())
		},
	})
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		CoursesCompleted:   stats.CoursesCompleted,
		CertificatesEarned: stats.CertificatesEarned,
		StudyHours:         stats.StudyHours,
		CurrentStreak:      stats.CurrentStreak,
	}, nil
}

func (i *Interactor) GetAllCourses(ctx context.Context) ([]dto.CourseOutput, error) {
	courses, err := i.allCourses(ctx)
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) GetCourseByID(ctx context.Context, id string) (dto.CourseOutput, error) {
	course, err := querycache.Fetch(ctx, i.cache, querycache.Query[domain.Course]{
		Key:       []any{KeyCourse, id},
		StaleTime: i.stale.Catalog,
		Fetch: func(ctx context.Context) (domain.Course, error) {
			return i.courses.GetCourseByID(ctx, id)
		},
	})
	if err != nil {
		return dto.CourseOutput{}, err
	}
	return toCourseOutput(course), nil
}

func (i *Interactor) SearchCourses(ctx context.Context, query string) ([]dto.CourseOutput, error) {
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key:       []any{KeySearch, strings.ToLower(query)},
		StaleTime: i.stale.Search,
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			return i.courses.SearchCourses(ctx, query)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) FilterCourses(ctx context.Context, input dto.FilterInput) ([]dto.CourseOutput, error) {
	criteria := toCriteria(input)
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key:       []any{KeyFiltered, criteria},
		StaleTime: i.stale.Catalog,
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			return i.courses.FilterCourses(ctx, criteria)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) GetCoursesByCategory(ctx context.Context, category string) ([]dto.CourseOutput, error) {
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key:       []any{KeyByCategory, strings.ToLower(category)},
		StaleTime: i.stale.Catalog,
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			return i.courses.GetCoursesByCategory(ctx, category)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) GetRecommendedCourses(ctx context.Context, userID string) ([]dto.CourseOutput, error) {
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key:       []any{KeyRecommended, userID},
		StaleTime: i.stale.Recommend,
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			return i.courses.GetRecommendedCourses(ctx, userID)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) GetEnrolledCourses(ctx context.Context) ([]dto.CourseOutput, error) {
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key: []any{KeyEnrolled},
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			user, err := i.currentUser(ctx)
			if err != nil {
				return nil, err
			}
			return i.courses.GetCoursesByIDs(ctx, user.EnrolledCourses)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) GetCompletedCourses(ctx context.Context) ([]dto.CourseOutput, error) {
	courses, err := querycache.Fetch(ctx, i.cache, querycache.Query[[]domain.Course]{
		Key: []any{KeyCompleted},
		Fetch: func(ctx context.Context) ([]domain.Course, error) {
			user, err := i.currentUser(ctx)
			if err != nil {
				return nil, err
			}
			return i.courses.GetCoursesByIDs(ctx, user.CompletedCourses)
		},
	})
	if err != nil {
		return nil, err
	}
	return toCourseOutputs(courses), nil
}

func (i *Interactor) Categories(ctx context.Context) ([]string, error) {
	return querycache.Fetch(ctx, i.cache, querycache.Query[[]string]{
		Key:       []any{KeyCategories},
		StaleTime: i.stale.Catalog,
		Fetch:     i.courses.Categories,
	})
}

// EnrollInCourse records the enrollment on the local profile overlay and
// logs an enrolled activity. Reads touched by the enrollment are invalidated
// so the next read observes it.
func (i *Interactor) EnrollInCourse(ctx context.Context, input dto.EnrollInput) (dto.EnrollOutput, error) {
	user, err := i.currentUser(ctx)
	if err != nil {
		return dto.EnrollOutput{}, err
	}
	course, err := i.courses.EnrollInCourse(ctx, input.CourseID)
	if err != nil {
		return dto.EnrollOutput{}, err
	}
	if err := i.users.RecordEnrollment(ctx, user.ID, course.ID); err != nil {
		return dto.EnrollOutput{}, err
	}
	activity, err := i.activities.LogActivity(ctx, domain.Activity{
		Type:        domain.ActivityEnrolled,
		CourseID:    course.ID,
		CourseTitle: course.Title,
		UserID:      user.ID,
	})
	if err != nil {
		return dto.EnrollOutput{}, err
	}
	for _, key := range []string{KeyCurrentUser, KeyEnrolled, KeyRecentActivities, KeyUserStats} {
		i.cache.Invalidate(key)
	}
	i.log.Info("enrolled in course", "course_id", course.ID, "user_id", user.ID, "email", input.Data.Personal.Email)
	return dto.EnrollOutput{CourseID: course.ID, CourseTitle: course.Title, UserID: user.ID, ActivityID: activity.ID}, nil
}

func (i *Interactor) GetRecentActivities(ctx context.Context, userID string) ([]dto.ActivityOutput, error) {
	activities, err := i.recentActivities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toActivityOutputs(activities), nil
}

func (i *Interactor) LogActivity(ctx context.Context, input dto.LogActivityInput) (dto.ActivityOutput, error) {
	userID := input.UserID
	if userID == "" {
		user, err := i.currentUser(ctx)
		if err != nil {
			return dto.ActivityOutput{}, err
		}
		userID = user.ID
	}
	logged, err := i.activities.LogActivity(ctx, domain.Activity{
		Type:         domain.ActivityType(input.Type),
		CourseID:     input.CourseID,
		CourseTitle:  input.CourseTitle,
		UserID:       userID,
		Progress:     input.Progress,
		TimeSpent:    input.TimeSpent,
		CredentialID: input.CredentialID,
	})
	if err != nil {
		return dto.ActivityOutput{}, err
	}
	i.cache.Invalidate(KeyRecentActivities, userID)
	i.cache.Invalidate(KeyUserStats, userID)
	return toActivityOutput(logged), nil
}

// Prefetch warms the current user and the catalogue. Failures are logged and
// the first one is returned.
func (i *Interactor) Prefetch(ctx context.Context) error {
	var first error
	if _, err := i.currentUser(ctx); err != nil {
		i.log.Warn("prefetch current user failed", "error", err)
		first = err
	}
	if _, err := i.allCourses(ctx); err != nil {
		i.log.Warn("prefetch courses failed", "error", err)
		if first == nil {
			first = err
		}
	}
	return first
}
