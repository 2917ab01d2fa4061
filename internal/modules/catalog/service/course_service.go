package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
)

type CourseService struct {
	fixtures        catalogout.FixtureStore
	sleeper         clock.Sleeper
	enrollLatency   time.Duration
	minSearchLength int
	recommendLimit  int
}

func NewCourseService(fixtures catalogout.FixtureStore, sleeper clock.Sleeper, enrollLatency time.Duration, minSearchLength, recommendLimit int) *CourseService {
	return &CourseService{
		fixtures:        fixtures,
		sleeper:         sleeper,
		enrollLatency:   enrollLatency,
		minSearchLength: minSearchLength,
		recommendLimit:  recommendLimit,
	}
}

func (s *CourseService) courses(ctx context.Context) ([]domain.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fixtures.Courses(ctx)
}

func (s *CourseService) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return s.courses(ctx)
}

func (s *CourseService) GetCourseByID(ctx context.Context, id string) (domain.Course, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return domain.Course{}, err
	}
	course, ok := domain.GetCourseByID(courses, id)
	if !ok {
		return domain.Course{}, fmt.Errorf("course %s: %w", id, apperrors.ErrNotFound)
	}
	return course, nil
}

// SearchCourses returns nothing for queries shorter than the configured
// minimum length.
func (s *CourseService) SearchCourses(ctx context.Context, query string) ([]domain.Course, error) {
	if utf8.RuneCountInString(query) < s.minSearchLength {
		return []domain.Course{}, nil
	}
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SearchCourses(courses, query), nil
}

func (s *CourseService) FilterCourses(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Course, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterCourses(courses, criteria), nil
}

func (s *CourseService) GetCoursesByCategory(ctx context.Context, category string) ([]domain.Course, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CoursesByCategory(courses, category), nil
}

func (s *CourseService) GetRecommendedCourses(ctx context.Context, _ string) ([]domain.Course, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.RecommendCourses(courses, s.recommendLimit), nil
}

func (s *CourseService) GetCoursesByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CoursesByIDs(courses, ids), nil
}

func (s *CourseService) Categories(ctx context.Context) ([]string, error) {
	courses, err := s.courses(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(courses), nil
}

// EnrollInCourse waits the simulated latency and confirms the course
// exists. The caller records the enrollment.
func (s *CourseService) EnrollInCourse(ctx context.Context, courseID string) (domain.Course, error) {
	if strings.TrimSpace(courseID) == "" {
		return domain.Course{}, fmt.Errorf("course id is required: %w", apperrors.ErrInvalidInput)
	}
	if err := s.sleeper.Sleep(ctx, s.enrollLatency); err != nil {
		return domain.Course{}, err
	}
	return s.GetCourseByID(ctx, courseID)
}
