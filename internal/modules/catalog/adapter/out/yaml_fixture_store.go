package out

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"learnify/internal/modules/catalog/domain"
	catalogout "learnify/internal/modules/catalog/port/out"
)

//go:embed fixtures/*.yaml
var embedded embed.FS

type usersFile struct {
	CurrentUser domain.User `yaml:"current_user"`
}

// YAMLFixtureStore serves the read-only catalogue. Files found in the
// override directory replace the embedded ones one by one.
type YAMLFixtureStore struct {
	user       domain.User
	courses    []domain.Course
	activities []domain.Activity
}

func NewYAMLFixtureStore(overrideDir string) (catalogout.FixtureStore, error) {
	var override fs.FS
	if overrideDir != "" {
		override = os.DirFS(overrideDir)
	}
	users := usersFile{}
	if err := decodeFixture(override, "users.yaml", &users); err != nil {
		return nil, err
	}
	courses := []domain.Course{}
	if err := decodeFixture(override, "courses.yaml", &courses); err != nil {
		return nil, err
	}
	for _, c := range courses {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("courses.yaml: %w", err)
		}
	}
	activities := []domain.Activity{}
	if err := decodeFixture(override, "activities.yaml", &activities); err != nil {
		return nil, err
	}
	if users.CurrentUser.ID == "" {
		return nil, fmt.Errorf("users.yaml: current_user.id is required")
	}
	return &YAMLFixtureStore{user: users.CurrentUser, courses: courses, activities: activities}, nil
}

func decodeFixture(override fs.FS, name string, target any) error {
	payload, err := readFixture(override, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func readFixture(override fs.FS, name string) ([]byte, error) {
	if override != nil {
		payload, err := fs.ReadFile(override, name)
		if err == nil {
			return payload, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	payload, err := embedded.ReadFile("fixtures/" + name)
	if err != nil {
		return nil, fmt.Errorf("read embedded %s: %w", name, err)
	}
	return payload, nil
}

func (s *YAMLFixtureStore) CurrentUser(_ context.Context) (domain.User, error) {
	u := s.user
	u.EnrolledCourses = slices.Clone(s.user.EnrolledCourses)
	u.CompletedCourses = slices.Clone(s.user.CompletedCourses)
	u.FavoriteCategories = slices.Clone(s.user.FavoriteCategories)
	return u, nil
}

func (s *YAMLFixtureStore) Courses(_ context.Context) ([]domain.Course, error) {
	return slices.Clone(s.courses), nil
}

func (s *YAMLFixtureStore) Activities(_ context.Context) ([]domain.Activity, error) {
	return slices.Clone(s.activities), nil
}
