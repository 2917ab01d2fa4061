package domain

import (
	"fmt"
	"slices"

	apperrors "learnify/internal/platform/errors"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return nil
	default:
		return fmt.Errorf("theme %q: %w", string(t), apperrors.ErrInvalidInput)
	}
}

type Language string

const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
)

func (l Language) Validate() error {
	switch l {
	case LanguagePT, LanguageEN:
		return nil
	default:
		return fmt.Errorf("language %q: %w", string(l), apperrors.ErrInvalidInput)
	}
}

// Preferences is the subset of state that survives restarts.
type Preferences struct {
	Theme            Theme    `json:"theme"`
	Language         Language `json:"language"`
	SidebarCollapsed bool     `json:"sidebarCollapsed"`
	FavoriteCourses  []string `json:"favoriteCourses"`
	TotalStudyTime   int      `json:"totalStudyTime"`
	StudyStreak      int      `json:"studyStreak"`
}

func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: LanguagePT, FavoriteCourses: []string{}}
}

// Normalize replaces unknown enum values with defaults so a hand edited
// record never breaks startup.
func (p Preferences) Normalize() Preferences {
	def := DefaultPreferences()
	if p.Theme.Validate() != nil {
		p.Theme = def.Theme
	}
	if p.Language.Validate() != nil {
		p.Language = def.Language
	}
	if p.FavoriteCourses == nil {
		p.FavoriteCourses = []string{}
	}
	if p.TotalStudyTime < 0 {
		p.TotalStudyTime = 0
	}
	if p.StudyStreak < 0 {
		p.StudyStreak = 0
	}
	return p
}

type State struct {
	Preferences
	Authenticated   bool
	CurrentUserID   string
	CurrentUserName string
	Progress        map[string]int
}

func NewState(prefs Preferences) State {
	return State{Preferences: prefs.Normalize(), Progress: map[string]int{}}
}

func (s *State) SetUser(id, name string) {
	s.CurrentUserID = id
	s.CurrentUserName = name
	s.Authenticated = true
}

// Logout clears the session but keeps preferences.
func (s *State) Logout() {
	s.Authenticated = false
	s.CurrentUserID = ""
	s.CurrentUserName = ""
	s.Progress = map[string]int{}
}

// ToggleFavorite reports whether the course is a favourite afterwards.
func (s *State) ToggleFavorite(courseID string) bool {
	if idx := slices.Index(s.FavoriteCourses, courseID); idx >= 0 {
		s.FavoriteCourses = slices.Delete(slices.Clone(s.FavoriteCourses), idx, idx+1)
		return false
	}
	s.FavoriteCourses = append(slices.Clone(s.FavoriteCourses), courseID)
	return true
}

func (s *State) IncrementStudyTime(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("study minutes must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	s.TotalStudyTime += minutes
	return nil
}

// SetStudyStreak records the streak in days, as computed from the activity
// feed.
func (s *State) SetStudyStreak(days int) error {
	if days < 0 {
		return fmt.Errorf("study streak must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	s.StudyStreak = days
	return nil
}

func (s *State) MarkEnrolled(courseID string) {
	s.Progress[courseID] = 0
}

func (s *State) CompleteCourse(courseID string) {
	s.Progress[courseID] = 100
}
