package domain_test

import (
	"errors"
	"testing"

	"learnify/internal/modules/appstate/domain"
	apperrors "learnify/internal/platform/errors"
)

func TestFavoritesToggle(t *testing.T) {
	t.Parallel()
	s := domain.NewState(domain.DefaultPreferences())
	if !s.ToggleFavorite("c1") || !s.ToggleFavorite("c2") {
		t.Fatalf("expected courses to become favourites")
	}
	if s.ToggleFavorite("c1") {
		t.Fatalf("expected c1 to be removed")
	}
	if len(s.FavoriteCourses) != 1 || s.FavoriteCourses[0] != "c2" {
		t.Fatalf("unexpected favourites %v", s.FavoriteCourses)
	}
}

func TestNormalizeRepairsUnknownValues(t *testing.T) {
	t.Parallel()
	p := domain.Preferences{Theme: "neon", Language: "fr", TotalStudyTime: -3}.Normalize()
	if p.Theme != domain.ThemeLight || p.Language != domain.LanguagePT || p.TotalStudyTime != 0 {
		t.Fatalf("unexpected normalised preferences %+v", p)
	}
}

func TestLogoutKeepsPreferences(t *testing.T) {
	t.Parallel()
	s := domain.NewState(domain.Preferences{Theme: domain.ThemeDark, Language: domain.LanguageEN})
	s.SetUser("u1", "Marina")
	s.MarkEnrolled("c1")
	s.CompleteCourse("c2")
	if s.Progress["c1"] != 0 || s.Progress["c2"] != 100 {
		t.Fatalf("unexpected progress %v", s.Progress)
	}
	s.Logout()
	if s.Authenticated || len(s.Progress) != 0 || s.Theme != domain.ThemeDark {
		t.Fatalf("unexpected state after logout %+v", s)
	}
	if err := s.IncrementStudyTime(-1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected negative minutes to be rejected, got %v", err)
	}
}
