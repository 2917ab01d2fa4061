package domain_test

import (
	"testing"
	"time"

	"learnify/internal/modules/catalog/domain"
)

func TestOverlayMergeAndApply(t *testing.T) {
	t.Parallel()
	user := domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", EnrolledCourses: []string{"c2"}}
	name := "Ana Clara"
	overlay := domain.ProfileOverlay{}.Merge(domain.ProfilePatch{Name: &name})
	if !overlay.AddEnrolled("c1") || overlay.AddEnrolled("c1") {
		t.Fatalf("expected c1 to be added once")
	}
	got := overlay.Apply(user)
	if got.Name != "Ana Clara" || got.Email != "ana@example.com" {
		t.Fatalf("unexpected merged user %+v", got)
	}
	if len(got.EnrolledCourses) != 2 || got.EnrolledCourses[1] != "c1" {
		t.Fatalf("expected enrolled [c2 c1], got %v", got.EnrolledCourses)
	}
	if len(user.EnrolledCourses) != 1 {
		t.Fatalf("fixture user must not be mutated")
	}
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(d int) domain.Activity {
		return domain.Activity{Date: time.Date(2026, 3, d, 9, 0, 0, 0, time.UTC)}
	}
	if got := domain.Streak([]domain.Activity{day(10), day(9), day(8), day(6)}, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
	if got := domain.Streak([]domain.Activity{day(9), day(8)}, now); got != 2 {
		t.Fatalf("expected streak to count from yesterday, got %d", got)
	}
	if got := domain.Streak([]domain.Activity{day(7)}, now); got != 0 {
		t.Fatalf("expected broken streak, got %d", got)
	}
}
