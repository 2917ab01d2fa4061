package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogout "learnify/internal/modules/catalog/adapter/out"
	"learnify/internal/modules/catalog/domain"
	catalogport "learnify/internal/modules/catalog/port/out"
	"learnify/internal/modules/catalog/service"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/kv"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "act-" + string(rune('0'+s.n))
}

type recordingSleeper struct{ slept []time.Duration }

func (r *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	r.slept = append(r.slept, d)
	return ctx.Err()
}

func fixtures(t *testing.T) *fixtureBundle {
	t.Helper()
	store, err := catalogout.NewYAMLFixtureStore("")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	backing := kv.NewMemoryStore()
	return &fixtureBundle{
		store:    store,
		profiles: catalogout.NewKVProfileStore(backing),
		log:      catalogout.NewKVActivityLog(backing),
	}
}

type fixtureBundle struct {
	store    catalogport.FixtureStore
	profiles catalogport.ProfileStore
	log      catalogport.ActivityLog
}

func TestGetCourseByIDReturnsNotFound(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewCourseService(f.store, clock.NoSleep{}, 0, 3, 4)
	if _, err := svc.GetCourseByID(context.Background(), "c1"); err != nil {
		t.Fatalf("expected c1, got %v", err)
	}
	if _, err := svc.GetCourseByID(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchCoursesIgnoresShortQueries(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewCourseService(f.store, clock.NoSleep{}, 0, 3, 4)
	short, err := svc.SearchCourses(context.Background(), "go")
	if err != nil || len(short) != 0 {
		t.Fatalf("expected empty result for short query, got %d err=%v", len(short), err)
	}
	found, err := svc.SearchCourses(context.Background(), "Go Fund")
	if err != nil || len(found) != 1 || found[0].ID != "c1" {
		t.Fatalf("expected c1, got %+v err=%v", found, err)
	}
	spaced, err := svc.SearchCourses(context.Background(), " go")
	if err != nil || len(spaced) == 0 {
		t.Fatalf("a three rune query with a leading space must be searched, got %d err=%v", len(spaced), err)
	}
}

func TestRecommendedCoursesUseConfiguredLimit(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewCourseService(f.store, clock.NoSleep{}, 0, 3, 2)
	got, err := svc.GetRecommendedCourses(context.Background(), "u1")
	if err != nil || len(got) != 2 {
		t.Fatalf("expected two recommendations, got %d err=%v", len(got), err)
	}
	if got[0].Rating < got[1].Rating {
		t.Fatalf("recommendations must be ordered by rating")
	}
}

func TestEnrollInCourseWaitsSimulatedLatency(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	sleeper := &recordingSleeper{}
	svc := service.NewCourseService(f.store, sleeper, 2*time.Second, 3, 4)
	course, err := svc.EnrollInCourse(context.Background(), "c1")
	if err != nil || course.ID != "c1" {
		t.Fatalf("enroll: %+v err=%v", course, err)
	}
	if len(sleeper.slept) != 1 || sleeper.slept[0] != 2*time.Second {
		t.Fatalf("expected one 2s delay, got %v", sleeper.slept)
	}
	if _, err := svc.EnrollInCourse(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateUserProfileMergesOverlay(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewUserService(f.store, f.profiles, clock.NoSleep{}, time.Second)
	name := "Marina Costa"
	updated, err := svc.UpdateUserProfile(context.Background(), "u1", domain.ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name || updated.Email == "" {
		t.Fatalf("expected merged profile, got %+v", updated)
	}
	current, _ := svc.GetCurrentUser(context.Background())
	if current.Name != name {
		t.Fatalf("expected persisted name, got %q", current.Name)
	}
	if _, err := svc.UpdateUserProfile(context.Background(), "someone-else", domain.ProfilePatch{Name: &name}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	bad := "not-an-email"
	if _, err := svc.UpdateUserProfile(context.Background(), "u1", domain.ProfilePatch{Email: &bad}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCancelledProfileUpdateDoesNotWrite(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewUserService(f.store, f.profiles, clock.SystemClock{}, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	name := "Ignored"
	if _, err := svc.UpdateUserProfile(ctx, "u1", domain.ProfilePatch{Name: &name}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	overlay, _ := f.profiles.LoadOverlay(context.Background(), "u1")
	if overlay.Name != nil {
		t.Fatalf("cancelled update must not write, got %+v", overlay)
	}
}

func TestRecordEnrollmentShowsInCurrentUser(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	svc := service.NewUserService(f.store, f.profiles, clock.NoSleep{}, 0)
	if err := svc.RecordEnrollment(context.Background(), "u1", "c1"); err != nil {
		t.Fatalf("record enrollment: %v", err)
	}
	user, _ := svc.GetCurrentUser(context.Background())
	found := false
	for _, id := range user.EnrolledCourses {
		found = found || id == "c1"
	}
	if !found {
		t.Fatalf("expected c1 in enrolled courses, got %v", user.EnrolledCourses)
	}
}

func TestActivitiesMergeNewestFirst(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc := service.NewActivityService(fixedClock{now: now}, &seqID{}, f.store, f.log)
	logged, err := svc.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityEnrolled, UserID: "u1", CourseID: "c1", CourseTitle: "Go Fundamentals"})
	if err != nil {
		t.Fatalf("log activity: %v", err)
	}
	if logged.ID == "" || !logged.Date.Equal(now) {
		t.Fatalf("expected id and timestamp, got %+v", logged)
	}
	recent, err := svc.GetRecentActivities(context.Background(), "u1")
	if err != nil || len(recent) < 2 {
		t.Fatalf("recent activities: %d err=%v", len(recent), err)
	}
	if recent[0].ID != logged.ID {
		t.Fatalf("expected newest activity first, got %s", recent[0].ID)
	}
	if _, err := svc.LogActivity(context.Background(), domain.Activity{Type: "bogus", UserID: "u1", CourseID: "c1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}
}

func TestUserStatsCountStreak(t *testing.T) {
	t.Parallel()
	f := fixtures(t)
	users := service.NewUserService(f.store, f.profiles, clock.NoSleep{}, 0)
	now := time.Date(2026, 1, 14, 20, 0, 0, 0, time.UTC)
	activities, _ := f.store.Activities(context.Background())
	stats, err := users.GetUserStats(context.Background(), "u1", activities, now)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CoursesCompleted != 2 || stats.CertificatesEarned != 2 || stats.CurrentStreak != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
