package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	catalogout "learnify/internal/modules/catalog/adapter/out"
	"learnify/internal/modules/catalog/domain"
	"learnify/internal/platform/kv"
)

func TestEmbeddedFixturesLoad(t *testing.T) {
	t.Parallel()
	store, err := catalogout.NewYAMLFixtureStore("")
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	courses, _ := store.Courses(context.Background())
	if _, ok := domain.GetCourseByID(courses, "c1"); !ok {
		t.Fatalf("expected fixture course c1")
	}
	user, _ := store.CurrentUser(context.Background())
	if user.ID == "" || len(user.EnrolledCourses) == 0 {
		t.Fatalf("expected populated fixture user, got %+v", user)
	}
	activities, _ := store.Activities(context.Background())
	if len(activities) == 0 || activities[0].Date.IsZero() {
		t.Fatalf("expected dated fixture activities, got %+v", activities)
	}
}

func TestFixtureOverrideReplacesSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "- id: x1\n  title: Only Course\n  level: beginner\n  price: 0\n  category: Misc\n"
	if err := os.WriteFile(filepath.Join(dir, "courses.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	store, err := catalogout.NewYAMLFixtureStore(dir)
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	courses, _ := store.Courses(context.Background())
	if len(courses) != 1 || courses[0].ID != "x1" {
		t.Fatalf("expected override course, got %+v", courses)
	}
	if user, _ := store.CurrentUser(context.Background()); user.ID == "" {
		t.Fatalf("users must still come from embedded fixtures")
	}
}

func TestFixtureOverrideRejectsInvalidCourse(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := "- id: x1\n  title: Bad\n  level: expert\n"
	if err := os.WriteFile(filepath.Join(dir, "courses.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := catalogout.NewYAMLFixtureStore(dir); err == nil {
		t.Fatalf("expected invalid level to be rejected")
	}
}

func TestProfileOverlayRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := catalogout.NewKVProfileStore(kv.NewMemoryStore())
	empty, err := store.LoadOverlay(ctx, "u1")
	if err != nil || empty.Name != nil {
		t.Fatalf("expected empty overlay, got %+v err=%v", empty, err)
	}
	name := "New Name"
	overlay := domain.ProfileOverlay{Name: &name, Enrolled: []string{"c1"}}
	if err := store.SaveOverlay(ctx, "u1", overlay); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadOverlay(ctx, "u1")
	if err != nil || got.Name == nil || *got.Name != name || len(got.Enrolled) != 1 {
		t.Fatalf("unexpected overlay %+v err=%v", got, err)
	}
}

func TestActivityLogAppendsPerUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	log := catalogout.NewKVActivityLog(kv.NewMemoryStore())
	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_ = log.Append(ctx, domain.Activity{ID: "a", UserID: "u1", Type: domain.ActivityEnrolled, Date: at})
	_ = log.Append(ctx, domain.Activity{ID: "b", UserID: "u1", Type: domain.ActivityStarted, Date: at})
	_ = log.Append(ctx, domain.Activity{ID: "c", UserID: "u2", Type: domain.ActivityStarted, Date: at})
	got, err := log.List(ctx, "u1")
	if err != nil || len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("unexpected log %+v err=%v", got, err)
	}
}
