package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	resumeout "learnify/internal/modules/resume/adapter/out"
	"learnify/internal/modules/resume/dto"
	resumein "learnify/internal/modules/resume/port/in"
	"learnify/internal/modules/resume/service"
	"learnify/internal/modules/resume/usecase"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/kv"
	"learnify/internal/platform/markdown"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (s *seqIDs) New() string {
	s.n++
	return fmt.Sprintf("sec-%d", s.n)
}

type fakeOwners struct{ err error }

func (f fakeOwners) CurrentOwner(context.Context) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "Marina Alves", "marina@example.com", nil
}

func newUsecase(store kv.Store, owners fakeOwners) resumein.Usecase {
	clk := fixedClock{now: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)}
	svc := service.NewResumeService(resumeout.NewKVResumeStore(store), owners, clk, &seqIDs{}, nil)
	return usecase.NewInteractor(svc)
}

func TestNewResumeIsSeededFromCurrentUser(t *testing.T) {
	t.Parallel()
	uc := newUsecase(kv.NewMemoryStore(), fakeOwners{})
	r, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if r.Personal.FullName != "Marina Alves" || r.Personal.Email != "marina@example.com" || len(r.Sections) != 0 {
		t.Fatalf("unexpected seed %+v", r)
	}

	r, err = newUsecase(kv.NewMemoryStore(), fakeOwners{err: apperrors.ErrNotFound}).Get(context.Background())
	if err != nil || r.Personal.FullName != "" {
		t.Fatalf("owner failure must yield an empty résumé, got %+v err=%v", r, err)
	}
}

func TestSectionLifecyclePersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	store, err := kv.NewSQLiteStore(dir + "/learnify.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	uc := newUsecase(store, fakeOwners{})

	edu, err := uc.AddSection(ctx, "Education")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if edu.ID != "sec-1" || edu.Kind != "education" {
		t.Fatalf("unexpected section %+v", edu)
	}
	skill, _ := uc.AddSection(ctx, "skill")
	if _, err := uc.UpdateSection(ctx, dto.UpdateSectionInput{SectionID: edu.ID, Fields: map[string]string{"institution": "USP", "degree": "BSc"}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := uc.UpdateSection(ctx, dto.UpdateSectionInput{SectionID: skill.ID, Fields: map[string]string{"skills": "Go, Rust"}}); err != nil {
		t.Fatalf("update skill: %v", err)
	}
	if _, err := uc.DeleteSection(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.AddSection(ctx, "hobby"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid kind, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := kv.NewSQLiteStore(dir + "/learnify.db")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	uc = newUsecase(reopened, fakeOwners{})
	r, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(r.Sections) != 2 || r.Sections[0].Title != "BSc" || r.Sections[1].Fields[1].Value != "Go, Rust" {
		t.Fatalf("unexpected persisted résumé %+v", r.Sections)
	}
	r, err = uc.DeleteSection(ctx, edu.ID)
	if err != nil || len(r.Sections) != 1 || r.Sections[0].ID != skill.ID {
		t.Fatalf("unexpected after delete %+v err=%v", r.Sections, err)
	}
}

func TestUpdateSectionRejectsForeignField(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore(), fakeOwners{})
	exp, _ := uc.AddSection(ctx, "experience")
	if _, err := uc.UpdateSection(ctx, dto.UpdateSectionInput{SectionID: exp.ID, Fields: map[string]string{"institution": "USP"}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	r, _ := uc.Get(ctx)
	if r.Sections[0].Title != "(untitled experience)" {
		t.Fatalf("failed update must not be saved, got %+v", r.Sections[0])
	}
}

func TestExportWritesFrontmatter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(kv.NewMemoryStore(), fakeOwners{})
	if _, err := uc.UpdatePersonal(ctx, dto.PersonalInput{FullName: "Marina Alves", Email: "bad-email"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if _, err := uc.UpdatePersonal(ctx, dto.PersonalInput{FullName: "Marina Alves", Email: "marina@example.com", Location: "Campinas"}); err != nil {
		t.Fatalf("update personal: %v", err)
	}
	exp, _ := uc.AddSection(ctx, "experience")
	_, _ = uc.UpdateSection(ctx, dto.UpdateSectionInput{SectionID: exp.ID, Fields: map[string]string{"company": "TechStart", "position": "Engineer"}})

	out, err := uc.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(out)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["name"] != "Marina Alves" || meta["location"] != "Campinas" || meta["updated_at"] != "2026-01-15T09:00:00Z" {
		t.Fatalf("unexpected meta %v", meta)
	}
	if !strings.Contains(body, "## Experience") || !strings.Contains(body, "### Engineer") {
		t.Fatalf("unexpected body %q", body)
	}
}
