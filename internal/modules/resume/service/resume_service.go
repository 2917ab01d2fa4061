package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"learnify/internal/modules/resume/domain"
	resumeout "learnify/internal/modules/resume/port/out"
	"learnify/internal/platform/clock"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/id"
	"learnify/internal/platform/logger"
	"learnify/internal/platform/markdown"
)

type ResumeService struct {
	store  resumeout.ResumeStore
	owners resumeout.OwnerDirectory
	clock  clock.Clock
	ids    id.Generator
	log    *logger.Logger

	mu sync.Mutex
}

func NewResumeService(store resumeout.ResumeStore, owners resumeout.OwnerDirectory, clk clock.Clock, ids id.Generator, log *logger.Logger) *ResumeService {
	if log == nil {
		log = logger.Nop()
	}
	return &ResumeService{store: store, owners: owners, clock: clk, ids: ids, log: log}
}

func (s *ResumeService) Get(ctx context.Context) (domain.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load returns the stored résumé, or a fresh one seeded from the current
// user when nothing was saved yet.
func (s *ResumeService) load(ctx context.Context) (domain.Resume, error) {
	resume, ok, err := s.store.Load(ctx)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("load resume: %w", err)
	}
	if ok {
		return resume, nil
	}
	resume = domain.Resume{Sections: []domain.Section{}}
	if s.owners != nil {
		name, email, err := s.owners.CurrentOwner(ctx)
		if err != nil {
			s.log.Warn("resume owner lookup failed", "error", err)
		} else {
			resume.Personal.FullName = name
			resume.Personal.Email = email
		}
	}
	return resume, nil
}

func (s *ResumeService) mutate(ctx context.Context, fn func(*domain.Resume) error) (domain.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resume, err := s.load(ctx)
	if err != nil {
		return domain.Resume{}, err
	}
	resume.Sections = append([]domain.Section{}, resume.Sections...)
	if err := fn(&resume); err != nil {
		return domain.Resume{}, err
	}
	resume.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, resume); err != nil {
		return domain.Resume{}, fmt.Errorf("save resume: %w", err)
	}
	return resume, nil
}

func (s *ResumeService) UpdatePersonal(ctx context.Context, info domain.PersonalInfo) (domain.Resume, error) {
	if email := strings.TrimSpace(info.Email); email != "" && !strings.Contains(email, "@") {
		return domain.Resume{}, fmt.Errorf("email %q: %w", email, apperrors.ErrInvalidInput)
	}
	return s.mutate(ctx, func(r *domain.Resume) error {
		r.Personal = info
		return nil
	})
}

func (s *ResumeService) AddSection(ctx context.Context, kind domain.SectionKind) (domain.Resume, domain.Section, error) {
	section, err := domain.NewSection(s.ids.New(), kind)
	if err != nil {
		return domain.Resume{}, domain.Section{}, err
	}
	resume, err := s.mutate(ctx, func(r *domain.Resume) error {
		r.Sections = append(r.Sections, section)
		return nil
	})
	if err != nil {
		return domain.Resume{}, domain.Section{}, err
	}
	s.log.Debug("resume section added", "section_id", section.ID, "kind", string(kind))
	return resume, section, nil
}

func (s *ResumeService) UpdateSection(ctx context.Context, sectionID string, fields map[string]string) (domain.Resume, error) {
	return s.mutate(ctx, func(r *domain.Resume) error {
		idx := r.SectionIndex(sectionID)
		if idx < 0 {
			return fmt.Errorf("section %s: %w", sectionID, apperrors.ErrNotFound)
		}
		section := cloneSection(r.Sections[idx])
		if err := section.Apply(fields); err != nil {
			return err
		}
		r.Sections[idx] = section
		return nil
	})
}

func (s *ResumeService) DeleteSection(ctx context.Context, sectionID string) (domain.Resume, error) {
	return s.mutate(ctx, func(r *domain.Resume) error {
		idx := r.SectionIndex(sectionID)
		if idx < 0 {
			return fmt.Errorf("section %s: %w", sectionID, apperrors.ErrNotFound)
		}
		r.Sections = append(r.Sections[:idx], r.Sections[idx+1:]...)
		return nil
	})
}

// Export renders the résumé as markdown with a YAML frontmatter header.
func (s *ResumeService) Export(ctx context.Context) (string, error) {
	resume, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	counts := map[string]int{}
	for _, section := range resume.Sections {
		counts[string(section.Kind)]++
	}
	header := markdown.Header{
		{Key: "name", Value: resume.Personal.FullName},
		{Key: "email", Value: resume.Personal.Email},
		{Key: "phone", Value: resume.Personal.Phone},
		{Key: "location", Value: resume.Personal.Location},
		{Key: "sections", Value: counts},
	}
	if !resume.UpdatedAt.IsZero() {
		header = append(header, markdown.Field{Key: "updated_at", Value: resume.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z")})
	}
	return markdown.Compose(header, resume.Markdown())
}

func cloneSection(in domain.Section) domain.Section {
	out := in
	if in.Education != nil {
		e := *in.Education
		out.Education = &e
	}
	if in.Experience != nil {
		e := *in.Experience
		out.Experience = &e
	}
	if in.Skill != nil {
		sk := *in.Skill
		sk.Skills = append([]string{}, in.Skill.Skills...)
		out.Skill = &sk
	}
	return out
}
