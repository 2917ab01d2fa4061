package service

import (
	"context"
	"strings"
	"sync"

	"learnify/internal/modules/appstate/domain"
	appstateout "learnify/internal/modules/appstate/port/out"
	apperrors "learnify/internal/platform/errors"
	"learnify/internal/platform/logger"
)

// AppStateService owns the process wide application state. Preferences are
// loaded on first use and written back after every change to them.
type AppStateService struct {
	store appstateout.PreferencesStore
	users appstateout.UserDirectory
	log   *logger.Logger

	mu     sync.Mutex
	loaded bool
	state  domain.State
}

func NewAppStateService(store appstateout.PreferencesStore, users appstateout.UserDirectory, log *logger.Logger) *AppStateService {
	if log == nil {
		log = logger.Nop()
	}
	return &AppStateService{store: store, users: users, log: log}
}

func (s *AppStateService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	prefs, ok, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("discarding unreadable preferences", "error", err)
		ok = false
	}
	if !ok {
		prefs = domain.DefaultPreferences()
	}
	s.state = domain.NewState(prefs)
	s.loaded = true
	return nil
}

func (s *AppStateService) snapshot() domain.State {
	out := s.state
	out.FavoriteCourses = append([]string{}, s.state.FavoriteCourses...)
	out.Progress = make(map[string]int, len(s.state.Progress))
	for k, v := range s.state.Progress {
		out.Progress[k] = v
	}
	return out
}

func (s *AppStateService) State(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, err
	}
	return s.snapshot(), nil
}

// update applies fn and persists preferences when persist is set. The
// in-memory state is only replaced after a successful save.
func (s *AppStateService) update(ctx context.Context, persist bool, fn func(*domain.State) error) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.State{}, err
	}
	next := s.snapshot()
	if err := fn(&next); err != nil {
		return domain.State{}, err
	}
	if persist {
		if err := s.store.Save(ctx, next.Preferences); err != nil {
			return domain.State{}, err
		}
	}
	s.state = next
	return s.snapshot(), nil
}

// Login accepts any address containing @ with a non-empty password and
// signs in as the catalogue's current user.
func (s *AppStateService) Login(ctx context.Context, email, password string) (domain.State, error) {
	if !strings.Contains(email, "@") || password == "" {
		return domain.State{}, apperrors.ErrInvalidCredentials
	}
	id, name, err := s.users.CurrentUser(ctx)
	if err != nil {
		return domain.State{}, err
	}
	streak, err := s.users.StudyStreak(ctx, id)
	if err != nil {
		s.log.Warn("keeping stored study streak", "user_id", id, "error", err)
		return s.update(ctx, false, func(st *domain.State) error {
			st.SetUser(id, name)
			return nil
		})
	}
	return s.update(ctx, true, func(st *domain.State) error {
		st.SetUser(id, name)
		return st.SetStudyStreak(streak)
	})
}

func (s *AppStateService) SetStudyStreak(ctx context.Context, days int) (domain.State, error) {
	return s.update(ctx, true, func(st *domain.State) error {
		return st.SetStudyStreak(days)
	})
}

// SyncStudyStreak recomputes the streak of the catalogue's current user and
// stores it.
func (s *AppStateService) SyncStudyStreak(ctx context.Context) (domain.State, error) {
	id, _, err := s.users.CurrentUser(ctx)
	if err != nil {
		return domain.State{}, err
	}
	streak, err := s.users.StudyStreak(ctx, id)
	if err != nil {
		return domain.State{}, err
	}
	return s.SetStudyStreak(ctx, streak)
}

func (s *AppStateService) Logout(ctx context.Context) (domain.State, error) {
	return s.update(ctx, false, func(st *domain.State) error {
		st.Logout()
		return nil
	})
}

func (s *AppStateService) ToggleFavorite(ctx context.Context, courseID string) (domain.State, bool, error) {
	if strings.TrimSpace(courseID) == "" {
		return domain.State{}, false, apperrors.ErrInvalidInput
	}
	favorite := false
	st, err := s.update(ctx, true, func(st *domain.State) error {
		favorite = st.ToggleFavorite(courseID)
		return nil
	})
	return st, favorite, err
}

func (s *AppStateService) SetTheme(ctx context.Context, theme domain.Theme) (domain.State, error) {
	if err := theme.Validate(); err != nil {
		return domain.State{}, err
	}
	return s.update(ctx, true, func(st *domain.State) error {
		st.Theme = theme
		return nil
	})
}

func (s *AppStateService) SetLanguage(ctx context.Context, language domain.Language) (domain.State, error) {
	if err := language.Validate(); err != nil {
		return domain.State{}, err
	}
	return s.update(ctx, true, func(st *domain.State) error {
		st.Language = language
		return nil
	})
}

func (s *AppStateService) SetSidebarCollapsed(ctx context.Context, collapsed bool) (domain.State, error) {
	return s.update(ctx, true, func(st *domain.State) error {
		st.SidebarCollapsed = collapsed
		return nil
	})
}

func (s *AppStateService) IncrementStudyTime(ctx context.Context, minutes int) (domain.State, error) {
	return s.update(ctx, true, func(st *domain.State) error {
		return st.IncrementStudyTime(minutes)
	})
}

func (s *AppStateService) MarkEnrolled(ctx context.Context, courseID string) (domain.State, error) {
	return s.update(ctx, false, func(st *domain.State) error {
		st.MarkEnrolled(courseID)
		return nil
	})
}

func (s *AppStateService) CompleteCourse(ctx context.Context, courseID string) (domain.State, error) {
	return s.update(ctx, false, func(st *domain.State) error {
		st.CompleteCourse(courseID)
		return nil
	})
}
