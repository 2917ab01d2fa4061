package bootstrap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	appstateinadapter "learnify/internal/modules/appstate/adapter/in"
	appstateoutadapter "learnify/internal/modules/appstate/adapter/out"
	appstateservice "learnify/internal/modules/appstate/service"
	appstateusecase "learnify/internal/modules/appstate/usecase"
	cataloginadapter "learnify/internal/modules/catalog/adapter/in"
	catalogoutadapter "learnify/internal/modules/catalog/adapter/out"
	catalogservice "learnify/internal/modules/catalog/service"
	catalogusecase "learnify/internal/modules/catalog/usecase"
	enrollmentinadapter "learnify/internal/modules/enrollment/adapter/in"
	enrollmentoutadapter "learnify/internal/modules/enrollment/adapter/out"
	enrollmentservice "learnify/internal/modules/enrollment/service"
	enrollmentusecase "learnify/internal/modules/enrollment/usecase"
	progressinadapter "learnify/internal/modules/progress/adapter/in"
	progressoutadapter "learnify/internal/modules/progress/adapter/out"
	progressservice "learnify/internal/modules/progress/service"
	progressusecase "learnify/internal/modules/progress/usecase"
	resumeinadapter "learnify/internal/modules/resume/adapter/in"
	resumeoutadapter "learnify/internal/modules/resume/adapter/out"
	resumeservice "learnify/internal/modules/resume/service"
	resumeusecase "learnify/internal/modules/resume/usecase"
	"learnify/internal/platform/clock"
	"learnify/internal/platform/config"
	"learnify/internal/platform/id"
	"learnify/internal/platform/kv"
	"learnify/internal/platform/logger"
	"learnify/internal/platform/querycache"
	uiapp "learnify/internal/ui/app"
)

type App struct {
	CatalogCLI    cataloginadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler
	EnrollmentCLI enrollmentinadapter.CLIHandler
	AppStateCLI   appstateinadapter.CLIHandler
	ResumeCLI     resumeinadapter.CLIHandler

	Log   *logger.Logger
	cache *querycache.Client
	close io.Closer
}

// New wires every module against cfg. The caller owns the returned App and
// must Close it.
func New(cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	backing, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	store := kv.NewNamespaced(backing, cfg.Storage.Prefix)
	log.Debug("storage ready", "driver", cfg.Storage.Driver, "prefix", cfg.Storage.Prefix)

	cache := querycache.New(querycache.Options{
		StaleTime:     cfg.Cache.DefaultStale,
		GCTime:        cfg.Cache.GCTime,
		MaxEntries:    cfg.Cache.MaxEntries,
		Retries:       cfg.Cache.Retries,
		RetryInterval: cfg.Cache.RetryInterval,
	}, clk, log.With("component", "querycache"))

	fixtures, err := catalogoutadapter.NewYAMLFixtureStore(cfg.FixturesDir)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	catalogUC := catalogusecase.NewInteractor(
		catalogservice.NewUserService(fixtures, catalogoutadapter.NewKVProfileStore(store), clk, cfg.Latency.Profile),
		catalogservice.NewCourseService(fixtures, clk, cfg.Latency.Enroll, cfg.Query.MinSearchLength, cfg.Query.RecommendLimit),
		catalogservice.NewActivityService(clk, ids, fixtures, catalogoutadapter.NewKVActivityLog(store)),
		cache,
		clk,
		catalogusecase.StaleTimes{
			Catalog:   cfg.Cache.CatalogStale,
			Search:    cfg.Cache.SearchStale,
			Recommend: cfg.Cache.RecommendStale,
		},
		log.With("module", "catalog"),
	)

	progressUC := progressusecase.NewInteractor(
		progressservice.NewProgressService(progressoutadapter.NewKVProgressStore(store, log.With("module", "progress"))),
		cache,
	)

	appStateUC := appstateusecase.NewInteractor(appstateservice.NewAppStateService(
		appstateoutadapter.NewKVPreferencesStore(store),
		appstateoutadapter.NewCatalogUserDirectory(catalogUC),
		log.With("module", "appstate"),
	))

	enrollmentUC := enrollmentusecase.NewInteractor(enrollmentservice.NewEnrollmentService(
		enrollmentoutadapter.NewMemoryWorkflowStore(),
		enrollmentoutadapter.NewCatalogBridge(catalogUC),
		enrollmentoutadapter.NewAppStateListener(appStateUC),
		ids,
		cfg.Enrollment.StrictValidation,
		log.With("module", "enrollment"),
	))

	resumeUC := resumeusecase.NewInteractor(resumeservice.NewResumeService(
		resumeoutadapter.NewKVResumeStore(store),
		resumeoutadapter.NewCatalogOwnerDirectory(catalogUC),
		clk,
		ids,
		log.With("module", "resume"),
	))

	return &App{
		CatalogCLI:    cataloginadapter.NewCLIHandler(catalogUC),
		ProgressCLI:   progressinadapter.NewCLIHandler(progressUC),
		EnrollmentCLI: enrollmentinadapter.NewCLIHandler(enrollmentUC),
		AppStateCLI:   appstateinadapter.NewCLIHandler(appStateUC),
		ResumeCLI:     resumeinadapter.NewCLIHandler(resumeUC),
		Log:           log,
		cache:         cache,
		close:         closer,
	}, nil
}

func openStore(cfg config.Config) (kv.Store, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return kv.NewMemoryStore(), nil, nil
	case config.StorageRedis:
		store := kv.NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
		if err := store.Ping(context.Background()); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, store, nil
	default:
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = filepath.Join(cfg.DataDir, ".learnify", "learnify.db")
		}
		store, err := kv.NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	}
}

// Prefetch warms the reads every screen needs first.
func (a *App) Prefetch(ctx context.Context) {
	if err := a.CatalogCLI.Prefetch(ctx); err != nil {
		a.Log.Warn("prefetch failed", "error", err)
	}
	if _, err := a.AppStateCLI.SyncStreak(ctx); err != nil {
		a.Log.Warn("study streak not refreshed", "error", err)
	}
}

func (a *App) Close() error {
	a.cache.Wait()
	a.Log.Sync()
	return closeQuietly(a.close)
}

func closeQuietly(c io.Closer) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, uiapp.Handlers{
		Catalog:    app.CatalogCLI,
		Progress:   app.ProgressCLI,
		Enrollment: app.EnrollmentCLI,
		AppState:   app.AppStateCLI,
		Resume:     app.ResumeCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
