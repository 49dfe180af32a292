// Package app wires configuration, storage, the completion provider and the
// services into one runnable application.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alexanderramin/brandvoice/internal/api"
	"github.com/alexanderramin/brandvoice/internal/config"
	"github.com/alexanderramin/brandvoice/internal/db"
	"github.com/alexanderramin/brandvoice/internal/intelligence"
	"github.com/alexanderramin/brandvoice/internal/llm"
	"github.com/alexanderramin/brandvoice/internal/metrics"
	"github.com/alexanderramin/brandvoice/internal/prompt"
	"github.com/alexanderramin/brandvoice/internal/repository"
	"github.com/alexanderramin/brandvoice/internal/service"
)

// Options overrides pieces of the default wiring. Zero fields are built
// from Config.
type Options struct {
	Config   *config.Config
	DB       *sql.DB
	LLM      llm.LLMClient
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// App holds the wired services.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Catalog  *prompt.Catalog
	LLM      llm.LLMClient
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Logger   *slog.Logger

	ToneWizard    intelligence.ToneService
	MessageWizard intelligence.MessageService
	Services      api.Services

	ownsDB bool
}

// New builds the application.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{Config: cfg, Logger: logger, DB: opts.DB, Registry: opts.Registry}

	if a.DB == nil {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		a.DB = database
		a.ownsDB = true
	}

	if a.Registry == nil {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	a.Metrics = metrics.New(a.Registry)

	llmObservers := llm.MultiObserver{a.Metrics}
	if cfg.LLM.LogCalls {
		llmObservers = append(llmObservers, llm.NewLogObserver(logger))
	}
	a.LLM = opts.LLM
	if a.LLM == nil {
		client, err := llm.NewClient(cfg.LLM, llmObservers)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.LLM = client
	}

	// Wire repositories
	brandRepo := repository.NewSQLiteBrandRepo(a.DB)
	projectRepo := repository.NewSQLiteProjectRepo(a.DB)
	briefRepo := repository.NewSQLiteBriefRepo(a.DB)
	audienceRepo := repository.NewSQLiteAudienceRepo(a.DB)
	toneRepo := repository.NewSQLiteToneProfileRepo(a.DB)
	onboardingRepo := repository.NewSQLiteOnboardingRepo(a.DB)
	overrideRepo := repository.NewSQLitePromptOverrideRepo(a.DB)

	catalog, err := prompt.DefaultCatalog()
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.PromptsFile != "" {
		if err := catalog.MergeFile(cfg.PromptsFile); err != nil {
			a.Close()
			return nil, err
		}
	}
	a.Catalog = catalog.WithOverrides(overrideRepo).WithLogger(logger)

	uow := db.NewSQLiteUnitOfWork(a.DB)
	fallbacks := intelligence.MultiFallbackObserver{intelligence.NewLogFallbackObserver(logger), a.Metrics}
	useCases := service.NewLogUseCaseObserver(logger)
	strict := intelligence.WithStrictSession(cfg.StrictSession)

	a.ToneWizard = intelligence.NewToneService(a.LLM, a.Catalog, fallbacks, strict)
	a.MessageWizard = intelligence.NewMessageService(a.LLM, a.Catalog, fallbacks, strict)
	audiences := intelligence.NewAudienceService(a.LLM, a.Catalog, fallbacks)

	a.Services = api.Services{
		Brands:      service.NewBrandService(brandRepo),
		Projects:    service.NewProjectService(projectRepo, brandRepo),
		Briefs:      service.NewBriefService(briefRepo, projectRepo, brandRepo, audienceRepo, audiences, uow, useCases),
		Tone:        service.NewToneProfileService(a.ToneWizard, brandRepo, toneRepo, uow, useCases),
		CoreMessage: service.NewCoreMessageService(a.MessageWizard, onboardingRepo, uow, useCases),
		Prompts:     service.NewPromptService(a.Catalog, overrideRepo, useCases),
	}
	return a, nil
}

// Router builds the HTTP handler with bearer auth checked by verifier.
func (a *App) Router(verifier api.Verifier) http.Handler {
	return api.NewRouter(api.NewHandler(a.Services, a.Logger), api.RouterConfig{
		Verifier:    verifier,
		CORSOrigins: a.Config.CORSOrigins,
		Instrument:  a.Metrics.Middleware,
		Gatherer:    a.Registry,
	})
}

// Close releases the database if New opened it.
func (a *App) Close() error {
	if a.ownsDB && a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
