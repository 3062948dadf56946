package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/common"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/acquirer"
	"github.com/ternarybob/dirigo/internal/services/chat"
	"github.com/ternarybob/dirigo/internal/services/classifier"
	"github.com/ternarybob/dirigo/internal/services/documents"
	"github.com/ternarybob/dirigo/internal/services/export"
	"github.com/ternarybob/dirigo/internal/services/index"
	"github.com/ternarybob/dirigo/internal/services/llm"
	"github.com/ternarybob/dirigo/internal/services/pdf"
	"github.com/ternarybob/dirigo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager
	Catalog        *models.Catalog

	LLMServices *llm.Services

	AcquirerService *acquirer.Service
	Scheduler       *acquirer.Scheduler
	LoaderService   *documents.LoaderService
	IndexBuilder    interfaces.IndexBuilder
	ChatService     interfaces.ChatService
	ExportService   *export.Service
}

// New initializes the application with all dependencies. LLM-backed
// services are only constructed when withLLM is set; acquisition and
// loading do not need API keys and must work without them.
func New(cfg *common.Config, logger arbor.ILogger, withLLM bool) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initCatalog(); err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initAcquisition()

	if withLLM {
		if err := app.initLLM(); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.ExportService = export.NewService(logger)

	logger.Info().
		Str("environment", cfg.Environment).
		Bool("llm_enabled", withLLM).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initCatalog() error {
	var catalog *models.Catalog
	var err error

	if a.Config.Catalog.Path != "" {
		catalog, err = models.LoadCatalog(a.Config.Catalog.Path)
	} else {
		catalog, err = models.DefaultCatalog()
	}
	if err != nil {
		return err
	}

	a.Catalog = catalog
	a.Logger.Debug().
		Int("regions", len(catalog.RegionNames())).
		Msg("Region catalog loaded")

	return nil
}

func (a *App) initStorage() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

func (a *App) initAcquisition() {
	a.AcquirerService = acquirer.NewService(&a.Config.Acquirer, a.Config.Storage.DirectivesDir, a.Logger)
	a.Scheduler = acquirer.NewScheduler(a.AcquirerService, a.Logger)

	classifierService := classifier.NewService(a.Catalog, a.Config.Chat.AuthorityFilename, a.Logger)
	extractor := pdf.NewExtractor(a.Logger)
	a.LoaderService = documents.NewLoaderService(
		a.Config.Storage.DirectivesDir,
		extractor,
		classifierService,
		a.StorageManager.DirectiveStorage(),
		a.Logger,
	)
}

func (a *App) initLLM() error {
	services, err := llm.NewServices(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM services: %w", err)
	}
	a.LLMServices = services

	cacheTTL := time.Hour
	if a.Config.Chat.IndexCacheTTL != "" {
		parsed, err := time.ParseDuration(a.Config.Chat.IndexCacheTTL)
		if err != nil {
			return fmt.Errorf("invalid chat.index_cache_ttl %q: %w", a.Config.Chat.IndexCacheTTL, err)
		}
		cacheTTL = parsed
	}

	a.IndexBuilder = index.NewBuilder(services.Embedder, a.Config.Chat.MaxChunkSize, cacheTTL, a.Logger)
	a.ChatService = chat.NewService(
		a.StorageManager.DirectiveStorage(),
		a.Catalog,
		a.IndexBuilder,
		services.Chat,
		&a.Config.Chat,
		a.Logger,
	)

	return nil
}

// Close shuts down all components in reverse initialization order
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.LLMServices != nil {
		_ = a.LLMServices.Close()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Error closing storage manager")
			return err
		}
	}

	a.Logger.Debug().Msg("Application shut down")
	return nil
}
