package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wisecrew/api/internal/handlers"
	"github.com/wisecrew/api/internal/platform/auth"
	"github.com/wisecrew/api/internal/platform/config"
	pfirestore "github.com/wisecrew/api/internal/platform/firestore"
	"github.com/wisecrew/api/internal/platform/idempotency"
	"github.com/wisecrew/api/internal/platform/kv"
	"github.com/wisecrew/api/internal/platform/observability"
	"github.com/wisecrew/api/internal/repositories"
	"github.com/wisecrew/api/internal/repositories/firestorerepo"
	"github.com/wisecrew/api/internal/repositories/kvrepo"
	"github.com/wisecrew/api/internal/repositories/memory"
	"github.com/wisecrew/api/internal/services"
)

const cleanupBatchSize = 200

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load(ctx)
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	buildInfo := buildInfoFromEnv(cfg)

	submissionRepo, healthCheck, cleanupStore, err := buildSubmissionRepository(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialise submission store", zap.Error(err))
	}
	defer cleanupStore()

	submissionService, err := services.NewSubmissionService(services.SubmissionServiceDeps{
		Repo:  submissionRepo,
		Clock: time.Now,
		Logger: func(ctx context.Context, msg string, fields map[string]any) {
			zapLog(logger.Named("submissions"), msg, fields)
		},
	})
	if err != nil {
		logger.Fatal("failed to initialise submission service", zap.Error(err))
	}

	intakeService, err := services.NewIntakeService(services.IntakeServiceDeps{
		Submissions: submissionService,
		Clock:       time.Now,
		Logger: func(ctx context.Context, msg string, fields map[string]any) {
			zapLog(logger.Named("intake"), msg, fields)
		},
	})
	if err != nil {
		logger.Fatal("failed to initialise intake service", zap.Error(err))
	}

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Repo: memory.NewCatalogRepository(),
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	systemService, err := services.NewSystemService(services.SystemServiceDeps{
		Build:  buildInfo,
		Health: repositories.NewDependencyHealthRepository(time.Now, healthCheck),
		Clock:  time.Now,
	})
	if err != nil {
		logger.Fatal("failed to initialise system service", zap.Error(err))
	}

	idempotencyStore := idempotency.NewMemoryStore()
	submitGuard := idempotency.Middleware(
		idempotencyStore,
		idempotency.WithHeader(cfg.Idempotency.Header),
		idempotency.WithTTL(cfg.Idempotency.TTL),
		idempotency.WithLogger(logger.Named("idempotency")),
	)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	var cleanupWG sync.WaitGroup
	var cleanupTicker *time.Ticker
	if cfg.Idempotency.CleanupInterval > 0 {
		cleanupTicker = time.NewTicker(cfg.Idempotency.CleanupInterval)
		cleanupWG.Add(1)
		go func() {
			defer cleanupWG.Done()
			cleanupLogger := logger.Named("idempotency")
			for {
				select {
				case <-cleanupTicker.C:
					runCtx, cancel := context.WithTimeout(cleanupCtx, time.Minute)
					removed, err := idempotencyStore.CleanupExpired(runCtx, time.Now().UTC(), cleanupBatchSize)
					cancel()
					if err != nil {
						cleanupLogger.Error("idempotency cleanup error", zap.Error(err))
						continue
					}
					if removed > 0 {
						cleanupLogger.Info("idempotency cleanup removed records", zap.Int("count", removed))
					}
				case <-cleanupCtx.Done():
					return
				}
			}
		}()
	}

	intakeHandlers := handlers.NewIntakeHandlers(intakeService,
		handlers.WithIntakeBodyLimit(cfg.Server.MaxBodyBytes),
		handlers.WithIntakeRateLimit(cfg.Intake.SessionRateLimit, cfg.Intake.SessionRateWindow),
		handlers.WithSubmitGuard(submitGuard),
	)
	applicationHandlers := handlers.NewApplicationHandlers(submissionService)
	catalogHandlers := handlers.NewCatalogHandlers(catalogService)
	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfo),
		handlers.WithHealthSystemService(systemService),
	)

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(cfg.Store.FirestoreProject),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
	}

	opts := []handlers.Option{
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithIntakeRoutes(intakeHandlers.Routes),
		handlers.WithApplicationRoutes(applicationHandlers.Routes),
		handlers.WithCatalogRoutes(catalogHandlers.Routes),
		handlers.WithAdminRoutes(applicationHandlers.AdminRoutes),
	}

	if secret := strings.TrimSpace(cfg.Admin.JWTSecret); secret != "" {
		verifier, err := auth.NewVerifier(secret)
		if err != nil {
			logger.Fatal("failed to initialise admin token verifier", zap.Error(err))
		}
		opts = append(opts, handlers.WithAdminMiddlewares(auth.RequireRoles(verifier, auth.RoleStaff, auth.RoleAdmin)))
	} else {
		logger.Warn("admin jwt secret not configured; staff endpoints are disabled")
		opts = append(opts, handlers.WithAdminMiddlewares(auth.RequireRoles(nil)))
	}

	router := handlers.NewRouter(opts...)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("wisecrew api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	if cleanupTicker != nil {
		cleanupTicker.Stop()
	}
	cleanupCancel()
	cleanupWG.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildSubmissionRepository selects the configured backend and returns the
// repository alongside its readiness check and a close func.
func buildSubmissionRepository(ctx context.Context, logger *zap.Logger, cfg config.Config) (repositories.SubmissionRepository, repositories.DependencyCheck, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendFirestore:
		provider := pfirestore.NewProvider(pfirestore.Settings{
			ProjectID:    cfg.Store.FirestoreProject,
			EmulatorHost: cfg.Store.FirestoreEmulator,
		})
		if _, err := provider.Client(ctx); err != nil {
			return nil, repositories.DependencyCheck{}, func() {}, fmt.Errorf("firestore client: %w", err)
		}
		repo, err := firestorerepo.NewSubmissionRepository(provider)
		if err != nil {
			return nil, repositories.DependencyCheck{}, func() {}, err
		}
		check := repositories.DependencyCheck{
			Name: "firestore",
			Check: func(ctx context.Context) error {
				_, err := repo.ListAll(ctx)
				return err
			},
		}
		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Close(closeCtx); err != nil {
				logger.Warn("firestore close error", zap.Error(err))
			}
		}
		return repo, check, closeFn, nil

	default:
		store, err := kv.NewFileStore(cfg.Store.DataDir)
		if err != nil {
			return nil, repositories.DependencyCheck{}, func() {}, fmt.Errorf("file store: %w", err)
		}
		repo, err := kvrepo.NewSubmissionRepository(store, cfg.Store.SubmissionsKey)
		if err != nil {
			return nil, repositories.DependencyCheck{}, func() {}, err
		}
		check := repositories.DependencyCheck{
			Name: "submission-store",
			Check: func(ctx context.Context) error {
				_, err := repo.ListAll(ctx)
				return err
			},
		}
		return repo, check, func() {}, nil
	}
}

func buildInfoFromEnv(cfg config.Config) services.BuildInfo {
	version := strings.TrimSpace(os.Getenv("API_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	return services.BuildInfo{
		Version:     version,
		CommitSHA:   strings.TrimSpace(os.Getenv("API_BUILD_COMMIT_SHA")),
		Environment: cfg.Environment,
	}
}

func zapLog(logger *zap.Logger, msg string, fields map[string]any) {
	zFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zFields = append(zFields, zap.Any(k, v))
	}
	logger.Info(msg, zFields...)
}
