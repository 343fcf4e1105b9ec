package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"autoClaims/internal/api"
	"autoClaims/internal/api/handlers/http/admin"
	"autoClaims/internal/api/handlers/http/pages"
	"autoClaims/internal/api/handlers/http/public"
	"autoClaims/internal/api/handlers/http/system"
	"autoClaims/internal/config"
	"autoClaims/internal/eligibility"
	"autoClaims/internal/photo"
	"autoClaims/internal/redis"
	"autoClaims/internal/render"
	"autoClaims/internal/service"
	"autoClaims/internal/storage/blob"
	"autoClaims/internal/storage/offline"
	"autoClaims/internal/storage/postgres"
	"autoClaims/internal/wizard"
	"autoClaims/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
}

type stores struct {
	pg     *postgres.Postgres
	claims service.ClaimRepository
	stats  service.StatsRepository
	photos service.PhotoUploader
	checks []system.Check
}

// initStores connects the claim database and the photo store concurrently.
// A store without configuration is replaced by its offline stand-in.
func initStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	s := &stores{}
	var (
		pgCheck   system.Check
		blobCheck system.Check
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if !cfg.Postgres.Configured() {
			oc := offline.NewClaims(logger)
			s.claims, s.stats = oc, oc
			pgCheck = system.Check{Name: "postgres", Pinger: oc}
			return nil
		}

		logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(gctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to init postgres: %w", err)
		}
		s.pg = pg
		s.claims, s.stats = pg.Claims(), pg.Stats()
		pgCheck = system.Check{Name: "postgres", Pinger: pg}
		return nil
	})

	g.Go(func() error {
		if !cfg.Blob.Configured() {
			op := offline.NewPhotos(logger)
			s.photos = op
			blobCheck = system.Check{Name: "blob", Pinger: op}
			return nil
		}

		logger.Info("Initializing blob store", slog.String("driver", cfg.Blob.Driver))
		store, err := blob.New(gctx, cfg.Blob, logger)
		if err != nil {
			return fmt.Errorf("failed to init blob store: %w", err)
		}
		s.photos = store
		blobCheck = system.Check{Name: "blob", Pinger: store}
		return nil
	})

	if err := g.Wait(); err != nil {
		if s.pg != nil {
			s.pg.Close()
		}
		return nil, err
	}

	s.checks = []system.Check{pgCheck, blobCheck}
	return s, nil
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	renderer, err := render.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	st, err := initStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init stores", slog.Any("error", err))
		_ = redisClient.Close()
		return nil, err
	}

	sessions := redis.NewSessionStore(redisClient, cfg.Redis.SessionTTL)
	statsCache := redis.NewStatsCache(redisClient, cfg.Redis.StatsTTL)

	eval := eligibility.NewEvaluator(cfg.Claims.Deadline, nil)
	flow := wizard.New(eval, cfg.Claims.SessionSpan)
	compressor := photo.NewCompressor(cfg.Claims.MaxWidth, cfg.Claims.MaxHeight, cfg.Claims.JPEGQuality)

	submissionSvc := service.NewSubmissionService(service.SubmissionDeps{
		Flow:       flow,
		Eval:       eval,
		Sessions:   sessions,
		Claims:     st.claims,
		Uploader:   st.photos,
		StatsCache: statsCache,
		Compressor: compressor,
		MaxBytes:   cfg.Claims.MaxPhotoBytes,
		Logger:     logger,
	})
	statsSvc := service.NewStatsService(st.stats, statsCache, logger)
	reviewSvc := service.NewReviewService(st.claims, statsSvc, statsCache, logger)
	exportSvc := service.NewExportService(st.claims, logger)

	svc := service.NewService(submissionSvc, reviewSvc, statsSvc, exportSvc)

	checks := append([]system.Check{{Name: "redis", Pinger: redisClient, Required: true}}, st.checks...)
	httpServer := api.NewServer(cfg, logger, api.Handlers{
		Admin:  admin.NewHandler(logger, svc, svc, svc),
		Public: public.NewHandler(logger, svc, cfg.Claims.MaxPhotoBytes),
		Pages:  pages.NewHandler(logger, renderer, int(cfg.Claims.Deadline/time.Hour)),
		System: system.NewHandler(logger, checks...),
	})
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   st.pg,
		Redis:      redisClient,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
